package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/platform/logging"
)

// newRetryClient builds a Client with only the pieces doWithRetry touches,
// using intervals short enough for unit tests.
func newRetryClient(maxAttempts int, httpClient *http.Client) *Client {
	return &Client{
		httpClient:  httpClient,
		serviceName: "downstream",
		retryCfg: retryConfig{
			maxAttempts:     maxAttempts,
			initialInterval: time.Millisecond,
			maxInterval:     10 * time.Millisecond,
			multiplier:      2.0,
		},
	}
}

// quietContext silences retry WARN logs during tests.
func quietContext() context.Context {
	return logging.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestBackoff_ExponentialIncrease(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     10 * time.Second,
		multiplier:      2.0,
	}

	// Run multiple samples to account for jitter.
	const samples = 100
	for attempt := 1; attempt <= 3; attempt++ {
		baseDelay := float64(100*time.Millisecond) * math.Pow(2.0, float64(attempt-1))
		minExpected := time.Duration(baseDelay * (1 - jitterFraction))
		maxExpected := time.Duration(baseDelay * (1 + jitterFraction))

		for range samples {
			delay := backoff(attempt, cfg)
			if delay < minExpected || delay > maxExpected {
				t.Errorf("attempt %d: delay %v not in [%v, %v]", attempt, delay, minExpected, maxExpected)
			}
		}
	}
}

func TestBackoff_CappedAtMaxInterval(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		multiplier:      2.0,
	}

	// Attempt 10 would be 100ms * 2^9 = 51.2s without cap.
	maxWithJitter := time.Duration(float64(cfg.maxInterval) * (1 + jitterFraction))

	const samples = 100
	for range samples {
		delay := backoff(10, cfg)
		if delay > maxWithJitter {
			t.Errorf("delay %v exceeds max interval with jitter %v", delay, maxWithJitter)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"wrapped canceled", &url.Error{Op: "Post", URL: "http://x", Err: context.Canceled}, false},
		{"dial failure", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"generic transport error", errors.New("something failed"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{name: "200 OK", statusCode: http.StatusOK, want: false},
		{name: "201 Created", statusCode: http.StatusCreated, want: false},
		{name: "400 Bad Request", statusCode: http.StatusBadRequest, want: false},
		{name: "404 Not Found", statusCode: http.StatusNotFound, want: false},
		{name: "429 Too Many Requests", statusCode: http.StatusTooManyRequests, want: true},
		{name: "500 Internal Server Error", statusCode: http.StatusInternalServerError, want: true},
		{name: "502 Bad Gateway", statusCode: http.StatusBadGateway, want: true},
		{name: "503 Service Unavailable", statusCode: http.StatusServiceUnavailable, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isRetryableStatus(tt.statusCode); got != tt.want {
				t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.statusCode, got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	makeResp := func(value string) *http.Response {
		resp := &http.Response{Header: make(http.Header)}
		if value != "" {
			resp.Header.Set("Retry-After", value)
		}
		return resp
	}

	t.Run("absent header", func(t *testing.T) {
		t.Parallel()
		if d := parseRetryAfter(makeResp("")); d != 0 {
			t.Errorf("parseRetryAfter = %v, want 0", d)
		}
	})

	t.Run("delay seconds", func(t *testing.T) {
		t.Parallel()
		if d := parseRetryAfter(makeResp("3")); d != 3*time.Second {
			t.Errorf("parseRetryAfter = %v, want 3s", d)
		}
	})

	t.Run("zero and negative seconds", func(t *testing.T) {
		t.Parallel()
		for _, v := range []string{"0", "-5"} {
			if d := parseRetryAfter(makeResp(v)); d != 0 {
				t.Errorf("parseRetryAfter(%q) = %v, want 0", v, d)
			}
		}
	})

	t.Run("future http date", func(t *testing.T) {
		t.Parallel()
		date := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
		d := parseRetryAfter(makeResp(date))
		if d <= 0 || d > 30*time.Second {
			t.Errorf("parseRetryAfter(%q) = %v, want within (0, 30s]", date, d)
		}
	})

	t.Run("past http date", func(t *testing.T) {
		t.Parallel()
		date := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
		if d := parseRetryAfter(makeResp(date)); d != 0 {
			t.Errorf("parseRetryAfter(%q) = %v, want 0", date, d)
		}
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()
		if d := parseRetryAfter(makeResp("soonish")); d != 0 {
			t.Errorf("parseRetryAfter = %v, want 0", d)
		}
	})
}

func TestDoWithRetry_ReplaysRequestBody(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	bodies := make(chan string, 3)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies <- string(b)
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newRetryClient(3, srv.Client())

	ctx := quietContext()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL, strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	var resp *http.Response
	if err := c.doWithRetry(ctx, req, &resp); err != nil {
		t.Fatalf("doWithRetry() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
	close(bodies)
	for body := range bodies {
		if body != "payload" {
			t.Errorf("attempt saw body %q, want %q", body, "payload")
		}
	}
}

func TestDoWithRetry_CapsRetryAfterHint(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) == 1 {
			// An uncapped client would sleep the full two seconds.
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newRetryClient(2, srv.Client())

	ctx := quietContext()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	start := time.Now()
	var resp *http.Response
	if err := c.doWithRetry(ctx, req, &resp); err != nil {
		t.Fatalf("doWithRetry() error = %v", err)
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if elapsed >= time.Second {
		t.Errorf("retry waited %v, hint should be capped at the max interval", elapsed)
	}
}

func TestDoWithRetry_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newRetryClient(5, srv.Client())
	// A canceled context fails the transport call with a non-retryable error.
	ctx, cancel := context.WithCancel(quietContext())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	var resp *http.Response
	err = c.doWithRetry(ctx, req, &resp)
	if err == nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatal("doWithRetry() error = nil, want context cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("doWithRetry() error = %v, want context.Canceled", err)
	}
}

func TestDoWithRetry_ReturnsLastResponseWhenExhausted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream broken")
	}))
	defer srv.Close()

	c := newRetryClient(2, srv.Client())

	ctx := quietContext()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	var resp *http.Response
	err = c.doWithRetry(ctx, req, &resp)
	if err == nil {
		t.Fatal("doWithRetry() error = nil, want exhaustion error")
	}
	if resp == nil {
		t.Fatal("doWithRetry() resp = nil, want final response with open body")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if string(b) != "upstream broken" {
		t.Errorf("final body = %q, want it left intact for the caller", string(b))
	}
}

func TestSecureRandFloat64_InRange(t *testing.T) {
	t.Parallel()

	const samples = 1000
	for range samples {
		v := secureRandFloat64()
		if v < 0 || v >= 1 {
			t.Errorf("secureRandFloat64() = %v, want [0, 1)", v)
		}
	}
}
