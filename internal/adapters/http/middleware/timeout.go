package middleware

import (
	"bytes"
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/adapters/http/dto"
)

// Timeout returns middleware that enforces a per-request deadline. The
// context passed to the handler carries the deadline so downstream I/O can
// respect it. When the deadline fires before the handler finishes, the client
// receives a 504 problem response and any later writes from the abandoned
// handler are discarded with http.ErrHandlerTimeout.
//
// The handler runs on its own goroutine against a buffered writer, so a slow
// handler can never race the timeout path on the real ResponseWriter. Panics
// are re-raised on the request goroutine, keeping the Recovery middleware in
// the loop even though the work happened elsewhere.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			bw := &bufferedWriter{w: w}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(bw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
				bw.flush()
			case v := <-panicked:
				panic(v)
			case <-ctx.Done():
				bw.markTimedOut()
				dto.WriteErrorResponse(w, r, context.DeadlineExceeded)
			}
		})
	}
}

// bufferedWriter holds the handler's entire response in memory until the
// middleware decides whether it beat the deadline. Nothing reaches the real
// ResponseWriter before flush, so the 504 path never interleaves with
// handler output.
type bufferedWriter struct {
	w http.ResponseWriter

	mu          sync.Mutex
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
	timedOut    bool
}

func (bw *bufferedWriter) Header() http.Header {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.header == nil {
		bw.header = make(http.Header)
	}
	return bw.header
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !bw.wroteHeader {
		bw.status = http.StatusOK
		bw.wroteHeader = true
	}
	return bw.body.Write(b)
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.timedOut || bw.wroteHeader {
		return
	}
	bw.status = code
	bw.wroteHeader = true
}

// markTimedOut discards the buffered response and makes subsequent handler
// writes fail with http.ErrHandlerTimeout.
func (bw *bufferedWriter) markTimedOut() {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	bw.timedOut = true
	bw.body.Reset()
}

// flush copies the buffered response to the underlying writer. Only called
// after the handler goroutine has finished, so no further handler writes can
// race the copy.
func (bw *bufferedWriter) flush() {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.header != nil {
		maps.Copy(bw.w.Header(), bw.header)
	}
	if bw.wroteHeader {
		bw.w.WriteHeader(bw.status)
	}
	if bw.body.Len() > 0 {
		_, _ = bw.w.Write(bw.body.Bytes())
	}
}
