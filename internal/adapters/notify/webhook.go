// Package notify implements the ports.Notifier client port. The webhook
// notifier posts task events to a configured endpoint through the resilient
// platform HTTP client; the noop notifier drops events when notifications
// are disabled.
//
// Delivery is best-effort by contract: callers log failures and never fail
// the triggering operation, so this adapter reports errors rather than
// retrying beyond what the HTTP client already does.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Event type discriminators sent in the webhook payload.
const (
	eventTaskAssigned  = "task.assigned"
	eventTaskCompleted = "task.completed"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// Compile-time interface check.
var _ ports.Notifier = (*WebhookNotifier)(nil)

// eventDTO is the wire format for a task event. The assignee's email is
// included so the receiving side can deliver without a lookup.
type eventDTO struct {
	Type          string     `json:"type"`
	TaskID        int64      `json:"task_id"`
	TaskTitle     string     `json:"task_title"`
	ListID        int64      `json:"list_id"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	AssigneeID    int64      `json:"assignee_id"`
	AssigneeName  string     `json:"assignee_name"`
	AssigneeEmail string     `json:"assignee_email"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// WebhookNotifier delivers task events with POST {base_url}/events. Any 2xx
// response counts as delivered; everything else is translated to a domain
// error.
type WebhookNotifier struct {
	client *httpclient.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewWebhookNotifier creates a WebhookNotifier that sends events through the
// given HTTP client. The client's BaseURL should point to the webhook root.
func NewWebhookNotifier(client *httpclient.Client, logger *slog.Logger) *WebhookNotifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WebhookNotifier{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// TaskAssigned notifies the assignee that the task was assigned to them.
func (n *WebhookNotifier) TaskAssigned(ctx context.Context, t *task.Task, assignee *user.User) error {
	return n.send(ctx, eventTaskAssigned, t, assignee)
}

// TaskCompleted notifies the assignee that a task they hold was completed.
func (n *WebhookNotifier) TaskCompleted(ctx context.Context, t *task.Task, assignee *user.User) error {
	return n.send(ctx, eventTaskCompleted, t, assignee)
}

func (n *WebhookNotifier) send(ctx context.Context, eventType string, t *task.Task, assignee *user.User) error {
	event := eventDTO{
		Type:          eventType,
		TaskID:        t.ID,
		TaskTitle:     t.Title,
		ListID:        t.ListID,
		Priority:      t.Priority.String(),
		DueDate:       t.DueDate,
		AssigneeID:    assignee.ID,
		AssigneeName:  assignee.Username,
		AssigneeEmail: assignee.Email,
		OccurredAt:    n.now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling %s event: %w", eventType, err)
	}

	url := n.client.BaseURL() + "/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request for %s event: %w", eventType, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(ctx, req)
	if err != nil {
		// The client can return both resp and err when retries are exhausted
		// on a retryable status. Translate the response in that case.
		if resp != nil {
			defer n.closeBody(ctx, resp)
			return translateStatus(resp)
		}
		return fmt.Errorf("delivering %s event: %w", eventType, err)
	}
	defer n.closeBody(ctx, resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return translateStatus(resp)
	}

	n.logger.DebugContext(ctx, "event delivered",
		slog.String("type", eventType),
		slog.Int64("task_id", t.ID),
		slog.Int64("assignee_id", assignee.ID),
	)
	return nil
}

// closeBody closes an HTTP response body and logs on failure.
func (n *WebhookNotifier) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		n.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// translateStatus maps a non-2xx webhook response to a domain error, using
// the problem-details detail field for context when the endpoint sends one.
func translateStatus(resp *http.Response) error {
	detail := readDetail(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("webhook endpoint: %s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("webhook rejected event: %s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("webhook endpoint: %s: %w", detail, domain.ErrUnauthorized)

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("webhook endpoint: %s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("webhook endpoint: unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// readDetail attempts to read the detail field of a problem-details body.
// Returns an empty string when the response carries none.
func readDetail(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/problem+json") && !strings.HasPrefix(ct, "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var pd struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &pd); err != nil {
		return ""
	}
	return pd.Detail
}
