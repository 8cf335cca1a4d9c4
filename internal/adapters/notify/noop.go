package notify

import (
	"context"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.Notifier = (*NoopNotifier)(nil)

// NoopNotifier discards all events. Used when notifications are disabled.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that drops every event.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// TaskAssigned discards the event.
func (*NoopNotifier) TaskAssigned(context.Context, *task.Task, *user.User) error {
	return nil
}

// TaskCompleted discards the event.
func (*NoopNotifier) TaskCompleted(context.Context, *task.Task, *user.User) error {
	return nil
}
