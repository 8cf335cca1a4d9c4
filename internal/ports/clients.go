package ports

import (
	"context"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
)

// Notifier defines the client port for outbound task-event notifications.
// Implemented by the webhook adapter; called by the application layer.
// Delivery is best-effort: the application logs failures and never fails the
// triggering operation on a notification error.
type Notifier interface {
	// TaskAssigned notifies the assignee that a task was assigned to them.
	TaskAssigned(ctx context.Context, t *task.Task, assignee *user.User) error

	// TaskCompleted notifies the assignee, if any, that a task they hold
	// was completed.
	TaskCompleted(ctx context.Context, t *task.Task, assignee *user.User) error
}
