package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
)

// Task represents a unit of work belonging to exactly one task list.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	ListID      int64
	AssigneeID  *int64
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Deleted reports whether the task is soft-deleted.
func (t *Task) Deleted() bool {
	return t.DeletedAt != nil
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass. Description is optional.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if !t.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", t.Priority)
	}
	if t.ListID <= 0 {
		fields["list_id"] = fmt.Sprintf("must be positive, got %d", t.ListID)
	}
	if t.AssigneeID != nil && *t.AssigneeID <= 0 {
		fields["assignee_id"] = fmt.Sprintf("must be positive, got %d", *t.AssigneeID)
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		fields["due_date"] = "must be a valid instant"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
