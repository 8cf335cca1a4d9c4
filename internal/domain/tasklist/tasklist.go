package tasklist

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
)

// TaskList represents a named container of tasks.
// Its title must be unique among active (non-deleted) lists; the storage
// layer enforces that with a partial unique index and the use-case layer
// pre-checks it for a friendlier fast path.
type TaskList struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Deleted reports whether the list is soft-deleted.
func (l *TaskList) Deleted() bool {
	return l.DeletedAt != nil
}

// Validate checks business rules for the TaskList entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass. Description is optional.
func (l *TaskList) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(l.Title) == "" {
		fields["title"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
