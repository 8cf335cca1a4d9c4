package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
)

// CreateTaskListRequest represents the JSON body for creating a task list.
type CreateTaskListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskListRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateTaskListRequest represents the JSON body for updating a task list.
// All fields are optional; nil means "do not change this field".
type UpdateTaskListRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTaskListRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = msgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for creating a task. ListID is
// taken from the URL on the nested route and from the body on the flat route.
// Status is not accepted: every task starts pending.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ListID      int64      `json:"list_id,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that required fields are present and optional fields have
// valid values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if r.Priority != "" && !task.Priority(r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateTaskRequest represents the JSON body for updating a task.
// All fields are optional; nil means "do not change this field".
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	ListID      *int64     `json:"list_id,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = msgMustNotEmpty
	}
	if r.Priority != nil && !task.Priority(*r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateTaskStatusRequest represents the JSON body for a status change.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that the status is one of the enumerated values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTaskStatusRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Status) == "" {
		fields["status"] = msgRequired
	} else if !task.Status(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// AssignTaskRequest represents the JSON body for assigning a task.
// A null or absent assignee_id unassigns the task.
type AssignTaskRequest struct {
	AssigneeID *int64 `json:"assignee_id"`
}

// Validate checks that a provided assignee ID is positive.
// Returns a *domain.ValidationError if any checks fail.
func (r *AssignTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.AssigneeID != nil && *r.AssigneeID <= 0 {
		fields["assignee_id"] = fmt.Sprintf("must be positive, got %d", *r.AssigneeID)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateUserRequest represents the JSON body for registering a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// Validate checks that required fields are present. Password policy and email
// shape are enforced by the use case; this only checks presence.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateUserRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		fields["username"] = msgRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if r.Password == "" {
		fields["password"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateUserRequest represents the JSON body for updating a user.
// All fields are optional; nil means "do not change this field".
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateUserRequest) Validate() error {
	fields := make(map[string]string)

	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		fields["email"] = msgMustNotEmpty
	}
	if r.Password != nil && *r.Password == "" {
		fields["password"] = msgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// LoginRequest represents the JSON body for a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *LoginRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		fields["username"] = msgRequired
	}
	if r.Password == "" {
		fields["password"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// RefreshRequest represents the JSON body for a token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks that the refresh token is present.
// Returns a *domain.ValidationError if any checks fail.
func (r *RefreshRequest) Validate() error {
	fields := make(map[string]string)

	if r.RefreshToken == "" {
		fields["refresh_token"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
