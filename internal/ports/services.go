package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
)

// TaskListService defines the service port for task-list operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TaskListService interface {
	// ListTaskLists returns all active lists with their active task counts,
	// ordered by creation time ascending.
	ListTaskLists(ctx context.Context) ([]TaskListWithCount, error)

	// GetTaskList returns a single active list by ID.
	// Returns domain.ErrNotFound if the list does not exist or is soft-deleted.
	GetTaskList(ctx context.Context, id int64) (*tasklist.TaskList, error)

	// CreateTaskList creates a new list and returns the created entity with
	// server-assigned fields (ID, timestamps).
	// Returns domain.ErrValidation on an empty title.
	// Returns domain.ErrConflict if an active list already holds the title.
	CreateTaskList(ctx context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error)

	// UpdateTaskList applies the supplied fields to an existing list and
	// returns the updated entity. Invariants are re-checked after the merge.
	// Returns domain.ErrNotFound if the list does not exist.
	// Returns domain.ErrConflict if the new title collides with another list.
	UpdateTaskList(ctx context.Context, id int64, update TaskListUpdate) (*tasklist.TaskList, error)

	// DeleteTaskList soft-deletes the list and all of its active tasks.
	// The tasks remain in storage, retrievable only via include-deleted
	// listings. Returns domain.ErrNotFound if the list does not exist.
	DeleteTaskList(ctx context.Context, id int64) error

	// GetTaskListStats returns derived completion statistics for the list.
	// Returns domain.ErrNotFound if the list does not exist.
	GetTaskListStats(ctx context.Context, id int64) (*tasklist.Stats, error)
}

// TaskListUpdate carries the optional fields of a partial list update.
// Nil means "do not change this field".
type TaskListUpdate struct {
	Title       *string
	Description *string
}

// TaskListWithCount pairs a list with its active task count for listings.
type TaskListWithCount struct {
	List      tasklist.TaskList
	TaskCount int
}

// TaskService defines the service port for task operations.
type TaskService interface {
	// ListTasks returns tasks matching the filter (criteria AND-combined),
	// ordered by creation time ascending. Soft-deleted tasks appear only
	// when the filter sets IncludeDeleted. A referenced list or assignee
	// that never existed yields domain.ErrNotFound; a soft-deleted list is
	// a valid scope whose cascade-deleted tasks surface via IncludeDeleted.
	ListTasks(ctx context.Context, filter task.Filter) ([]task.Task, error)

	// ListTasksWithStats returns the list's tasks matching the filter plus
	// completion statistics computed over all of the list's active tasks.
	// The list may be soft-deleted; returns domain.ErrNotFound only when
	// it never existed.
	ListTasksWithStats(ctx context.Context, listID int64, filter task.Filter) (*TasksWithStats, error)

	// ListTasksByAssignee returns the active tasks assigned to the user.
	// Returns domain.ErrNotFound if the user does not exist.
	ListTasksByAssignee(ctx context.Context, userID int64) ([]task.Task, error)

	// GetTask returns a single active task by ID.
	// Returns domain.ErrNotFound if the task does not exist or is soft-deleted.
	GetTask(ctx context.Context, id int64) (*task.Task, error)

	// CreateTask creates a task under its list. Status starts pending;
	// priority defaults to medium when unset. A set assignee is notified.
	// Returns domain.ErrNotFound if the list or assignee does not exist.
	// Returns domain.ErrValidation on an empty title or invalid enum value.
	// Returns domain.ErrConflict on a duplicate active title within the list.
	CreateTask(ctx context.Context, t *task.Task) (*task.Task, error)

	// UpdateTask applies the supplied fields to an existing task and returns
	// the updated entity. Invariants are re-checked after the merge; a failed
	// update never mutates storage. Moving the task to another list requires
	// the target list to be active and re-checks title uniqueness there.
	// Returns domain.ErrNotFound if the task, target list, or assignee is absent.
	UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*task.Task, error)

	// UpdateTaskStatus sets the task's status. Setting cancelled never
	// soft-deletes. A transition into completed notifies the assignee.
	// Returns domain.ErrValidation on a status outside the enumerated set.
	UpdateTaskStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error)

	// CompleteTask marks the task completed.
	CompleteTask(ctx context.Context, id int64) (*task.Task, error)

	// ReopenTask returns the task to pending.
	ReopenTask(ctx context.Context, id int64) (*task.Task, error)

	// AssignTask assigns the task to a user, or unassigns it when userID is
	// nil. The new assignee is notified.
	// Returns domain.ErrNotFound if the task or user does not exist.
	AssignTask(ctx context.Context, id int64, userID *int64) (*task.Task, error)

	// DeleteTask soft-deletes the task.
	// Returns domain.ErrNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id int64) error
}

// TaskUpdate carries the optional fields of a partial task update.
// Nil means "do not change this field".
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *task.Priority
	DueDate     *time.Time
	ListID      *int64
	AssigneeID  *int64
}

// TasksWithStats bundles a list's filtered tasks with its completion
// statistics (computed over all active tasks, not just the filtered ones).
type TasksWithStats struct {
	Tasks []task.Task
	Stats tasklist.Stats
}

// UserService defines the service port for user account operations.
type UserService interface {
	// ListUsers returns all active users ordered by creation time ascending.
	ListUsers(ctx context.Context) ([]user.User, error)

	// GetUser returns a single active user by ID.
	// Returns domain.ErrNotFound if the user does not exist or is soft-deleted.
	GetUser(ctx context.Context, id int64) (*user.User, error)

	// GetUserByUsername returns a single active user by exact username.
	// Returns domain.ErrNotFound if no active user holds the username.
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)

	// CreateUser registers a new account with a bcrypt-hashed password.
	// Returns domain.ErrValidation on empty username, malformed email, or a
	// password shorter than eight characters.
	// Returns domain.ErrConflict on a duplicate active username or email.
	CreateUser(ctx context.Context, create UserCreate) (*user.User, error)

	// UpdateUser applies the supplied fields to an existing user and returns
	// the updated entity. A supplied password is re-hashed.
	// Returns domain.ErrNotFound if the user does not exist.
	// Returns domain.ErrConflict if the new email collides with another user.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*user.User, error)

	// DeleteUser soft-deletes the user. Tasks keep their assignee reference;
	// it is a weak reference used for filtering and display only.
	// Returns domain.ErrNotFound if the user does not exist.
	DeleteUser(ctx context.Context, id int64) error
}

// UserCreate carries the fields for registering a new user account.
type UserCreate struct {
	Username string
	Email    string
	FullName string
	Password string
}

// UserUpdate carries the optional fields of a partial user update.
// Nil means "do not change this field".
type UserUpdate struct {
	Email    *string
	FullName *string
	Password *string
}

// AuthService defines the service port for authentication.
type AuthService interface {
	// Login verifies the credentials and returns a fresh token pair.
	// Returns domain.ErrUnauthorized on an unknown username or wrong password.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a fresh token pair.
	// Returns domain.ErrUnauthorized on an invalid, expired, or wrong-type
	// token, or when the subject user no longer exists.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// TokenPair holds a newly issued access/refresh token set.
// ExpiresIn is the access token lifetime in seconds.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
