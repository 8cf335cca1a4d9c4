package ports

import (
	"context"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
)

// TaskListRepository defines the persistence port for task lists.
// Implemented by storage adapters; called by the application layer.
// Point reads never return soft-deleted rows. Uniqueness of active titles is
// ultimately enforced by the store (partial unique index); ExistsWithTitle is
// the fast-path check the use cases run first.
type TaskListRepository interface {
	// FindByID returns a single active list by ID.
	// Returns domain.ErrNotFound if the list does not exist or is soft-deleted.
	FindByID(ctx context.Context, id int64) (*tasklist.TaskList, error)

	// FindByIDIncludeDeleted returns a single list by ID regardless of soft
	// deletion, so listings scoped to a deleted list can still resolve it.
	// Returns domain.ErrNotFound only when no row with the ID exists.
	FindByIDIncludeDeleted(ctx context.Context, id int64) (*tasklist.TaskList, error)

	// List returns all active lists ordered by creation time ascending.
	List(ctx context.Context) ([]tasklist.TaskList, error)

	// Create persists a new list and returns it with server-assigned fields.
	// Returns domain.ErrConflict if an active list already holds the title.
	Create(ctx context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error)

	// Update persists changes to an existing list and returns the updated entity.
	// Returns domain.ErrNotFound if the list does not exist or is soft-deleted.
	// Returns domain.ErrConflict if the new title collides with an active list.
	Update(ctx context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error)

	// SoftDelete marks the list deleted without removing the row.
	// Returns domain.ErrNotFound if the list does not exist or is already deleted.
	SoftDelete(ctx context.Context, id int64) error

	// ExistsWithTitle reports whether an active list other than excludeID
	// holds the given title. Pass excludeID 0 to check all lists.
	ExistsWithTitle(ctx context.Context, title string, excludeID int64) (bool, error)
}

// TaskRepository defines the persistence port for tasks.
type TaskRepository interface {
	// FindByID returns a single active task by ID.
	// Returns domain.ErrNotFound if the task does not exist or is soft-deleted.
	FindByID(ctx context.Context, id int64) (*task.Task, error)

	// List returns tasks matching the filter, ordered by creation time
	// ascending with ID as tiebreak. Soft-deleted tasks appear only when
	// the filter sets IncludeDeleted.
	List(ctx context.Context, filter task.Filter) ([]task.Task, error)

	// Create persists a new task and returns it with server-assigned fields.
	// Returns domain.ErrConflict if the list already holds an active task
	// with the same title.
	Create(ctx context.Context, t *task.Task) (*task.Task, error)

	// Update persists changes to an existing task and returns the updated entity.
	// Returns domain.ErrNotFound if the task does not exist or is soft-deleted.
	// Returns domain.ErrConflict on an active duplicate title within the list.
	Update(ctx context.Context, t *task.Task) (*task.Task, error)

	// SoftDelete marks the task deleted without removing the row.
	// Returns domain.ErrNotFound if the task does not exist or is already deleted.
	SoftDelete(ctx context.Context, id int64) error

	// SoftDeleteByList marks all active tasks of the list deleted. Used when
	// the owning list is deleted; the tasks stay retrievable via an
	// include-deleted listing. Deleting zero tasks is not an error.
	SoftDeleteByList(ctx context.Context, listID int64) error

	// ExistsWithTitle reports whether the list holds an active task other
	// than excludeID with the given title. Pass excludeID 0 to check all.
	ExistsWithTitle(ctx context.Context, listID int64, title string, excludeID int64) (bool, error)

	// CountActive returns the number of active tasks in the list.
	CountActive(ctx context.Context, listID int64) (int, error)
}

// UserRepository defines the persistence port for user accounts.
type UserRepository interface {
	// FindByID returns a single active user by ID.
	// Returns domain.ErrNotFound if the user does not exist or is soft-deleted.
	FindByID(ctx context.Context, id int64) (*user.User, error)

	// FindByUsername returns a single active user by exact username.
	// Returns domain.ErrNotFound if no active user holds the username.
	FindByUsername(ctx context.Context, username string) (*user.User, error)

	// List returns all active users ordered by creation time ascending.
	List(ctx context.Context) ([]user.User, error)

	// Create persists a new user and returns it with server-assigned fields.
	// Returns domain.ErrConflict on a duplicate active username or email.
	Create(ctx context.Context, u *user.User) (*user.User, error)

	// Update persists changes to an existing user and returns the updated entity.
	// Returns domain.ErrNotFound if the user does not exist or is soft-deleted.
	Update(ctx context.Context, u *user.User) (*user.User, error)

	// SoftDelete marks the user deleted without removing the row.
	// Returns domain.ErrNotFound if the user does not exist or is already deleted.
	SoftDelete(ctx context.Context, id int64) error

	// ExistsWithUsername reports whether an active user other than excludeID
	// holds the username. Pass excludeID 0 to check all users.
	ExistsWithUsername(ctx context.Context, username string, excludeID int64) (bool, error)

	// ExistsWithEmail reports whether an active user other than excludeID
	// holds the email. Pass excludeID 0 to check all users.
	ExistsWithEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}
