package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// TaskService implements ports.TaskService. It owns the task-level use cases:
// referential checks against lists and users, per-list title uniqueness,
// status transitions, and best-effort assignee notifications.
type TaskService struct {
	tasks    ports.TaskRepository
	lists    ports.TaskListRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewTaskService creates a TaskService. The injected time source stamps
// created and updated entities; pass time.Now outside tests.
func NewTaskService(
	tasks ports.TaskRepository,
	lists ports.TaskListRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	logger *slog.Logger,
	now func() time.Time,
) *TaskService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		tasks:    tasks,
		lists:    lists,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      now,
	}
}

// ListTasks returns tasks matching the filter. A referenced list or assignee
// that never existed yields domain.ErrNotFound rather than an empty result.
// A soft-deleted list is still a valid scope: its tasks were cascade-deleted
// with it, so default filters yield an empty set and IncludeDeleted surfaces
// them.
func (s *TaskService) ListTasks(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	s.logger.InfoContext(ctx, "listing tasks")

	if filter.ListID != nil {
		if _, err := s.lists.FindByIDIncludeDeleted(ctx, *filter.ListID); err != nil {
			return nil, fmt.Errorf("verifying list: %w", err)
		}
	}
	if filter.AssigneeID != nil {
		if _, err := s.users.FindByID(ctx, *filter.AssigneeID); err != nil {
			return nil, fmt.Errorf("verifying assignee: %w", err)
		}
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "ListTasks"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return tasks, nil
}

// ListTasksWithStats returns the list's tasks matching the filter plus
// completion statistics computed over all of the list's active tasks. The
// list may itself be soft-deleted; only a list that never existed is
// domain.ErrNotFound.
func (s *TaskService) ListTasksWithStats(ctx context.Context, listID int64, filter task.Filter) (*ports.TasksWithStats, error) {
	s.logger.InfoContext(ctx, "listing tasks with stats", slog.Int64("list_id", listID))

	if _, err := s.lists.FindByIDIncludeDeleted(ctx, listID); err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task list",
			slog.String("operation", "ListTasksWithStats"),
			slog.Int64("list_id", listID),
			slog.Any("error", err),
		)
		return nil, err
	}

	filter.ListID = &listID
	filtered, err := s.tasks.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "ListTasksWithStats"),
			slog.Int64("list_id", listID),
			slog.Any("error", err),
		)
		return nil, err
	}

	// Stats cover every active task of the list, not just the filtered ones.
	all, err := s.tasks.List(ctx, task.Filter{ListID: &listID})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks for stats",
			slog.String("operation", "ListTasksWithStats"),
			slog.Int64("list_id", listID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &ports.TasksWithStats{
		Tasks: filtered,
		Stats: tasklist.ComputeStats(listID, all),
	}, nil
}

// ListTasksByAssignee returns the active tasks assigned to the user.
func (s *TaskService) ListTasksByAssignee(ctx context.Context, userID int64) ([]task.Task, error) {
	s.logger.InfoContext(ctx, "listing tasks by assignee", slog.Int64("user_id", userID))

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("verifying assignee: %w", err)
	}

	tasks, err := s.tasks.List(ctx, task.Filter{AssigneeID: &userID})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "ListTasksByAssignee"),
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return tasks, nil
}

// GetTask returns a single active task by ID.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	s.logger.InfoContext(ctx, "fetching task", slog.Int64("id", id))

	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task",
			slog.String("operation", "GetTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return t, nil
}

// CreateTask validates and creates a task under its list. Status always
// starts pending and priority defaults to medium when unset. A set assignee
// is notified best-effort.
func (s *TaskService) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	s.logger.InfoContext(ctx, "creating task",
		slog.String("title", t.Title),
		slog.Int64("list_id", t.ListID),
	)

	t.Title = strings.TrimSpace(t.Title)
	t.Status = task.StatusPending
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.lists.FindByID(ctx, t.ListID); err != nil {
		return nil, fmt.Errorf("verifying list: %w", err)
	}

	var assignee *user.User
	if t.AssigneeID != nil {
		var err error
		assignee, err = s.users.FindByID(ctx, *t.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("verifying assignee: %w", err)
		}
	}

	taken, err := s.tasks.ExistsWithTitle(ctx, t.ListID, t.Title, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check title uniqueness",
			slog.String("operation", "CreateTask"),
			slog.Int64("list_id", t.ListID),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("task title", t.Title)
	}

	now := s.now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DeletedAt = nil

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create task",
			slog.String("operation", "CreateTask"),
			slog.Int64("list_id", t.ListID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if assignee != nil {
		s.notifyAssigned(ctx, created, assignee)
	}

	return created, nil
}

// UpdateTask applies the supplied fields to an existing task and returns the
// updated entity. All referential and uniqueness checks run before the single
// storage write, so a failed update never mutates storage.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, update ports.TaskUpdate) (*task.Task, error) {
	s.logger.InfoContext(ctx, "updating task", slog.Int64("id", id))

	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task",
			slog.String("operation", "UpdateTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if update.Title != nil {
		t.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.DueDate != nil {
		t.DueDate = update.DueDate
	}
	if update.ListID != nil && *update.ListID != t.ListID {
		if _, err := s.lists.FindByID(ctx, *update.ListID); err != nil {
			return nil, fmt.Errorf("verifying target list: %w", err)
		}
		t.ListID = *update.ListID
	}
	if update.AssigneeID != nil {
		if _, err := s.users.FindByID(ctx, *update.AssigneeID); err != nil {
			return nil, fmt.Errorf("verifying assignee: %w", err)
		}
		t.AssigneeID = update.AssigneeID
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.tasks.ExistsWithTitle(ctx, t.ListID, t.Title, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check title uniqueness",
			slog.String("operation", "UpdateTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("task title", t.Title)
	}

	t.UpdatedAt = s.now().UTC()

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update task",
			slog.String("operation", "UpdateTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// UpdateTaskStatus sets the task's status. Cancelling is a status change,
// never a soft delete. A transition into completed notifies the assignee.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error) {
	s.logger.InfoContext(ctx, "updating task status",
		slog.Int64("id", id),
		slog.String("status", status.String()),
	)

	if !status.IsValid() {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", status)},
		}
	}

	return s.setStatus(ctx, "UpdateTaskStatus", id, status)
}

// CompleteTask marks the task completed.
func (s *TaskService) CompleteTask(ctx context.Context, id int64) (*task.Task, error) {
	s.logger.InfoContext(ctx, "completing task", slog.Int64("id", id))
	return s.setStatus(ctx, "CompleteTask", id, task.StatusCompleted)
}

// ReopenTask returns the task to pending.
func (s *TaskService) ReopenTask(ctx context.Context, id int64) (*task.Task, error) {
	s.logger.InfoContext(ctx, "reopening task", slog.Int64("id", id))
	return s.setStatus(ctx, "ReopenTask", id, task.StatusPending)
}

// AssignTask assigns the task to a user, or unassigns it when userID is nil.
// The new assignee is notified best-effort.
func (s *TaskService) AssignTask(ctx context.Context, id int64, userID *int64) (*task.Task, error) {
	s.logger.InfoContext(ctx, "assigning task",
		slog.Int64("id", id),
		slog.Any("user_id", userID),
	)

	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task",
			slog.String("operation", "AssignTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	var assignee *user.User
	if userID != nil {
		assignee, err = s.users.FindByID(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("verifying assignee: %w", err)
		}
	}

	t.AssigneeID = userID
	t.UpdatedAt = s.now().UTC()

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to assign task",
			slog.String("operation", "AssignTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if assignee != nil {
		s.notifyAssigned(ctx, updated, assignee)
	}

	return updated, nil
}

// DeleteTask soft-deletes the task.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting task", slog.Int64("id", id))

	if err := s.tasks.SoftDelete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete task",
			slog.String("operation", "DeleteTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// setStatus transitions the task to the given status and fires the
// completion notification when the task newly enters completed.
func (s *TaskService) setStatus(ctx context.Context, operation string, id int64, status task.Status) (*task.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task",
			slog.String("operation", operation),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	wasCompleted := t.Status == task.StatusCompleted
	t.Status = status
	t.UpdatedAt = s.now().UTC()

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update task status",
			slog.String("operation", operation),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if status == task.StatusCompleted && !wasCompleted {
		s.notifyCompleted(ctx, updated)
	}

	return updated, nil
}

// notifyAssigned delivers the assignment notification. Delivery is
// best-effort: failures are logged and never fail the triggering operation.
func (s *TaskService) notifyAssigned(ctx context.Context, t *task.Task, assignee *user.User) {
	if err := s.notifier.TaskAssigned(ctx, t, assignee); err != nil {
		s.logger.WarnContext(ctx, "task assignment notification failed",
			slog.Int64("task_id", t.ID),
			slog.Int64("assignee_id", assignee.ID),
			slog.Any("error", err),
		)
	}
}

// notifyCompleted delivers the completion notification to the assignee, if
// any. Delivery is best-effort.
func (s *TaskService) notifyCompleted(ctx context.Context, t *task.Task) {
	if t.AssigneeID == nil {
		return
	}

	assignee, err := s.users.FindByID(ctx, *t.AssigneeID)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping completion notification",
			slog.Int64("task_id", t.ID),
			slog.Int64("assignee_id", *t.AssigneeID),
			slog.Any("error", err),
		)
		return
	}

	if err := s.notifier.TaskCompleted(ctx, t, assignee); err != nil {
		s.logger.WarnContext(ctx, "task completion notification failed",
			slog.Int64("task_id", t.ID),
			slog.Int64("assignee_id", assignee.ID),
			slog.Any("error", err),
		)
	}
}
