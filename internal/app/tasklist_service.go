// Package app provides application services that orchestrate use cases by
// coordinating domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/app/fanout"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// countWorkers bounds the concurrent per-list task-count lookups in
// ListTaskLists.
const countWorkers = 8

// Compile-time check that TaskListService implements ports.TaskListService.
var _ ports.TaskListService = (*TaskListService)(nil)

// TaskListService implements ports.TaskListService. It owns the list-level
// use cases: uniqueness pre-checks, the task-count fan-out, the delete
// cascade, and completion statistics.
type TaskListService struct {
	lists  ports.TaskListRepository
	tasks  ports.TaskRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskListService creates a TaskListService. The injected time source
// stamps created and updated entities; pass time.Now outside tests.
func NewTaskListService(lists ports.TaskListRepository, tasks ports.TaskRepository, logger *slog.Logger, now func() time.Time) *TaskListService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if now == nil {
		now = time.Now
	}
	return &TaskListService{
		lists:  lists,
		tasks:  tasks,
		logger: logger,
		now:    now,
	}
}

// ListTaskLists returns all active lists with their active task counts.
// Counts are fetched concurrently with bounded fan-out; a single failed
// count fails the listing.
func (s *TaskListService) ListTaskLists(ctx context.Context) ([]ports.TaskListWithCount, error) {
	s.logger.InfoContext(ctx, "listing task lists")

	lists, err := s.lists.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list task lists",
			slog.String("operation", "ListTaskLists"),
			slog.Any("error", err),
		)
		return nil, err
	}

	out, err := fanout.Map(ctx, countWorkers, lists,
		func(ctx context.Context, l tasklist.TaskList) (ports.TaskListWithCount, error) {
			count, err := s.tasks.CountActive(ctx, l.ID)
			if err != nil {
				return ports.TaskListWithCount{}, fmt.Errorf("counting tasks for list %d: %w", l.ID, err)
			}
			return ports.TaskListWithCount{List: l, TaskCount: count}, nil
		})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count list tasks",
			slog.String("operation", "ListTaskLists"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return out, nil
}

// GetTaskList returns a single active list by ID.
func (s *TaskListService) GetTaskList(ctx context.Context, id int64) (*tasklist.TaskList, error) {
	s.logger.InfoContext(ctx, "fetching task list", slog.Int64("id", id))

	list, err := s.lists.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task list",
			slog.String("operation", "GetTaskList"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return list, nil
}

// CreateTaskList validates and creates a new list, returning the created
// entity with server-assigned fields (ID, timestamps).
func (s *TaskListService) CreateTaskList(ctx context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error) {
	s.logger.InfoContext(ctx, "creating task list", slog.String("title", list.Title))

	list.Title = strings.TrimSpace(list.Title)
	if err := list.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.lists.ExistsWithTitle(ctx, list.Title, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check title uniqueness",
			slog.String("operation", "CreateTaskList"),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("task list title", list.Title)
	}

	now := s.now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now
	list.DeletedAt = nil

	created, err := s.lists.Create(ctx, list)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create task list",
			slog.String("operation", "CreateTaskList"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// UpdateTaskList applies the supplied fields to an existing list and returns
// the updated entity. Invariants are re-checked after the merge; a failed
// update leaves storage untouched.
func (s *TaskListService) UpdateTaskList(ctx context.Context, id int64, update ports.TaskListUpdate) (*tasklist.TaskList, error) {
	s.logger.InfoContext(ctx, "updating task list", slog.Int64("id", id))

	list, err := s.lists.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task list",
			slog.String("operation", "UpdateTaskList"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if update.Title != nil {
		list.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		list.Description = *update.Description
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.lists.ExistsWithTitle(ctx, list.Title, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check title uniqueness",
			slog.String("operation", "UpdateTaskList"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("task list title", list.Title)
	}

	list.UpdatedAt = s.now().UTC()

	updated, err := s.lists.Update(ctx, list)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update task list",
			slog.String("operation", "UpdateTaskList"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// DeleteTaskList soft-deletes the list and cascade-soft-deletes its active
// tasks. The tasks stay in storage, retrievable via include-deleted listings.
func (s *TaskListService) DeleteTaskList(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting task list", slog.Int64("id", id))

	if err := s.lists.SoftDelete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete task list",
			slog.String("operation", "DeleteTaskList"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	if err := s.tasks.SoftDeleteByList(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to cascade task deletion",
			slog.String("operation", "DeleteTaskList"),
			slog.Int64("list_id", id),
			slog.Any("error", err),
		)
		return fmt.Errorf("cascading task deletion: %w", err)
	}

	return nil
}

// GetTaskListStats returns derived completion statistics for the list,
// computed over its active tasks.
func (s *TaskListService) GetTaskListStats(ctx context.Context, id int64) (*tasklist.Stats, error) {
	s.logger.InfoContext(ctx, "computing task list stats", slog.Int64("id", id))

	if _, err := s.lists.FindByID(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task list",
			slog.String("operation", "GetTaskListStats"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, task.Filter{ListID: &id})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks for stats",
			slog.String("operation", "GetTaskListStats"),
			slog.Int64("list_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	stats := tasklist.ComputeStats(id, tasks)
	return &stats, nil
}
