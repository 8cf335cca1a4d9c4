package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository persists tasks via GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a task repository over the given connection.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// FindByID returns a single active task by ID.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	var rec taskRecord
	err := r.db.WithContext(ctx).
		First(&rec, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("task", id)
		}
		return nil, fmt.Errorf("finding task: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns tasks matching the filter, ordered by creation time ascending
// with ID as tiebreak. Filter criteria are AND-combined; zero values mean no
// filtering on that criterion.
func (r *TaskRepository) List(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	q := r.db.WithContext(ctx).Model(&taskRecord{})

	if !filter.IncludeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	if filter.ListID != nil {
		q = q.Where("list_id = ?", *filter.ListID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", string(filter.Priority))
	}
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var recs []taskRecord
	if err := q.Order("created_at ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, *recs[i].toDomain())
	}
	return tasks, nil
}

// Create persists a new task and returns it with the assigned ID.
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	rec := taskRecordFrom(t)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("task title", t.Title)
		}
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return rec.toDomain(), nil
}

// Update persists changes to an existing active task. A nil assignee or due
// date is written through as NULL, so clearing those fields persists.
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) (*task.Task, error) {
	rec := taskRecordFrom(t)
	result := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ? AND deleted_at IS NULL", rec.ID).
		Updates(map[string]any{
			"title":       rec.Title,
			"description": rec.Description,
			"status":      rec.Status,
			"priority":    rec.Priority,
			"list_id":     rec.ListID,
			"assignee_id": rec.AssigneeID,
			"due_date":    rec.DueDate,
			"updated_at":  rec.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return nil, conflict("task title", t.Title)
		}
		return nil, fmt.Errorf("updating task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, notFound("task", rec.ID)
	}
	return rec.toDomain(), nil
}

// SoftDelete marks the task deleted without removing the row.
func (r *TaskRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("deleting task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("task", id)
	}
	return nil
}

// SoftDeleteByList marks all active tasks of the list deleted. Zero matching
// tasks is not an error.
func (r *TaskRepository) SoftDeleteByList(ctx context.Context, listID int64) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("list_id = ? AND deleted_at IS NULL", listID).
		Updates(map[string]any{
			"deleted_at": now,
			"updated_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("deleting tasks of list %d: %w", listID, err)
	}
	return nil
}

// ExistsWithTitle reports whether the list holds an active task other than
// excludeID with the given title.
func (r *TaskRepository) ExistsWithTitle(ctx context.Context, listID int64, title string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("list_id = ? AND title = ? AND deleted_at IS NULL", listID, title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking task title: %w", err)
	}
	return count > 0, nil
}

// CountActive returns the number of active tasks in the list.
func (r *TaskRepository) CountActive(ctx context.Context, listID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("list_id = ? AND deleted_at IS NULL", listID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting tasks of list %d: %w", listID, err)
	}
	return int(count), nil
}
