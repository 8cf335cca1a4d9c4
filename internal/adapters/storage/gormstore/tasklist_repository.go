package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.TaskListRepository = (*TaskListRepository)(nil)

// TaskListRepository persists task lists via GORM.
type TaskListRepository struct {
	db *gorm.DB
}

// NewTaskListRepository creates a task-list repository over the given connection.
func NewTaskListRepository(db *gorm.DB) *TaskListRepository {
	return &TaskListRepository{db: db}
}

// FindByID returns a single active list by ID.
func (r *TaskListRepository) FindByID(ctx context.Context, id int64) (*tasklist.TaskList, error) {
	var rec taskListRecord
	err := r.db.WithContext(ctx).
		First(&rec, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("task list", id)
		}
		return nil, fmt.Errorf("finding task list: %w", err)
	}
	return rec.toDomain(), nil
}

// FindByIDIncludeDeleted returns a list by ID regardless of soft deletion.
func (r *TaskListRepository) FindByIDIncludeDeleted(ctx context.Context, id int64) (*tasklist.TaskList, error) {
	var rec taskListRecord
	err := r.db.WithContext(ctx).
		First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("task list", id)
		}
		return nil, fmt.Errorf("finding task list: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns all active lists ordered by creation time ascending.
func (r *TaskListRepository) List(ctx context.Context) ([]tasklist.TaskList, error) {
	var recs []taskListRecord
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing task lists: %w", err)
	}

	lists := make([]tasklist.TaskList, 0, len(recs))
	for i := range recs {
		lists = append(lists, *recs[i].toDomain())
	}
	return lists, nil
}

// Create persists a new list and returns it with the assigned ID.
func (r *TaskListRepository) Create(ctx context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error) {
	rec := taskListRecordFrom(list)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("task list title", list.Title)
		}
		return nil, fmt.Errorf("creating task list: %w", err)
	}
	return rec.toDomain(), nil
}

// Update persists changes to an existing active list.
func (r *TaskListRepository) Update(ctx context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error) {
	rec := taskListRecordFrom(list)
	result := r.db.WithContext(ctx).
		Model(&taskListRecord{}).
		Where("id = ? AND deleted_at IS NULL", rec.ID).
		Updates(map[string]any{
			"title":       rec.Title,
			"description": rec.Description,
			"updated_at":  rec.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return nil, conflict("task list title", list.Title)
		}
		return nil, fmt.Errorf("updating task list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, notFound("task list", rec.ID)
	}
	return rec.toDomain(), nil
}

// SoftDelete marks the list deleted without removing the row.
func (r *TaskListRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&taskListRecord{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("deleting task list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("task list", id)
	}
	return nil
}

// ExistsWithTitle reports whether an active list other than excludeID holds
// the title.
func (r *TaskListRepository) ExistsWithTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&taskListRecord{}).
		Where("title = ? AND deleted_at IS NULL", title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking task list title: %w", err)
	}
	return count > 0, nil
}
