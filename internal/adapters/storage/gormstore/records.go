package gormstore

import (
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
)

// Timestamps are set by the application layer from its injected clock, so
// GORM's automatic time tracking is disabled on every record.

// taskListRecord is the GORM model for the task_lists table.
type taskListRecord struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null;uniqueIndex:idx_task_lists_title_active,where:deleted_at IS NULL"`
	Description string     `gorm:"size:1000"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false"`
	DeletedAt   *time.Time `gorm:"index"`
}

func (taskListRecord) TableName() string { return "task_lists" }

func (r *taskListRecord) toDomain() *tasklist.TaskList {
	return &tasklist.TaskList{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

func taskListRecordFrom(l *tasklist.TaskList) *taskListRecord {
	return &taskListRecord{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		DeletedAt:   l.DeletedAt,
	}
}

// taskRecord is the GORM model for the tasks table. The composite partial
// unique index scopes title uniqueness to active tasks within one list.
type taskRecord struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null;uniqueIndex:idx_tasks_list_title_active,priority:2"`
	Description string     `gorm:"size:1000"`
	Status      string     `gorm:"size:32;not null;index"`
	Priority    string     `gorm:"size:32;not null"`
	ListID      int64      `gorm:"not null;index;uniqueIndex:idx_tasks_list_title_active,priority:1,where:deleted_at IS NULL"`
	AssigneeID  *int64     `gorm:"index"`
	DueDate     *time.Time
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false"`
	DeletedAt   *time.Time `gorm:"index"`
}

func (taskRecord) TableName() string { return "tasks" }

func (r *taskRecord) toDomain() *task.Task {
	return &task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      task.Status(r.Status),
		Priority:    task.Priority(r.Priority),
		ListID:      r.ListID,
		AssigneeID:  r.AssigneeID,
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

func taskRecordFrom(t *task.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ListID:      t.ListID,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DeletedAt:   t.DeletedAt,
	}
}

// userRecord is the GORM model for the users table. Username and email each
// carry their own partial unique index over active rows.
type userRecord struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"size:64;not null;uniqueIndex:idx_users_username_active,where:deleted_at IS NULL"`
	Email        string     `gorm:"size:255;not null;uniqueIndex:idx_users_email_active,where:deleted_at IS NULL"`
	FullName     string     `gorm:"size:255"`
	PasswordHash string     `gorm:"size:255;not null"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime:false"`
	DeletedAt    *time.Time `gorm:"index"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *user.User {
	return &user.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    r.DeletedAt,
	}
}

func userRecordFrom(u *user.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		DeletedAt:    u.DeletedAt,
	}
}
