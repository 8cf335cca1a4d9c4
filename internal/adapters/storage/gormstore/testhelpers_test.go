package gormstore_test

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen11/taskboard/internal/adapters/storage/gormstore"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/platform/config"
)

// testBase is the reference timestamp for seeded entities. Tests offset from
// it to control creation-time ordering.
var testBase = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// openTestDB opens a fresh in-memory SQLite database with migrations applied.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gormstore.Open(&config.StorageConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := gormstore.Close(db); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})
	return db
}

// newList builds an unsaved list entity with timestamps offset from testBase.
func newList(title string, offset time.Duration) *tasklist.TaskList {
	ts := testBase.Add(offset)
	return &tasklist.TaskList{
		Title:     title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// newTask builds an unsaved pending/medium task entity with timestamps offset
// from testBase. Tasks reference lists by bare ID here; referential checks
// live in the application layer.
func newTask(listID int64, title string, offset time.Duration) *task.Task {
	ts := testBase.Add(offset)
	return &task.Task{
		Title:     title,
		Status:    task.StatusPending,
		Priority:  task.PriorityMedium,
		ListID:    listID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// newUser builds an unsaved user entity with timestamps offset from testBase.
func newUser(username, email string, offset time.Duration) *user.User {
	ts := testBase.Add(offset)
	return &user.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$12$Cmij2HbQZTTpUPZxSVLQh.ZD0G8XhrlCg8I8Xit7JyNJReQjQubs6",
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func int64Ptr(v int64) *int64 { return &v }
