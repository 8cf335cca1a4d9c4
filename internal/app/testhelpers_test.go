package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/taskboard/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/platform/auth"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// testNow is the instant every service-injected clock returns in tests.
var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func int64Ptr(v int64) *int64 { return &v }

// notifierMock is a testify mock for the ports.Notifier client port.
type notifierMock struct {
	mock.Mock
}

var _ ports.Notifier = (*notifierMock)(nil)

func newNotifierMock(t *testing.T) *notifierMock {
	m := &notifierMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *notifierMock) TaskAssigned(ctx context.Context, t *task.Task, assignee *user.User) error {
	args := m.Called(ctx, t, assignee)
	return args.Error(0)
}

func (m *notifierMock) TaskCompleted(ctx context.Context, t *task.Task, assignee *user.User) error {
	args := m.Called(ctx, t, assignee)
	return args.Error(0)
}

// taskDeps bundles a TaskService wired to in-memory repositories and a
// notifier mock.
type taskDeps struct {
	tasks    *memory.TaskRepository
	lists    *memory.TaskListRepository
	users    *memory.UserRepository
	notifier *notifierMock
	svc      *TaskService
}

func newTaskDeps(t *testing.T) *taskDeps {
	d := &taskDeps{
		tasks:    memory.NewTaskRepository(),
		lists:    memory.NewTaskListRepository(),
		users:    memory.NewUserRepository(),
		notifier: newNotifierMock(t),
	}
	d.svc = NewTaskService(d.tasks, d.lists, d.users, d.notifier, discardLogger(), fixedNow)
	return d
}

// seedList inserts a list directly through the repository, bypassing the
// service under test.
func seedList(t *testing.T, repo *memory.TaskListRepository, title string) *tasklist.TaskList {
	t.Helper()
	created, err := repo.Create(context.Background(), &tasklist.TaskList{
		Title:     title,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("seeding list %q: %v", title, err)
	}
	return created
}

func seedTask(t *testing.T, repo *memory.TaskRepository, listID int64, title string, status task.Status) *task.Task {
	t.Helper()
	created, err := repo.Create(context.Background(), &task.Task{
		Title:     title,
		Status:    status,
		Priority:  task.PriorityMedium,
		ListID:    listID,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("seeding task %q: %v", title, err)
	}
	return created
}

func seedUser(t *testing.T, repo *memory.UserRepository, username string) *user.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	if err != nil {
		t.Fatalf("seeding user %q: %v", username, err)
	}
	return created
}

// seedUserWithPassword registers a user through the real hasher so login
// tests can verify the plaintext.
func seedUserWithPassword(t *testing.T, repo *memory.UserRepository, username, password string) *user.User {
	t.Helper()
	hash, err := auth.NewPasswordHasher().Hash(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	created, err := repo.Create(context.Background(), &user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	if err != nil {
		t.Fatalf("seeding user %q: %v", username, err)
	}
	return created
}
