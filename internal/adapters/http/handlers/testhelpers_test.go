package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

const testUpdatedValue = "Updated"

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validTaskList() tasklist.TaskList {
	return tasklist.TaskList{
		ID:          1,
		Title:       "Sprint 12",
		Description: "Current sprint work",
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func validTask() task.Task {
	return task.Task{
		ID:          1,
		Title:       "Ship release",
		Description: "Tag and push",
		Status:      task.StatusPending,
		Priority:    task.PriorityMedium,
		ListID:      1,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func validUser() user.User {
	return user.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Smith",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// Function-field stubs for the service ports. A nil field panics on call,
// which fails the test loudly when a handler reaches a path it should not.

var (
	_ ports.TaskListService = (*stubTaskListService)(nil)
	_ ports.TaskService     = (*stubTaskService)(nil)
	_ ports.UserService     = (*stubUserService)(nil)
	_ ports.AuthService     = (*stubAuthService)(nil)
	_ ports.HealthRegistry  = (*stubRegistry)(nil)
)

type stubTaskListService struct {
	listFn   func(ctx context.Context) ([]ports.TaskListWithCount, error)
	getFn    func(ctx context.Context, id int64) (*tasklist.TaskList, error)
	createFn func(ctx context.Context, l *tasklist.TaskList) (*tasklist.TaskList, error)
	updateFn func(ctx context.Context, id int64, u ports.TaskListUpdate) (*tasklist.TaskList, error)
	deleteFn func(ctx context.Context, id int64) error
	statsFn  func(ctx context.Context, id int64) (*tasklist.Stats, error)
}

func (s *stubTaskListService) ListTaskLists(ctx context.Context) ([]ports.TaskListWithCount, error) {
	return s.listFn(ctx)
}

func (s *stubTaskListService) GetTaskList(ctx context.Context, id int64) (*tasklist.TaskList, error) {
	return s.getFn(ctx, id)
}

func (s *stubTaskListService) CreateTaskList(ctx context.Context, l *tasklist.TaskList) (*tasklist.TaskList, error) {
	return s.createFn(ctx, l)
}

func (s *stubTaskListService) UpdateTaskList(ctx context.Context, id int64, u ports.TaskListUpdate) (*tasklist.TaskList, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubTaskListService) DeleteTaskList(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubTaskListService) GetTaskListStats(ctx context.Context, id int64) (*tasklist.Stats, error) {
	return s.statsFn(ctx, id)
}

type stubTaskService struct {
	listFn           func(ctx context.Context, f task.Filter) ([]task.Task, error)
	listWithStatsFn  func(ctx context.Context, listID int64, f task.Filter) (*ports.TasksWithStats, error)
	listByAssigneeFn func(ctx context.Context, userID int64) ([]task.Task, error)
	getFn            func(ctx context.Context, id int64) (*task.Task, error)
	createFn         func(ctx context.Context, t *task.Task) (*task.Task, error)
	updateFn         func(ctx context.Context, id int64, u ports.TaskUpdate) (*task.Task, error)
	updateStatusFn   func(ctx context.Context, id int64, status task.Status) (*task.Task, error)
	completeFn       func(ctx context.Context, id int64) (*task.Task, error)
	reopenFn         func(ctx context.Context, id int64) (*task.Task, error)
	assignFn         func(ctx context.Context, id int64, userID *int64) (*task.Task, error)
	deleteFn         func(ctx context.Context, id int64) error
}

func (s *stubTaskService) ListTasks(ctx context.Context, f task.Filter) ([]task.Task, error) {
	return s.listFn(ctx, f)
}

func (s *stubTaskService) ListTasksWithStats(ctx context.Context, listID int64, f task.Filter) (*ports.TasksWithStats, error) {
	return s.listWithStatsFn(ctx, listID, f)
}

func (s *stubTaskService) ListTasksByAssignee(ctx context.Context, userID int64) ([]task.Task, error) {
	return s.listByAssigneeFn(ctx, userID)
}

func (s *stubTaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	return s.getFn(ctx, id)
}

func (s *stubTaskService) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	return s.createFn(ctx, t)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id int64, u ports.TaskUpdate) (*task.Task, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubTaskService) UpdateTaskStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubTaskService) CompleteTask(ctx context.Context, id int64) (*task.Task, error) {
	return s.completeFn(ctx, id)
}

func (s *stubTaskService) ReopenTask(ctx context.Context, id int64) (*task.Task, error) {
	return s.reopenFn(ctx, id)
}

func (s *stubTaskService) AssignTask(ctx context.Context, id int64, userID *int64) (*task.Task, error) {
	return s.assignFn(ctx, id, userID)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubUserService struct {
	listFn          func(ctx context.Context) ([]user.User, error)
	getFn           func(ctx context.Context, id int64) (*user.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	createFn        func(ctx context.Context, c ports.UserCreate) (*user.User, error)
	updateFn        func(ctx context.Context, id int64, u ports.UserUpdate) (*user.User, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserService) CreateUser(ctx context.Context, c ports.UserCreate) (*user.User, error) {
	return s.createFn(ctx, c)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id int64, u ports.UserUpdate) (*user.User, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubAuthService struct {
	loginFn   func(ctx context.Context, username, password string) (*ports.TokenPair, error)
	refreshFn func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

type stubRegistry struct {
	results map[string]error
}

func (s *stubRegistry) Register(ports.HealthChecker) {}

func (s *stubRegistry) CheckAll(context.Context) map[string]error {
	return s.results
}
