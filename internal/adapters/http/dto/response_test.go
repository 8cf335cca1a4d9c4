package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

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

func validTaskList() tasklist.TaskList {
	return tasklist.TaskList{
		ID:          1,
		Title:       "Sprint 12",
		Description: "Current sprint work",
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func validUser() user.User {
	return user.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice Smith",
		PasswordHash: "$2a$12$notsecret",
		CreatedAt:    testTime,
		UpdatedAt:    testTime,
	}
}

func TestToTaskResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		task   task.Task
		verify func(t *testing.T, got dto.TaskResponse)
	}{
		{
			name: "maps all fields correctly",
			task: validTask(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				if got.ID != 1 {
					t.Errorf("ID = %d, want 1", got.ID)
				}
				if got.Title != "Ship release" {
					t.Errorf("Title = %q, want %q", got.Title, "Ship release")
				}
				if got.ListID != 1 {
					t.Errorf("ListID = %d, want 1", got.ListID)
				}
			},
		},
		{
			name: "status converts to string",
			task: func() task.Task {
				tk := validTask()
				tk.Status = task.StatusInProgress
				return tk
			}(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				if got.Status != "in_progress" {
					t.Errorf("Status = %q, want %q", got.Status, "in_progress")
				}
			},
		},
		{
			name: "priority converts to string",
			task: func() task.Task {
				tk := validTask()
				tk.Priority = task.PriorityHigh
				return tk
			}(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				if got.Priority != "high" {
					t.Errorf("Priority = %q, want %q", got.Priority, "high")
				}
			},
		},
		{
			name: "timestamps formatted as RFC3339",
			task: validTask(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				want := "2026-02-12T15:04:05Z"
				if got.CreatedAt != want {
					t.Errorf("CreatedAt = %q, want %q", got.CreatedAt, want)
				}
				if got.UpdatedAt != want {
					t.Errorf("UpdatedAt = %q, want %q", got.UpdatedAt, want)
				}
			},
		},
		{
			name: "absent due date stays empty",
			task: validTask(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				if got.DueDate != "" {
					t.Errorf("DueDate = %q, want empty", got.DueDate)
				}
			},
		},
		{
			name: "set due date formatted as RFC3339",
			task: func() task.Task {
				tk := validTask()
				due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
				tk.DueDate = &due
				return tk
			}(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				want := "2026-03-01T09:00:00Z"
				if got.DueDate != want {
					t.Errorf("DueDate = %q, want %q", got.DueDate, want)
				}
			},
		},
		{
			name: "assignee carried through",
			task: func() task.Task {
				tk := validTask()
				assignee := int64(9)
				tk.AssigneeID = &assignee
				return tk
			}(),
			verify: func(t *testing.T, got dto.TaskResponse) {
				t.Helper()
				if got.AssigneeID == nil || *got.AssigneeID != 9 {
					t.Errorf("AssigneeID = %v, want 9", got.AssigneeID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := dto.ToTaskResponse(&tt.task)
			tt.verify(t, got)
		})
	}
}

func TestToTasksResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tasks     []task.Task
		wantCount int
		wantLen   int
	}{
		{
			name:      "converts multiple tasks",
			tasks:     []task.Task{validTask(), validTask()},
			wantCount: 2,
			wantLen:   2,
		},
		{
			name:      "empty slice returns empty list",
			tasks:     []task.Task{},
			wantCount: 0,
			wantLen:   0,
		},
		{
			name:      "nil slice returns empty list",
			tasks:     nil,
			wantCount: 0,
			wantLen:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := dto.ToTasksResponse(tt.tasks)
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", got.Count, tt.wantCount)
			}
			if len(got.Tasks) != tt.wantLen {
				t.Errorf("len(Tasks) = %d, want %d", len(got.Tasks), tt.wantLen)
			}
		})
	}
}

func TestToTaskListResponse(t *testing.T) {
	t.Parallel()

	l := validTaskList()
	got := dto.ToTaskListResponse(&l)

	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Title != "Sprint 12" {
		t.Errorf("Title = %q, want %q", got.Title, "Sprint 12")
	}
	if got.TaskCount != nil {
		t.Errorf("TaskCount = %v, want nil for a single-entity response", got.TaskCount)
	}
	if got.CreatedAt != "2026-02-12T15:04:05Z" {
		t.Errorf("CreatedAt = %q, want %q", got.CreatedAt, "2026-02-12T15:04:05Z")
	}
}

func TestToTaskListsResponse(t *testing.T) {
	t.Parallel()

	lists := []ports.TaskListWithCount{
		{List: validTaskList(), TaskCount: 3},
		{List: validTaskList(), TaskCount: 0},
	}

	got := dto.ToTaskListsResponse(lists)

	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if got.TaskLists[0].TaskCount == nil || *got.TaskLists[0].TaskCount != 3 {
		t.Errorf("TaskLists[0].TaskCount = %v, want 3", got.TaskLists[0].TaskCount)
	}
	if got.TaskLists[1].TaskCount == nil || *got.TaskLists[1].TaskCount != 0 {
		t.Errorf("TaskLists[1].TaskCount = %v, want 0", got.TaskLists[1].TaskCount)
	}
}

func TestToStatsResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToStatsResponse(&tasklist.Stats{
		ListID:            7,
		Total:             4,
		Pending:           1,
		InProgress:        1,
		Completed:         1,
		Cancelled:         1,
		CompletionPercent: 25,
	})

	if got.ListID != 7 {
		t.Errorf("ListID = %d, want 7", got.ListID)
	}
	if got.Total != 4 {
		t.Errorf("Total = %d, want 4", got.Total)
	}
	if got.CompletionPercent != 25 {
		t.Errorf("CompletionPercent = %v, want 25", got.CompletionPercent)
	}
}

func TestToTasksWithStatsResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToTasksWithStatsResponse(&ports.TasksWithStats{
		Tasks: []task.Task{validTask()},
		Stats: tasklist.Stats{ListID: 1, Total: 1, Pending: 1},
	})

	if got.Count != 1 {
		t.Errorf("Count = %d, want 1", got.Count)
	}
	if len(got.Tasks) != 1 {
		t.Errorf("len(Tasks) = %d, want 1", len(got.Tasks))
	}
	if got.Stats.Total != 1 {
		t.Errorf("Stats.Total = %d, want 1", got.Stats.Total)
	}
}

func TestToUserResponse(t *testing.T) {
	t.Parallel()

	u := validUser()
	got := dto.ToUserResponse(&u)

	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want %q", got.Username, "alice")
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "alice@example.com")
	}
	if got.FullName != "Alice Smith" {
		t.Errorf("FullName = %q, want %q", got.FullName, "Alice Smith")
	}
}

func TestToUsersResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToUsersResponse([]user.User{validUser(), validUser()})

	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if len(got.Users) != 2 {
		t.Errorf("len(Users) = %d, want 2", len(got.Users))
	}
}

func TestUserResponse_JSONNeverCarriesPassword(t *testing.T) {
	t.Parallel()

	u := validUser()
	data, err := json.Marshal(dto.ToUserResponse(&u))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	requiredKeys := []string{"id", "username", "email", "full_name", "created_at", "updated_at"}
	for _, key := range requiredKeys {
		if _, ok := m[key]; !ok {
			t.Errorf("JSON missing key %q, got keys: %v", key, keys(m))
		}
	}

	for _, key := range []string{"password", "password_hash"} {
		if _, ok := m[key]; ok {
			t.Errorf("JSON carries forbidden key %q", key)
		}
	}
}

func TestToTokenResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToTokenResponse(&ports.TokenPair{
		AccessToken:  "access.jwt",
		RefreshToken: "refresh.jwt",
		ExpiresIn:    900,
	})

	if got.AccessToken != "access.jwt" {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, "access.jwt")
	}
	if got.RefreshToken != "refresh.jwt" {
		t.Errorf("RefreshToken = %q, want %q", got.RefreshToken, "refresh.jwt")
	}
	if got.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want %q", got.TokenType, "Bearer")
	}
	if got.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, want 900", got.ExpiresIn)
	}
}

func keys(m map[string]any) []string {
	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}
