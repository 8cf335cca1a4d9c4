// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// TaskListResponse represents a single task list in HTTP responses.
// TaskCount is present only in listings, where it carries the number of
// active tasks in the list.
type TaskListResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskCount   *int   `json:"task_count,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TaskListsResponse represents a collection of task lists in HTTP responses.
type TaskListsResponse struct {
	TaskLists []TaskListResponse `json:"task_lists"`
	Count     int                `json:"count"`
}

// ToTaskListResponse converts a domain TaskList entity to an HTTP response DTO.
func ToTaskListResponse(l *tasklist.TaskList) TaskListResponse {
	return TaskListResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
}

// ToTaskListsResponse converts counted task lists to an HTTP list response DTO.
func ToTaskListsResponse(lists []ports.TaskListWithCount) TaskListsResponse {
	items := make([]TaskListResponse, len(lists))
	for i := range lists {
		items[i] = ToTaskListResponse(&lists[i].List)
		count := lists[i].TaskCount
		items[i].TaskCount = &count
	}
	return TaskListsResponse{
		TaskLists: items,
		Count:     len(items),
	}
}

// StatsResponse represents completion statistics for one task list.
type StatsResponse struct {
	ListID            int64   `json:"list_id"`
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	InProgress        int     `json:"in_progress"`
	Completed         int     `json:"completed"`
	Cancelled         int     `json:"cancelled"`
	CompletionPercent float64 `json:"completion_percent"`
}

// ToStatsResponse converts derived list statistics to an HTTP response DTO.
func ToStatsResponse(s *tasklist.Stats) StatsResponse {
	return StatsResponse{
		ListID:            s.ListID,
		Total:             s.Total,
		Pending:           s.Pending,
		InProgress:        s.InProgress,
		Completed:         s.Completed,
		Cancelled:         s.Cancelled,
		CompletionPercent: s.CompletionPercent,
	}
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ListID      int64  `json:"list_id"`
	AssigneeID  *int64 `json:"assignee_id,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TasksResponse represents a collection of tasks in HTTP responses.
type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// TasksWithStatsResponse represents a list's filtered tasks together with
// its completion statistics.
type TasksWithStatsResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
	Stats StatsResponse  `json:"stats"`
}

// ToTaskResponse converts a domain Task entity to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		ListID:      t.ListID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(time.RFC3339)
	}
	return resp
}

// ToTasksResponse converts a slice of domain Task entities to an HTTP list
// response DTO.
func ToTasksResponse(tasks []task.Task) TasksResponse {
	items := make([]TaskResponse, len(tasks))
	for i := range tasks {
		items[i] = ToTaskResponse(&tasks[i])
	}
	return TasksResponse{
		Tasks: items,
		Count: len(items),
	}
}

// ToTasksWithStatsResponse converts a filtered-tasks-plus-stats result to an
// HTTP response DTO.
func ToTasksWithStatsResponse(ts *ports.TasksWithStats) TasksWithStatsResponse {
	tasks := ToTasksResponse(ts.Tasks)
	return TasksWithStatsResponse{
		Tasks: tasks.Tasks,
		Count: tasks.Count,
		Stats: ToStatsResponse(&ts.Stats),
	}
}

// UserResponse represents a single user in HTTP responses.
// The password hash is never serialized.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UsersResponse represents a collection of users in HTTP responses.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// ToUserResponse converts a domain User entity to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// ToUsersResponse converts a slice of domain User entities to an HTTP list
// response DTO.
func ToUsersResponse(users []user.User) UsersResponse {
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return UsersResponse{
		Users: items,
		Count: len(items),
	}
}

// TokenResponse represents an issued access/refresh token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ToTokenResponse converts an issued token pair to an HTTP response DTO.
func ToTokenResponse(pair *ports.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}
