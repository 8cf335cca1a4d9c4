// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/taskboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// TaskListHandler handles HTTP requests for task-list CRUD, statistics, and
// the nested per-list task operations.
type TaskListHandler struct {
	lists ports.TaskListService
	tasks ports.TaskService
}

// NewTaskListHandler creates a new TaskListHandler with the given service ports.
func NewTaskListHandler(lists ports.TaskListService, tasks ports.TaskService) *TaskListHandler {
	return &TaskListHandler{lists: lists, tasks: tasks}
}

// ListTaskLists handles GET /api/v1/task-lists.
func (h *TaskListHandler) ListTaskLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.ListTaskLists(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListsResponse(lists))
}

// CreateTaskList handles POST /api/v1/task-lists.
func (h *TaskListHandler) CreateTaskList(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list := &tasklist.TaskList{
		Title:       req.Title,
		Description: req.Description,
	}

	created, err := h.lists.CreateTaskList(r.Context(), list)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTaskListResponse(created))
}

// GetTaskList handles GET /api/v1/task-lists/{listID}.
func (h *TaskListHandler) GetTaskList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "listID")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	list, err := h.lists.GetTaskList(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListResponse(list))
}

// UpdateTaskList handles PATCH /api/v1/task-lists/{listID}.
func (h *TaskListHandler) UpdateTaskList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "listID")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTaskListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.lists.UpdateTaskList(r.Context(), id, ports.TaskListUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListResponse(updated))
}

// DeleteTaskList handles DELETE /api/v1/task-lists/{listID}.
func (h *TaskListHandler) DeleteTaskList(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "listID")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.lists.DeleteTaskList(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTaskListStats handles GET /api/v1/task-lists/{listID}/stats.
func (h *TaskListHandler) GetTaskListStats(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "listID")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	stats, err := h.lists.GetTaskListStats(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}

// ListTaskListTasks handles GET /api/v1/task-lists/{listID}/tasks.
// The response carries the filtered tasks plus the list's completion
// statistics over all of its active tasks.
func (h *TaskListHandler) ListTaskListTasks(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "listID")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	result, err := h.tasks.ListTasksWithStats(r.Context(), id, filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTasksWithStatsResponse(result))
}

// CreateTaskListTask handles POST /api/v1/task-lists/{listID}/tasks.
// The owning list comes from the URL; a list_id in the body is ignored.
func (h *TaskListHandler) CreateTaskListTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "listID")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t := mapCreateTaskRequest(&req)
	t.ListID = id

	created, err := h.tasks.CreateTask(r.Context(), t)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(created))
}
