package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// defaultListLimit caps list responses when the caller does not page.
const defaultListLimit = 100

// parseID extracts an int64 path parameter from the chi URL params.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid integer"},
		}
	}
	return id, nil
}

// parseTaskFilter builds a task filter from the request's query parameters.
// Unknown enum values and malformed integers are rejected; limit defaults to
// defaultListLimit when absent.
func parseTaskFilter(r *http.Request) (task.Filter, error) {
	q := r.URL.Query()
	fields := make(map[string]string)

	filter := task.Filter{Limit: defaultListLimit}

	if raw := q.Get("status"); raw != "" {
		status, err := task.ParseStatus(raw)
		if err != nil {
			fields["status"] = fmt.Sprintf("invalid: %q", raw)
		} else {
			filter.Status = status
		}
	}
	if raw := q.Get("priority"); raw != "" {
		priority, err := task.ParsePriority(raw)
		if err != nil {
			fields["priority"] = fmt.Sprintf("invalid: %q", raw)
		} else {
			filter.Priority = priority
		}
	}
	if raw := q.Get("list_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["list_id"] = "must be a valid integer"
		} else {
			filter.ListID = &id
		}
	}
	if raw := q.Get("assignee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["assignee_id"] = "must be a valid integer"
		} else {
			filter.AssigneeID = &id
		}
	}
	if raw := q.Get("include_deleted"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			fields["include_deleted"] = "must be a boolean"
		} else {
			filter.IncludeDeleted = include
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			fields["limit"] = "must be a non-negative integer"
		} else {
			filter.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			fields["offset"] = "must be a non-negative integer"
		} else {
			filter.Offset = offset
		}
	}

	if len(fields) > 0 {
		return task.Filter{}, &domain.ValidationError{Fields: fields}
	}
	return filter, nil
}

// mapCreateTaskRequest converts a CreateTaskRequest DTO to a domain Task
// entity. Status and priority defaulting stay with the use case.
func mapCreateTaskRequest(req *dto.CreateTaskRequest) *task.Task {
	return &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    task.Priority(req.Priority),
		ListID:      req.ListID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
}

// mapUpdateTaskRequest converts an UpdateTaskRequest DTO to a partial update.
func mapUpdateTaskRequest(req *dto.UpdateTaskRequest) ports.TaskUpdate {
	update := ports.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ListID:      req.ListID,
		AssigneeID:  req.AssigneeID,
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		update.Priority = &p
	}
	return update
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
