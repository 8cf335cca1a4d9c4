// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskboard/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given; authMW guards every
// /api/v1 route except the login and refresh endpoints. Health endpoints
// stay outside the /api/v1 prefix and are never guarded.
func NewRouter(
	taskListHandler *handlers.TaskListHandler,
	taskHandler *handlers.TaskHandler,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	authMW func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Public authentication endpoints.
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Bearer-guarded resources.
		r.Group(func(r chi.Router) {
			r.Use(authMW)

			// Task-list CRUD, stats, and nested task operations.
			r.Get("/task-lists", taskListHandler.ListTaskLists)
			r.Post("/task-lists", taskListHandler.CreateTaskList)
			r.Get("/task-lists/{listID}", taskListHandler.GetTaskList)
			r.Patch("/task-lists/{listID}", taskListHandler.UpdateTaskList)
			r.Delete("/task-lists/{listID}", taskListHandler.DeleteTaskList)
			r.Get("/task-lists/{listID}/stats", taskListHandler.GetTaskListStats)
			r.Get("/task-lists/{listID}/tasks", taskListHandler.ListTaskListTasks)
			r.Post("/task-lists/{listID}/tasks", taskListHandler.CreateTaskListTask)

			// Flat task CRUD and status operations.
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{taskID}", taskHandler.GetTask)
			r.Patch("/tasks/{taskID}", taskHandler.UpdateTask)
			r.Delete("/tasks/{taskID}", taskHandler.DeleteTask)
			r.Patch("/tasks/{taskID}/status", taskHandler.UpdateTaskStatus)
			r.Patch("/tasks/{taskID}/assign", taskHandler.AssignTask)
			r.Post("/tasks/{taskID}/complete", taskHandler.CompleteTask)
			r.Post("/tasks/{taskID}/reopen", taskHandler.ReopenTask)

			// User accounts and their assigned tasks.
			r.Get("/users", userHandler.ListUsers)
			r.Post("/users", userHandler.CreateUser)
			r.Get("/users/{userID}", userHandler.GetUser)
			r.Patch("/users/{userID}", userHandler.UpdateUser)
			r.Delete("/users/{userID}", userHandler.DeleteUser)
			r.Get("/users/{userID}/tasks", userHandler.ListUserTasks)
		})
	})

	return r
}
