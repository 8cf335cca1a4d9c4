// Package memory implements the persistence ports with mutex-guarded
// in-process maps. It backs the "memory" storage driver used in local
// development and doubles as the repository fake in application-layer tests.
//
// Returned entities are defensive copies; mutating them never changes stored
// state. Active-title, username, and email uniqueness are enforced on write,
// matching the partial unique indexes of the SQLite store.
package memory

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthChecker = (*HealthChecker)(nil)

// HealthChecker reports the in-memory store as always available.
type HealthChecker struct{}

// NewHealthChecker creates a health checker for the memory driver.
func NewHealthChecker() *HealthChecker { return &HealthChecker{} }

// Name identifies the store in readiness check results.
func (*HealthChecker) Name() string { return "memory" }

// HealthCheck always succeeds; there is no connection to lose.
func (*HealthChecker) HealthCheck(context.Context) error { return nil }

// notFound wraps domain.ErrNotFound with entity context, mirroring the
// "%s: %w" idiom used across the adapters.
func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
}

// conflict wraps domain.ErrConflict with the colliding value for context.
func conflict(what, value string) error {
	return fmt.Errorf("%s %q: %w", what, value, domain.ErrConflict)
}

// paginate applies offset and limit to an already sorted slice. Zero values
// disable the respective bound.
func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
