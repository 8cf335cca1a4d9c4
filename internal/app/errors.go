package app

import (
	"fmt"

	"github.com/jsamuelsen11/taskboard/internal/domain"
)

// conflictf wraps domain.ErrConflict with the colliding value for context.
func conflictf(what, value string) error {
	return fmt.Errorf("%s %q: %w", what, value, domain.ErrConflict)
}

// unauthorized wraps domain.ErrUnauthorized with a stable public reason.
func unauthorized(reason string) error {
	return fmt.Errorf("%s: %w", reason, domain.ErrUnauthorized)
}
