package ports

import "context"

// HealthChecker is implemented by any component that can report its health.
// Examples: the database handle, the webhook notifier's HTTP client.
type HealthChecker interface {
	// Name returns a human-readable identifier for this component
	// (e.g., "database", "notifier"). Used as the key in readiness output.
	Name() string

	// HealthCheck returns nil when the component is healthy, or an error
	// describing the failure. Implementations must respect context
	// cancellation and deadlines; the registry bounds each check's runtime.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects health checkers and runs them for the readiness
// endpoint.
type HealthRegistry interface {
	// Register adds a HealthChecker to the registry.
	Register(checker HealthChecker)

	// CheckAll runs every registered check concurrently and returns results
	// keyed by checker name. A nil value means the component is healthy.
	CheckAll(ctx context.Context) map[string]error
}
