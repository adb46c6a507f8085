package ports

import "context"

// HealthChecker abstracts a backing-layer health probe.
// Implementations return an error when the dependency is unhealthy.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
