package ports

import "context"

// HealthChecker is one dependency reported by GET /health. A failing checker
// marks the service degraded; it never changes the settlement mode.
type HealthChecker interface {
	Ping(ctx context.Context) error
	// Name keys the dependency in the report: "postgresql", "redis" or "ledger".
	Name() string
}
