package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const healthTimeout = 2 * time.Second

// HealthCheck implements ports.HealthChecker for PostgreSQL. The database is
// healthy only once it answers and the schema has been migrated.
type HealthCheck struct {
	pool    Pool
	timeout time.Duration
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool, timeout: healthTimeout}
}

// Ping counts the applied migrations.
func (h *HealthCheck) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var applied int64
	if err := h.pool.QueryRow(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&applied); err != nil {
		return fmt.Errorf("query schema_migrations: %w", err)
	}
	if applied == 0 {
		return errors.New("schema not migrated")
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
