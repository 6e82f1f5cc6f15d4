package ledger

import (
	"context"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"
)

// HealthCheck implements ports.HealthChecker by reading the balance through
// the handle cache. It makes a single attempt so a probe never waits out the
// retry schedule.
type HealthCheck struct {
	handles   ports.HandleProvider
	accountID string
}

// NewHealthCheck creates a ledger health checker.
func NewHealthCheck(handles ports.HandleProvider, accountID string) *HealthCheck {
	return &HealthCheck{handles: handles, accountID: accountID}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.handles.Call(ctx, ports.CallSpec{Op: "health", Purpose: domain.PurposeLedger, Once: true},
		func(ctx context.Context, c ports.LedgerClient) error {
			_, err := c.GetBalance(ctx, h.accountID)
			return err
		})
}

func (h *HealthCheck) Name() string {
	return "ledger"
}
