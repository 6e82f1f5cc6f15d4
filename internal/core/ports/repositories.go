package ports

import (
	"context"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// WagerRepository defines persistence operations for wagers.
// Getters return nil, nil when nothing matches.
type WagerRepository interface {
	Create(ctx context.Context, wager *domain.Wager) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wager, error)
	// GetUnresolvedByAccount returns the wager still holding the account's slot.
	GetUnresolvedByAccount(ctx context.Context, accountID string) (*domain.Wager, error)
	Update(ctx context.Context, wager *domain.Wager) error
	ListByStatus(ctx context.Context, status domain.WagerStatus, limit int) ([]domain.Wager, error)
}

// TransactionRecordRepository is the durable log of settlement legs (the
// second idempotency layer behind LegCache).
type TransactionRecordRepository interface {
	// Create inserts a record; an existing record with the same key is kept.
	Create(ctx context.Context, record *domain.TransactionRecord) error
	Get(ctx context.Context, idempotencyKey string) (*domain.TransactionRecord, error)
	Update(ctx context.Context, record *domain.TransactionRecord) error
	ListByWager(ctx context.Context, wagerID uuid.UUID) ([]domain.TransactionRecord, error)
}

// AuditRepository defines persistence for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByWager(ctx context.Context, wagerID uuid.UUID) ([]domain.AuditLog, error)
}
