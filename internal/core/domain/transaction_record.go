package domain

import (
	"time"

	"github.com/google/uuid"
)

// LegKind identifies a settlement leg.
type LegKind string

const (
	LegKindDebit  LegKind = "DEBIT"
	LegKindCredit LegKind = "CREDIT"
)

// LegStatus represents the lifecycle state of a settlement leg.
type LegStatus string

const (
	LegStatusPending   LegStatus = "PENDING"
	LegStatusConfirmed LegStatus = "CONFIRMED"
	LegStatusFailed    LegStatus = "FAILED"
)

// TransactionRecord is the local log of one debit or credit against the ledger.
// Records are written before the remote call and never deleted.
type TransactionRecord struct {
	IdempotencyKey  string     `json:"idempotency_key"`
	WagerID         uuid.UUID  `json:"wager_id"`
	Kind            LegKind    `json:"kind"`
	Amount          FixedPoint `json:"amount"`
	Status          LegStatus  `json:"status"`
	RemoteReference string     `json:"remote_reference,omitempty"`
	Attempts        int        `json:"attempts"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsConfirmed returns true once the ledger has acknowledged the leg.
func (r *TransactionRecord) IsConfirmed() bool {
	return r.Status == LegStatusConfirmed
}

// NewTransactionRecord creates a PENDING record keyed for the given leg.
func NewTransactionRecord(wagerID uuid.UUID, kind LegKind, amount FixedPoint, now time.Time) *TransactionRecord {
	return &TransactionRecord{
		IdempotencyKey: BuildLegIdempotencyKey(wagerID, kind),
		WagerID:        wagerID,
		Kind:           kind,
		Amount:         amount,
		Status:         LegStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
