package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LegReceipt is a cached confirmation of a settlement leg, so a replayed leg
// short-circuits before reaching the ledger.
type LegReceipt struct {
	Key             string     `json:"key"` // Format: "wager_id:debit" or "wager_id:credit"
	WagerID         uuid.UUID  `json:"wager_id"`
	Kind            LegKind    `json:"kind"`
	Amount          FixedPoint `json:"amount"`
	RemoteReference string     `json:"remote_reference,omitempty"`
	ConfirmedAt     time.Time  `json:"confirmed_at"`
}

// BuildLegIdempotencyKey constructs the key for one leg of a wager.
func BuildLegIdempotencyKey(wagerID uuid.UUID, kind LegKind) string {
	return wagerID.String() + ":" + strings.ToLower(string(kind))
}

// ReceiptFromRecord builds the cacheable receipt for a confirmed record.
func ReceiptFromRecord(r *TransactionRecord) *LegReceipt {
	return &LegReceipt{
		Key:             r.IdempotencyKey,
		WagerID:         r.WagerID,
		Kind:            r.Kind,
		Amount:          r.Amount,
		RemoteReference: r.RemoteReference,
		ConfirmedAt:     r.UpdatedAt,
	}
}
