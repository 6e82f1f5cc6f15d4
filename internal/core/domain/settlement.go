package domain

import (
	"github.com/google/uuid"
)

// WagerHandle is returned to the caller once the stake is debited and play can begin.
type WagerHandle struct {
	WagerID        uuid.UUID   `json:"wager_id"`
	Variant        GameVariant `json:"variant"`
	Stake          FixedPoint  `json:"stake"`
	Status         WagerStatus `json:"status"`
	ServerSeedHash string      `json:"server_seed_hash"`
	ClientSeed     string      `json:"client_seed"`
	Nonce          uint64      `json:"nonce"`
	Balance        FixedPoint  `json:"balance"`
}

// SessionSnapshot is the player-visible state of a round after an action.
type SessionSnapshot struct {
	WagerID    uuid.UUID         `json:"wager_id"`
	Variant    GameVariant       `json:"variant"`
	Terminal   TerminalState     `json:"terminal_state"`
	Revealed   []int             `json:"revealed,omitempty"`
	Concealed  []int             `json:"concealed,omitempty"` // visible only once terminal
	Multiplier float64           `json:"multiplier"`
	Ratio      string            `json:"multiplier_ratio"`
	Position   *int              `json:"position,omitempty"`
	Payout     FixedPoint        `json:"payout"`
	Settlement *SettlementResult `json:"settlement,omitempty"`
}

// SettlementResult reports how a terminal round was settled against the ledger.
type SettlementResult struct {
	WagerID         uuid.UUID     `json:"wager_id"`
	Status          WagerStatus   `json:"status"`
	Outcome         TerminalState `json:"outcome"`
	Payout          FixedPoint    `json:"payout"`
	Balance         FixedPoint    `json:"balance"`
	RemoteReference string        `json:"remote_reference,omitempty"`
	ServerSeed      string        `json:"server_seed,omitempty"`
}

// NeedsReconciliation returns true if the credit is still unconfirmed.
func (r *SettlementResult) NeedsReconciliation() bool {
	return r.Status == WagerStatusNeedsReconciliation
}
