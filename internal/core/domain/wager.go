package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameVariant selects which game a wager is played on.
type GameVariant string

const (
	GameVariantConcealmentGrid GameVariant = "CONCEALMENT_GRID"
	GameVariantWheel           GameVariant = "WHEEL"
)

// IsValid returns true if the variant is one the engine can simulate.
func (v GameVariant) IsValid() bool {
	return v == GameVariantConcealmentGrid || v == GameVariantWheel
}

// WagerStatus represents the lifecycle state of a wager.
type WagerStatus string

const (
	WagerStatusPending  WagerStatus = "PENDING"
	WagerStatusActive   WagerStatus = "ACTIVE"
	WagerStatusResolved WagerStatus = "RESOLVED"
	// WagerStatusNeedsReconciliation marks a wager whose debit or credit outcome
	// is unknown. It is recovered only by re-querying the ledger.
	WagerStatusNeedsReconciliation WagerStatus = "NEEDS_RECONCILIATION"
	// WagerStatusAborted marks a wager whose debit provably never happened.
	WagerStatusAborted WagerStatus = "ABORTED"
)

// RiskLevel shapes the wheel's segment table.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// TerminalState is how a game round ended, or NONE while it is in play.
type TerminalState string

const (
	TerminalNone      TerminalState = "NONE"
	TerminalWon       TerminalState = "WON"
	TerminalLost      TerminalState = "LOST"
	TerminalCashedOut TerminalState = "CASHED_OUT"
)

// GameParams holds the per-variant round parameters.
type GameParams struct {
	TotalCells     int       `json:"total_cells,omitempty"`
	ConcealedCount int       `json:"concealed_count,omitempty"`
	SegmentCount   int       `json:"segment_count,omitempty"`
	Risk           RiskLevel `json:"risk,omitempty"`
	// ThresholdBps is the minimum wheel multiplier, in basis points, that pays out.
	ThresholdBps int64 `json:"threshold_bps,omitempty"`
}

// Seeds commit the round's randomness before play and reveal it afterwards.
type Seeds struct {
	ServerSeedHash      string `json:"server_seed_hash"`
	ServerSeedEncrypted string `json:"-"`
	ServerSeed          string `json:"server_seed,omitempty"` // set only once the wager is resolved
	ClientSeed          string `json:"client_seed"`
	Nonce               uint64 `json:"nonce"`
}

// Wager is one stake-to-settlement attempt with exactly one debit and at most one credit.
type Wager struct {
	ID               uuid.UUID     `json:"id"`
	AccountID        string        `json:"account_id"`
	Stake            FixedPoint    `json:"stake"`
	Variant          GameVariant   `json:"variant"`
	Params           GameParams    `json:"params"`
	Status           WagerStatus   `json:"status"`
	Seeds            Seeds         `json:"seeds"`
	Outcome          TerminalState `json:"outcome"`
	Payout           FixedPoint    `json:"payout"`
	PreCreditBalance FixedPoint    `json:"-"` // baseline for detecting an applied credit
	CreatedAt        time.Time     `json:"created_at"`
	ResolvedAt       *time.Time    `json:"resolved_at,omitempty"`
}

// IsTerminal returns true if no further settlement will happen.
func (w *Wager) IsTerminal() bool {
	return w.Status == WagerStatusResolved || w.Status == WagerStatusAborted
}

// BlocksNewWager returns true while the wager still holds the account's single slot.
func (w *Wager) BlocksNewWager() bool {
	return !w.IsTerminal()
}

// PlayerActionKind is the kind of move a player makes.
type PlayerActionKind string

const (
	PlayerActionReveal PlayerActionKind = "REVEAL"
	PlayerActionSpin   PlayerActionKind = "SPIN"
)

// PlayerAction is one move forwarded to the game engine.
type PlayerAction struct {
	Kind  PlayerActionKind `json:"kind"`
	Index int              `json:"index,omitempty"`
}
