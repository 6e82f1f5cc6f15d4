package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mode reports whether ledger writes are possible.
type Mode string

const (
	ModeLive Mode = "LIVE"
	// ModeDemo allows reads only; authenticated access could not be established.
	ModeDemo Mode = "DEMO"
)

// LedgerAccount is a snapshot of the remote balance. It is always re-read from
// the ledger rather than computed locally.
type LedgerAccount struct {
	AccountID    string     `json:"account_id"`
	Balance      FixedPoint `json:"balance"`
	ScaleFactor  int64      `json:"scale_factor"`
	LastSyncedAt time.Time  `json:"last_synced_at"`
}

// RemoteSession is the ledger's view of a wager that it holds open or has just
// advanced.
type RemoteSession struct {
	WagerID       uuid.UUID     `json:"wager_id"`
	AccountID     string        `json:"account_id"`
	Stake         FixedPoint    `json:"stake"`
	Variant       GameVariant   `json:"variant"`
	Open          bool          `json:"open"`
	Terminal      TerminalState `json:"terminal_state"`
	Payout        FixedPoint    `json:"payout"`
	Revealed      []int         `json:"revealed,omitempty"`
	Concealed     []int         `json:"concealed,omitempty"`
	Position      int           `json:"position"`
	MultiplierBps int64         `json:"multiplier_bps"`
}

// Matches reports whether the remote session belongs to the given wager.
func (s *RemoteSession) Matches(wagerID uuid.UUID) bool {
	return s != nil && s.WagerID == wagerID
}

// LegResult is the ledger's acknowledgement of a debit or credit.
type LegResult struct {
	Status          LegStatus  `json:"status"`
	Amount          FixedPoint `json:"amount"`
	RemoteReference string     `json:"remote_reference"`
}
