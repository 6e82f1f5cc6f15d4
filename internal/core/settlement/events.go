package settlement

import (
	"wager-settlement/internal/core/domain"
)

// Event is fed to Machine.Apply by the driver.
type Event interface {
	eventName() string
}

type Started struct{}

type BalanceFetched struct {
	Balance domain.FixedPoint
}

// QueryFailed reports that a read against the ledger (balance, session or
// credit outcome) itself failed.
type QueryFailed struct {
	Err error
}

type DebitConfirmed struct {
	RemoteReference string
}

// DebitRejected is a definite business refusal; no funds moved.
type DebitRejected struct {
	Err error
}

// DebitFailed means the debit's outcome is unknown.
type DebitFailed struct {
	Err error
}

// ActiveSessionQueried carries the ledger's open session for the account, or nil.
type ActiveSessionQueried struct {
	Session *domain.RemoteSession
}

// GameTerminated is emitted once when the round reaches a terminal state.
// Baseline is the balance read just before the credit is submitted.
type GameTerminated struct {
	Outcome  domain.TerminalState
	Payout   domain.FixedPoint
	Baseline domain.FixedPoint
}

// CreditConfirmed carries the payout the ledger actually applied.
type CreditConfirmed struct {
	Payout          domain.FixedPoint
	RemoteReference string
}

type CreditFailed struct {
	Err error
}

// CreditOutcomeQueried is the ledger's state after an unconfirmed credit.
type CreditOutcomeQueried struct {
	Balance      domain.FixedPoint
	SessionKnown bool
	SessionOpen  bool
}

// Cancelled reports that the caller gave up while a leg was unresolved.
type Cancelled struct{}

type ReconcileRequested struct{}

// ForceEnded is an explicit operator discard of the session.
type ForceEnded struct{}

func (Started) eventName() string              { return "Started" }
func (BalanceFetched) eventName() string       { return "BalanceFetched" }
func (QueryFailed) eventName() string          { return "QueryFailed" }
func (DebitConfirmed) eventName() string       { return "DebitConfirmed" }
func (DebitRejected) eventName() string        { return "DebitRejected" }
func (DebitFailed) eventName() string          { return "DebitFailed" }
func (ActiveSessionQueried) eventName() string { return "ActiveSessionQueried" }
func (GameTerminated) eventName() string       { return "GameTerminated" }
func (CreditConfirmed) eventName() string      { return "CreditConfirmed" }
func (CreditFailed) eventName() string         { return "CreditFailed" }
func (CreditOutcomeQueried) eventName() string { return "CreditOutcomeQueried" }
func (Cancelled) eventName() string            { return "Cancelled" }
func (ReconcileRequested) eventName() string   { return "ReconcileRequested" }
func (ForceEnded) eventName() string           { return "ForceEnded" }
