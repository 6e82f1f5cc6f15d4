// Package settlement holds the wager settlement protocol as a pure state
// machine. Apply never performs I/O; it returns the commands an outer driver
// must execute and feed back as events.
package settlement

import (
	"errors"
	"fmt"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// State is a protocol state.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateDebiting   State = "DEBITING"
	StateInPlay     State = "IN_PLAY"
	StateSettling   State = "SETTLING"
	StateDone       State = "DONE"
	StateAborted    State = "ABORTED"
	// StateUnreconciled holds a wager whose pending leg outcome is unknown.
	StateUnreconciled State = "UNRECONCILED"
)

var (
	ErrInvalidTransition = errors.New("invalid settlement transition")
	ErrInsufficientFunds = errors.New("stake exceeds available balance")
	ErrBalanceUnknown    = errors.New("balance could not be read")
	ErrDebitRejected     = errors.New("debit rejected by ledger")
	ErrDebitFailed       = errors.New("debit failed")
	ErrDebitUnresolved   = errors.New("debit outcome unknown")
	ErrCreditUnconfirmed = errors.New("credit unconfirmed")
)

// Config bounds the protocol.
type Config struct {
	ReserveFee  domain.FixedPoint
	MaxAttempts int // per leg, including the first submission
}

// Machine is the protocol state of one wager. It is a value; Apply returns a
// new one.
type Machine struct {
	WagerID        uuid.UUID
	Stake          domain.FixedPoint
	State          State
	PendingLeg     domain.LegKind // leg awaiting confirmation while DEBITING, SETTLING or UNRECONCILED
	Attempts       int
	BalanceBefore  domain.FixedPoint
	Outcome        domain.TerminalState
	Payout         domain.FixedPoint
	CreditBaseline domain.FixedPoint
	Recovered      bool // the pending leg was confirmed by query, not by its own response
	Reconciling    bool // driven by an explicit reconcile request
	Forced         bool

	cfg Config
}

// New returns an idle machine for a wager.
func New(wagerID uuid.UUID, stake domain.FixedPoint, cfg Config) Machine {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return Machine{WagerID: wagerID, Stake: stake, State: StateIdle, Outcome: domain.TerminalNone, cfg: cfg}
}

// Restore rebuilds the machine of a persisted wager that awaits reconciliation.
func Restore(w *domain.Wager, cfg Config) (Machine, error) {
	m := New(w.ID, w.Stake, cfg)
	m.Outcome = w.Outcome
	m.Payout = w.Payout
	m.CreditBaseline = w.PreCreditBalance

	switch w.Status {
	case domain.WagerStatusPending:
		// Persisted before the debit resolved: the stake may or may not be taken.
		m.State = StateUnreconciled
		m.PendingLeg = domain.LegKindDebit
	case domain.WagerStatusNeedsReconciliation:
		m.State = StateUnreconciled
		if w.Outcome == domain.TerminalNone || w.Outcome == "" {
			m.PendingLeg = domain.LegKindDebit
		} else {
			m.PendingLeg = domain.LegKindCredit
		}
	case domain.WagerStatusActive:
		m.State = StateInPlay
	case domain.WagerStatusResolved:
		m.State = StateDone
	case domain.WagerStatusAborted:
		m.State = StateAborted
	default:
		return Machine{}, fmt.Errorf("%w: cannot restore wager in status %s", ErrInvalidTransition, w.Status)
	}
	return m, nil
}

// IsTerminal returns true once no further commands will be produced.
func (m Machine) IsTerminal() bool {
	return m.State == StateDone || m.State == StateAborted
}

// WagerStatus maps the protocol state onto the persisted wager status.
func (m Machine) WagerStatus() domain.WagerStatus {
	switch m.State {
	case StateInPlay, StateSettling:
		return domain.WagerStatusActive
	case StateDone:
		return domain.WagerStatusResolved
	case StateAborted:
		return domain.WagerStatusAborted
	case StateUnreconciled:
		return domain.WagerStatusNeedsReconciliation
	default:
		return domain.WagerStatusPending
	}
}

// Apply advances the machine by one event.
func (m Machine) Apply(ev Event) (Machine, []Command, error) {
	if f, ok := ev.(ForceEnded); ok {
		return m.forceEnd(f)
	}

	switch m.State {
	case StateIdle:
		if _, ok := ev.(Started); ok {
			m.State = StateValidating
			return m, []Command{FetchBalance{}}, nil
		}
	case StateValidating:
		return m.onValidating(ev)
	case StateDebiting:
		return m.onDebiting(ev)
	case StateInPlay:
		if t, ok := ev.(GameTerminated); ok {
			m.State = StateSettling
			m.PendingLeg = domain.LegKindCredit
			m.Attempts = 1
			m.Outcome = t.Outcome
			m.Payout = t.Payout
			m.CreditBaseline = t.Baseline
			return m, []Command{SubmitCredit{Payout: t.Payout, Outcome: t.Outcome}}, nil
		}
	case StateSettling:
		return m.onSettling(ev)
	case StateUnreconciled:
		if _, ok := ev.(ReconcileRequested); ok {
			m.Reconciling = true
			m.Attempts = 1
			if m.PendingLeg == domain.LegKindDebit {
				m.State = StateDebiting
				return m, []Command{QueryActiveSession{}}, nil
			}
			m.State = StateSettling
			return m, []Command{QueryCreditOutcome{}}, nil
		}
	}
	return m, nil, m.invalid(ev)
}

func (m Machine) onValidating(ev Event) (Machine, []Command, error) {
	switch e := ev.(type) {
	case BalanceFetched:
		if m.Stake > e.Balance-m.cfg.ReserveFee {
			m.State = StateAborted
			return m, []Command{ReleaseWager{}}, ErrInsufficientFunds
		}
		m.State = StateDebiting
		m.PendingLeg = domain.LegKindDebit
		m.Attempts = 1
		m.BalanceBefore = e.Balance
		return m, []Command{SubmitDebit{}}, nil
	case QueryFailed:
		m.State = StateAborted
		return m, []Command{ReleaseWager{}}, fmt.Errorf("%w: %w", ErrBalanceUnknown, e.Err)
	}
	return m, nil, m.invalid(ev)
}

func (m Machine) onDebiting(ev Event) (Machine, []Command, error) {
	switch e := ev.(type) {
	case DebitConfirmed:
		return m.enterPlay(false)
	case DebitRejected:
		m.State = StateAborted
		m.PendingLeg = ""
		return m, []Command{ReleaseWager{}}, fmt.Errorf("%w: %w", ErrDebitRejected, e.Err)
	case DebitFailed:
		return m, []Command{QueryActiveSession{}}, nil
	case ActiveSessionQueried:
		if e.Session.Matches(m.WagerID) && e.Session.Open {
			return m.enterPlay(true)
		}
		if m.Reconciling {
			// The ledger holds no session for this wager: the stake was never taken.
			m.State = StateAborted
			m.PendingLeg = ""
			return m, []Command{ReleaseWager{}}, nil
		}
		if m.Attempts >= m.cfg.MaxAttempts {
			m.State = StateAborted
			m.PendingLeg = ""
			return m, []Command{ReleaseWager{}}, ErrDebitFailed
		}
		m.Attempts++
		return m, []Command{SubmitDebit{Backoff: m.Attempts - 1}}, nil
	case QueryFailed:
		if m.Attempts >= m.cfg.MaxAttempts {
			m.State = StateUnreconciled
			return m, nil, fmt.Errorf("%w: %w", ErrDebitUnresolved, e.Err)
		}
		m.Attempts++
		return m, []Command{QueryActiveSession{Backoff: m.Attempts - 1}}, nil
	case Cancelled:
		m.State = StateUnreconciled
		return m, nil, ErrDebitUnresolved
	}
	return m, nil, m.invalid(ev)
}

func (m Machine) enterPlay(recovered bool) (Machine, []Command, error) {
	m.State = StateInPlay
	m.PendingLeg = ""
	m.Recovered = recovered
	m.Reconciling = false
	m.Attempts = 0
	return m, []Command{StartGame{}, RefreshBalance{}}, nil
}

func (m Machine) onSettling(ev Event) (Machine, []Command, error) {
	switch e := ev.(type) {
	case CreditConfirmed:
		m.Payout = e.Payout
		return m.finish(false)
	case CreditFailed:
		return m, []Command{QueryCreditOutcome{}}, nil
	case CreditOutcomeQueried:
		if m.creditReflected(e) {
			return m.finish(true)
		}
		if m.Attempts >= m.cfg.MaxAttempts {
			m.State = StateUnreconciled
			m.Reconciling = false
			return m, nil, ErrCreditUnconfirmed
		}
		m.Attempts++
		return m, []Command{SubmitCredit{Payout: m.Payout, Outcome: m.Outcome, Backoff: m.Attempts - 1}}, nil
	case QueryFailed:
		if m.Attempts >= m.cfg.MaxAttempts {
			m.State = StateUnreconciled
			m.Reconciling = false
			return m, nil, fmt.Errorf("%w: %w", ErrCreditUnconfirmed, e.Err)
		}
		m.Attempts++
		return m, []Command{QueryCreditOutcome{Backoff: m.Attempts - 1}}, nil
	case Cancelled:
		m.State = StateUnreconciled
		m.Reconciling = false
		return m, nil, ErrCreditUnconfirmed
	}
	return m, nil, m.invalid(ev)
}

// creditReflected decides from the ledger's own state whether the credit
// landed: the session was closed, or the balance grew by at least the payout.
func (m Machine) creditReflected(e CreditOutcomeQueried) bool {
	if e.SessionKnown && !e.SessionOpen {
		return true
	}
	return m.Payout > 0 && e.Balance-m.CreditBaseline >= m.Payout
}

func (m Machine) finish(recovered bool) (Machine, []Command, error) {
	m.State = StateDone
	m.PendingLeg = ""
	m.Recovered = recovered
	m.Reconciling = false
	return m, []Command{RefreshBalance{}, ReleaseWager{}}, nil
}

func (m Machine) forceEnd(f ForceEnded) (Machine, []Command, error) {
	if m.IsTerminal() {
		return m, nil, m.invalid(f)
	}
	m.State = StateAborted
	m.PendingLeg = ""
	m.Forced = true
	return m, []Command{RefreshBalance{}, ReleaseWager{}}, nil
}

func (m Machine) invalid(ev Event) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev.eventName(), m.State)
}
