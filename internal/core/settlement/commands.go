package settlement

import (
	"wager-settlement/internal/core/domain"
)

// Command is a side effect the driver must perform. Backoff is the number of
// retry delays to wait first; 0 means run immediately.
type Command interface {
	commandName() string
}

type FetchBalance struct{}

type SubmitDebit struct {
	Backoff int
}

type QueryActiveSession struct {
	Backoff int
}

type StartGame struct{}

type SubmitCredit struct {
	Payout  domain.FixedPoint
	Outcome domain.TerminalState
	Backoff int
}

type QueryCreditOutcome struct {
	Backoff int
}

type RefreshBalance struct{}

// ReleaseWager frees the account's single wager slot.
type ReleaseWager struct{}

func (FetchBalance) commandName() string       { return "FetchBalance" }
func (SubmitDebit) commandName() string        { return "SubmitDebit" }
func (QueryActiveSession) commandName() string { return "QueryActiveSession" }
func (StartGame) commandName() string          { return "StartGame" }
func (SubmitCredit) commandName() string       { return "SubmitCredit" }
func (QueryCreditOutcome) commandName() string { return "QueryCreditOutcome" }
func (RefreshBalance) commandName() string     { return "RefreshBalance" }
func (ReleaseWager) commandName() string       { return "ReleaseWager" }

// BackoffOf returns the delay steps a command asks for.
func BackoffOf(c Command) int {
	switch c := c.(type) {
	case SubmitDebit:
		return c.Backoff
	case QueryActiveSession:
		return c.Backoff
	case SubmitCredit:
		return c.Backoff
	case QueryCreditOutcome:
		return c.Backoff
	default:
		return 0
	}
}

// Name is the command's name for logs.
func Name(c Command) string { return c.commandName() }
