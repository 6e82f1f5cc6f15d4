package ports

import (
	"context"
	"errors"
	"fmt"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// RemoteErrorKind is the closed classification of ledger failures, decided
// once at the transport boundary.
type RemoteErrorKind string

const (
	// RemoteTransient covers timeouts, dropped connections, 5xx and throttling.
	RemoteTransient RemoteErrorKind = "TRANSIENT"
	// RemoteCredential covers expired delegation, failed signature checks and
	// malformed certificates. The handle that produced it must be evicted.
	RemoteCredential RemoteErrorKind = "CREDENTIAL"
	// RemoteRejected is a business refusal; retrying cannot help.
	RemoteRejected RemoteErrorKind = "REJECTED"
	RemoteNotFound RemoteErrorKind = "NOT_FOUND"
	RemoteUnknown  RemoteErrorKind = "UNKNOWN"
)

// RemoteError is returned by every LedgerClient implementation.
type RemoteError struct {
	Kind RemoteErrorKind
	Op   string
	Code string // ledger error code, if any
	Err  error
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("ledger %s: %s [%s]: %v", e.Op, e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("ledger %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// RemoteErrorKindOf extracts the kind from err. Context expiry counts as
// transient; anything unclassified is UNKNOWN.
func RemoteErrorKindOf(err error) RemoteErrorKind {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return RemoteTransient
	}
	return RemoteUnknown
}

// IsRetryable reports whether the retry wrapper may repeat the call.
func IsRetryable(err error) bool {
	k := RemoteErrorKindOf(err)
	return k == RemoteTransient || k == RemoteCredential
}

// LedgerClient is the remote ledger and game authority. Amounts are fixed-point
// at the ledger's scale factor. Debit and Credit are idempotent on the wager id.
type LedgerClient interface {
	GetBalance(ctx context.Context, accountID string) (domain.FixedPoint, error)
	Debit(ctx context.Context, req DebitRequest) (*domain.LegResult, error)
	// GetActiveSession returns nil, nil when the account has no open session.
	GetActiveSession(ctx context.Context, accountID string) (*domain.RemoteSession, error)
	ApplyAction(ctx context.Context, wagerID uuid.UUID, action domain.PlayerAction) (*domain.RemoteSession, error)
	Credit(ctx context.Context, req CreditRequest) (*domain.LegResult, error)
	ForceEndSession(ctx context.Context, wagerID uuid.UUID) (string, error)
}

// DebitRequest opens a wager's session on the ledger.
type DebitRequest struct {
	WagerID        uuid.UUID
	AccountID      string
	Amount         domain.FixedPoint
	Variant        domain.GameVariant
	Params         domain.GameParams
	ServerSeedHash string
}

// CreditRequest finalizes a wager. Payout is the locally computed expectation;
// the ledger's applied amount is returned in the LegResult.
type CreditRequest struct {
	WagerID   uuid.UUID
	AccountID string
	Outcome   domain.TerminalState
	Payout    domain.FixedPoint
}

// LedgerDialer establishes a client for a handle key, performing whatever
// trust handshake the identity needs.
type LedgerDialer interface {
	Dial(ctx context.Context, key domain.HandleKey) (LedgerClient, domain.Capability, error)
}

// Handle is a cached client with its metadata.
type Handle struct {
	domain.ConnectionHandle
	Client LedgerClient
}

// CallSpec describes one remote call made through a HandleProvider.
type CallSpec struct {
	Op      string
	Purpose domain.Purpose
	// Write calls move funds or session state and are refused in demo mode.
	Write bool
	// Once disables transport retries; settlement legs reconcile instead.
	Once bool
	// Detached runs the call on a context the caller cannot cancel.
	Detached bool
}

// HandleProvider runs calls against cached handles with retry and eviction.
type HandleProvider interface {
	Call(ctx context.Context, spec CallSpec, fn func(ctx context.Context, client LedgerClient) error) error
	Mode() domain.Mode
	Reconnect(ctx context.Context) error
}
