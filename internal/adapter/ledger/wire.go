package ledger

import (
	"encoding/json"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// Header names for request signing.
const (
	HeaderAccessKey = "X-Access-Key"
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"
)

// Endpoints.
const (
	PathHandshake = "/v1/handshake"
	PathDebits    = "/v1/debits"
	PathCredits   = "/v1/credits"
)

// BalancePath returns the balance endpoint of an account.
func BalancePath(accountID string) string {
	return "/v1/accounts/" + accountID + "/balance"
}

// ActiveSessionPath returns the endpoint reporting an account's open session.
func ActiveSessionPath(accountID string) string {
	return "/v1/accounts/" + accountID + "/session"
}

// ActionPath returns the game authority endpoint for a wager's moves.
func ActionPath(wagerID uuid.UUID) string {
	return "/v1/sessions/" + wagerID.String() + "/actions"
}

// ForceEndPath returns the endpoint that discards a wager's session.
func ForceEndPath(wagerID uuid.UUID) string {
	return "/v1/sessions/" + wagerID.String() + "/force-end"
}

// Error codes the ledger answers with. The credential codes are the ones a
// fresh handshake can cure.
const (
	CodeDelegationExpired    = "DELEGATION_EXPIRED"
	CodeSignatureInvalid     = "SIGNATURE_INVALID"
	CodeCertificateMalformed = "CERTIFICATE_MALFORMED"
	CodeSessionExpired       = "SESSION_EXPIRED"

	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeSessionOpen       = "SESSION_OPEN"
	CodeReadOnly          = "READ_ONLY"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInternal          = "INTERNAL"
)

// HandshakeRequest exchanges a delegation token for a session token.
type HandshakeRequest struct {
	AccountID string         `json:"account_id"`
	Purpose   domain.Purpose `json:"purpose"`
}

type HandshakeResponse struct {
	SessionToken string            `json:"session_token"`
	ExpiresAt    int64             `json:"expires_at"`
	Capability   domain.Capability `json:"capability"`
}

type BalanceResponse struct {
	AccountID string            `json:"account_id"`
	Balance   domain.FixedPoint `json:"balance"`
}

type DebitBody struct {
	WagerID        uuid.UUID          `json:"wager_id"`
	AccountID      string             `json:"account_id"`
	Amount         domain.FixedPoint  `json:"amount"`
	Variant        domain.GameVariant `json:"variant"`
	Params         domain.GameParams  `json:"params"`
	ServerSeedHash string             `json:"server_seed_hash"`
}

type CreditBody struct {
	WagerID   uuid.UUID            `json:"wager_id"`
	AccountID string               `json:"account_id"`
	Outcome   domain.TerminalState `json:"outcome"`
	Payout    domain.FixedPoint    `json:"payout"`
}

type ForceEndResponse struct {
	RemoteReference string `json:"remote_reference"`
}

// envelope mirrors the JSON envelope every ledger response is wrapped in.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
}
