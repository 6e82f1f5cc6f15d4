package ports

import (
	"context"
	"time"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification of ledger requests.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// TokenService handles operator JWTs for the admin surface.
type TokenService interface {
	Generate(subject string, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
	Role    string
}

// DelegationSigner mints the short-lived token presented in the ledger handshake.
type DelegationSigner interface {
	Mint(purpose domain.Purpose, accountID string) (string, time.Time, error)
}

// LegCache is the Redis layer of leg idempotency (fast path).
type LegCache interface {
	// Get returns nil, nil when the leg has no receipt.
	Get(ctx context.Context, key string) (*domain.LegReceipt, error)
	Set(ctx context.Context, receipt *domain.LegReceipt, ttl time.Duration) error
}

// WagerLock guards the single unresolved wager per account across processes.
type WagerLock interface {
	// Acquire returns false if another wager already holds the account.
	Acquire(ctx context.Context, accountID string, wagerID uuid.UUID, ttl time.Duration) (bool, error)
	Release(ctx context.Context, accountID string, wagerID uuid.UUID) error
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// AuditService records audited actions without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// AmountNormalizer turns raw amounts into bounded ledger units.
type AmountNormalizer interface {
	Normalize(raw domain.RawAmount) (domain.FixedPoint, error)
	Denormalize(x domain.FixedPoint) domain.RawAmount
	Bounds() domain.AmountBounds
}

// SettlementService is the surface offered to UI-level collaborators.
type SettlementService interface {
	PlaceWager(ctx context.Context, req PlaceWagerRequest) (*domain.WagerHandle, error)
	ApplyPlayerAction(ctx context.Context, wagerID uuid.UUID, action domain.PlayerAction) (*domain.SessionSnapshot, error)
	CashOut(ctx context.Context, wagerID uuid.UUID) (*domain.SettlementResult, error)
	Reconcile(ctx context.Context, wagerID uuid.UUID) (*domain.SettlementResult, error)
	ForceEndSession(ctx context.Context, wagerID uuid.UUID, operator string) (*domain.SettlementResult, error)
	GetWager(ctx context.Context, wagerID uuid.UUID) (*domain.Wager, error)
	GetCachedBalance() domain.LedgerAccount
	RefreshBalance(ctx context.Context) (domain.LedgerAccount, error)
	GetMode() domain.Mode
	Reconnect(ctx context.Context) (domain.Mode, error)
}

// PlaceWagerRequest holds validated input for a new wager.
type PlaceWagerRequest struct {
	WagerID    *uuid.UUID // client-generated idempotency key; generated when nil
	Stake      domain.RawAmount
	Variant    domain.GameVariant
	Params     domain.GameParams
	ClientSeed string
}
