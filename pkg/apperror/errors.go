package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code, so errors.Is(err, ErrSessionBusy()) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wager lifecycle (WAGER) ----

func ErrInsufficientFunds() *AppError {
	return New("WAGER_001", "Insufficient balance for stake", http.StatusPaymentRequired)
}

func ErrInvalidStake(reason string) *AppError {
	return New("WAGER_002", fmt.Sprintf("Invalid stake: %s", reason), http.StatusBadRequest)
}

func ErrSessionBusy() *AppError {
	return New("WAGER_003", "Another action is in progress for this wager", http.StatusConflict)
}

func ErrActiveWagerExists() *AppError {
	return New("WAGER_004", "An unresolved wager already exists for this account", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("WAGER_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrWagerNotActive() *AppError {
	return New("WAGER_006", "Wager is not in play", http.StatusConflict)
}

// ---- Game engine (GAME) ----

func ErrInvalidIndex(err error) *AppError {
	return Wrap("GAME_001", "Invalid cell index", http.StatusBadRequest, err)
}

func ErrGameNotActive(err error) *AppError {
	return Wrap("GAME_002", "Game session is not active", http.StatusConflict, err)
}

func ErrInvalidGameParams(err error) *AppError {
	return Wrap("GAME_003", "Invalid game parameters", http.StatusBadRequest, err)
}

// ---- Remote ledger (LEDGER) ----

// ErrDebitFailed is fatal: the stake was provably not taken.
func ErrDebitFailed(err error) *AppError {
	return Wrap("LEDGER_001", "Stake debit failed, no funds moved", http.StatusBadGateway, err)
}

// ErrCreditUnconfirmed leaves the wager recoverable via reconcile.
func ErrCreditUnconfirmed(err error) *AppError {
	return Wrap("LEDGER_002", "Payout credit unconfirmed, wager needs reconciliation", http.StatusAccepted, err)
}

func ErrDemoMode() *AppError {
	return New("LEDGER_003", "Ledger writes are disabled in demo mode", http.StatusForbidden)
}

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("LEDGER_004", "Remote ledger unavailable", http.StatusServiceUnavailable, err)
}

func ErrLedgerRejected(err error) *AppError {
	return Wrap("LEDGER_005", "Remote ledger rejected the request", http.StatusUnprocessableEntity, err)
}

func ErrDebitUnresolved(err error) *AppError {
	return Wrap("LEDGER_006", "Stake debit outcome unknown, wager needs reconciliation", http.StatusAccepted, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WAGER_002-style validation error for malformed requests.
func Validation(message string) *AppError {
	return New("WAGER_002", message, http.StatusBadRequest)
}

// CodeOf returns the AppError code carried by err, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
