package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionWagerPlaced        AuditAction = "WAGER_PLACED"
	AuditActionDebitConfirmed     AuditAction = "DEBIT_CONFIRMED"
	AuditActionDebitRecovered     AuditAction = "DEBIT_RECOVERED"
	AuditActionDebitFailed        AuditAction = "DEBIT_FAILED"
	AuditActionDebitUnresolved    AuditAction = "DEBIT_UNRESOLVED"
	AuditActionCreditConfirmed    AuditAction = "CREDIT_CONFIRMED"
	AuditActionCreditRecovered    AuditAction = "CREDIT_RECOVERED"
	AuditActionCreditUnreconciled AuditAction = "CREDIT_UNRECONCILED"
	AuditActionOutcomeDiverged    AuditAction = "OUTCOME_DIVERGED"
	AuditActionSessionForceEnded  AuditAction = "SESSION_FORCE_ENDED"
	AuditActionDemoModeEntered    AuditAction = "DEMO_MODE_ENTERED"
	AuditActionReconnected        AuditAction = "RECONNECTED"
	AuditActionReconcileRequested AuditAction = "RECONCILE_REQUESTED"
	AuditActionOperatorRequest    AuditAction = "OPERATOR_REQUEST"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	WagerID      *uuid.UUID  `json:"wager_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	Actor        string      `json:"actor"`             // "system", "player" or an operator subject
	CreatedAt    time.Time   `json:"created_at"`
}
