package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdentityKind is who a connection handle speaks for.
type IdentityKind string

const (
	IdentityPlayer    IdentityKind = "PLAYER"
	IdentityAnonymous IdentityKind = "ANONYMOUS"
)

// Purpose is which remote service a handle reaches.
type Purpose string

const (
	PurposeLedger        Purpose = "LEDGER"
	PurposeGameAuthority Purpose = "GAME_AUTHORITY"
)

// Capability is what a handle is allowed to do.
type Capability string

const (
	CapabilityAuthenticated Capability = "AUTHENTICATED"
	CapabilityReadOnly      Capability = "READ_ONLY"
)

// HandleKey identifies one cached connection.
type HandleKey struct {
	Identity IdentityKind `json:"identity"`
	Purpose  Purpose      `json:"purpose"`
}

func (k HandleKey) String() string {
	return string(k.Identity) + "/" + string(k.Purpose)
}

// Anonymous returns the read-only key for the same purpose.
func (k HandleKey) Anonymous() HandleKey {
	return HandleKey{Identity: IdentityAnonymous, Purpose: k.Purpose}
}

// ConnectionHandle is the metadata of a cached remote connection.
type ConnectionHandle struct {
	ID         uuid.UUID     `json:"id"`
	Key        HandleKey     `json:"key"`
	CreatedAt  time.Time     `json:"created_at"`
	TTL        time.Duration `json:"ttl"`
	Capability Capability    `json:"capability"`
}

// Expired reports whether the handle has outlived its TTL at now.
func (h *ConnectionHandle) Expired(now time.Time) bool {
	return !now.Before(h.CreatedAt.Add(h.TTL))
}

// CanWrite returns true if the handle may submit debits and credits.
func (h *ConnectionHandle) CanWrite() bool {
	return h.Capability == CapabilityAuthenticated
}
