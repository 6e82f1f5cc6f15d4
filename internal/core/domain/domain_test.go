package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWager_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status WagerStatus
		want   bool
	}{
		{"pending", WagerStatusPending, false},
		{"active", WagerStatusActive, false},
		{"needs reconciliation", WagerStatusNeedsReconciliation, false},
		{"resolved", WagerStatusResolved, true},
		{"aborted", WagerStatusAborted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wager{Status: tt.status}
			assert.Equal(t, tt.want, w.IsTerminal())
			assert.Equal(t, !tt.want, w.BlocksNewWager())
		})
	}
}

func TestGameVariant_IsValid(t *testing.T) {
	assert.True(t, GameVariantConcealmentGrid.IsValid())
	assert.True(t, GameVariantWheel.IsValid())
	assert.False(t, GameVariant("DICE").IsValid())
}

func TestBuildLegIdempotencyKey(t *testing.T) {
	wagerID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000:debit", BuildLegIdempotencyKey(wagerID, LegKindDebit))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000:credit", BuildLegIdempotencyKey(wagerID, LegKindCredit))
}

func TestNewTransactionRecord(t *testing.T) {
	wagerID := uuid.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	rec := NewTransactionRecord(wagerID, LegKindCredit, 250, now)

	assert.Equal(t, BuildLegIdempotencyKey(wagerID, LegKindCredit), rec.IdempotencyKey)
	assert.Equal(t, LegStatusPending, rec.Status)
	assert.Equal(t, FixedPoint(250), rec.Amount)
	assert.False(t, rec.IsConfirmed())
	assert.Equal(t, now, rec.CreatedAt)

	rec.Status = LegStatusConfirmed
	rec.RemoteReference = "ref-1"
	receipt := ReceiptFromRecord(rec)
	assert.Equal(t, rec.IdempotencyKey, receipt.Key)
	assert.Equal(t, "ref-1", receipt.RemoteReference)
}

func TestAmountBounds(t *testing.T) {
	b := AmountBounds{Min: 10, Max: 100}

	tests := []struct {
		name     string
		in       FixedPoint
		clamped  FixedPoint
		contains bool
	}{
		{"below", 5, 10, false},
		{"min", 10, 10, true},
		{"inside", 55, 55, true},
		{"max", 100, 100, true},
		{"above", 101, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.clamped, b.Clamp(tt.in))
			assert.Equal(t, tt.contains, b.Contains(tt.in))
		})
	}
}

func TestTaggedAmounts(t *testing.T) {
	d := DecimalAmount(decimal.RequireFromString("1.5"))
	assert.Equal(t, AmountUnitDecimal, d.Unit)

	f := FixedPointAmount(150_000_000)
	assert.Equal(t, AmountUnitFixedPoint, f.Unit)
	assert.True(t, f.Value.Equal(decimal.NewFromInt(150_000_000)))
}

func TestConnectionHandle_Expired(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := &ConnectionHandle{CreatedAt: created, TTL: 5 * time.Minute, Capability: CapabilityAuthenticated}

	assert.False(t, h.Expired(created.Add(4*time.Minute)))
	assert.True(t, h.Expired(created.Add(5*time.Minute)))
	assert.True(t, h.CanWrite())

	h.Capability = CapabilityReadOnly
	assert.False(t, h.CanWrite())
}

func TestHandleKey(t *testing.T) {
	k := HandleKey{Identity: IdentityPlayer, Purpose: PurposeLedger}

	assert.Equal(t, "PLAYER/LEDGER", k.String())
	assert.Equal(t, HandleKey{Identity: IdentityAnonymous, Purpose: PurposeLedger}, k.Anonymous())
}

func TestRemoteSession_Matches(t *testing.T) {
	id := uuid.New()
	var nilSession *RemoteSession

	assert.True(t, (&RemoteSession{WagerID: id}).Matches(id))
	assert.False(t, (&RemoteSession{WagerID: uuid.New()}).Matches(id))
	assert.False(t, nilSession.Matches(id))
}

func TestSettlementResult_NeedsReconciliation(t *testing.T) {
	assert.True(t, (&SettlementResult{Status: WagerStatusNeedsReconciliation}).NeedsReconciliation())
	assert.False(t, (&SettlementResult{Status: WagerStatusResolved}).NeedsReconciliation())
}
