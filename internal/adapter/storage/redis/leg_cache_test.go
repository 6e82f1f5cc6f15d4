package redis

import (
	"context"
	"testing"
	"time"

	"wager-settlement/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceipt(kind domain.LegKind) *domain.LegReceipt {
	wagerID := uuid.New()
	return &domain.LegReceipt{
		Key:             domain.BuildLegIdempotencyKey(wagerID, kind),
		WagerID:         wagerID,
		Kind:            kind,
		Amount:          100,
		RemoteReference: "dbt_1",
		ConfirmedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestLegCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewLegCache(client)
	ctx := context.Background()

	receipt := newReceipt(domain.LegKindDebit)

	// Get before set => nil
	got, err := cache.Get(ctx, receipt.Key)
	assert.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Set(ctx, receipt, 24*time.Hour))

	got, err = cache.Get(ctx, receipt.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, receipt.WagerID, got.WagerID)
	assert.Equal(t, receipt.Amount, got.Amount)
	assert.Equal(t, receipt.RemoteReference, got.RemoteReference)
	assert.True(t, receipt.ConfirmedAt.Equal(got.ConfirmedAt))
	assert.True(t, s.Exists("leg:"+receipt.Key))
}

func TestLegCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewLegCache(client)
	ctx := context.Background()

	receipt := newReceipt(domain.LegKindCredit)
	require.NoError(t, cache.Set(ctx, receipt, time.Second))

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, receipt.Key)
	assert.NoError(t, err)
	assert.Nil(t, got, "expired receipt should return nil")
}

func TestLegCache_CorruptValue(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewLegCache(client)

	require.NoError(t, s.Set("leg:broken", "not-json"))

	_, err := cache.Get(context.Background(), "broken")
	assert.ErrorContains(t, err, "decode leg receipt")
}

func TestLegCache_Unavailable(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewLegCache(client)
	s.Close()

	_, err := cache.Get(context.Background(), "any")
	assert.Error(t, err)
}
