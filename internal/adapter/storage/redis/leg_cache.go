package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wager-settlement/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// LegCache implements ports.LegCache using Redis. Receipts are stored as JSON
// under "leg:<wager_id>:<kind>".
type LegCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewLegCache creates a new Redis-backed leg receipt cache.
func NewLegCache(client goredis.UniversalClient) *LegCache {
	return &LegCache{
		client: client,
		prefix: "leg:",
	}
}

// Get retrieves a leg receipt. Returns nil, nil if the leg has none.
func (c *LegCache) Get(ctx context.Context, key string) (*domain.LegReceipt, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis leg cache get: %w", err)
	}

	var receipt domain.LegReceipt
	if err := json.Unmarshal(val, &receipt); err != nil {
		return nil, fmt.Errorf("decode leg receipt: %w", err)
	}
	return &receipt, nil
}

// Set stores a confirmed leg's receipt with TTL.
func (c *LegCache) Set(ctx context.Context, receipt *domain.LegReceipt, ttl time.Duration) error {
	val, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("encode leg receipt: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+receipt.Key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis leg cache set: %w", err)
	}
	return nil
}
