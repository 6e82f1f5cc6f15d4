package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still names the releasing wager.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// WagerLock implements ports.WagerLock using Redis SET NX. The value is the
// id of the wager holding the account, so re-acquiring for the same wager
// succeeds.
type WagerLock struct {
	client goredis.UniversalClient
	prefix string
}

// NewWagerLock creates a new Redis-backed wager lock.
func NewWagerLock(client goredis.UniversalClient) *WagerLock {
	return &WagerLock{
		client: client,
		prefix: "wager-lock:",
	}
}

// Acquire takes the account's slot for wagerID. Returns false if another
// wager holds it.
func (l *WagerLock) Acquire(ctx context.Context, accountID string, wagerID uuid.UUID, ttl time.Duration) (bool, error) {
	key := l.prefix + accountID
	result, err := l.client.SetArgs(ctx, key, wagerID.String(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err == nil {
		return result == "OK", nil
	}
	if !errors.Is(err, goredis.Nil) {
		return false, fmt.Errorf("redis wager lock acquire: %w", err)
	}

	// Key already exists; it may be ours from an earlier attempt.
	holder, err := l.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis wager lock holder: %w", err)
	}
	return holder == wagerID.String(), nil
}

// Release frees the account's slot if wagerID still holds it.
func (l *WagerLock) Release(ctx context.Context, accountID string, wagerID uuid.UUID) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.prefix + accountID}, wagerID.String()).Err(); err != nil {
		return fmt.Errorf("redis wager lock release: %w", err)
	}
	return nil
}
