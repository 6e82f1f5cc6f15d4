package memory

import (
	"context"
	"sync"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) live(now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

// --- Leg Cache ---

type LegCache struct {
	mu       sync.Mutex
	receipts map[string]entry[domain.LegReceipt]
	now      func() time.Time
}

func NewLegCache() *LegCache {
	return &LegCache{receipts: make(map[string]entry[domain.LegReceipt]), now: time.Now}
}

func (c *LegCache) Get(ctx context.Context, key string) (*domain.LegReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.receipts[key]
	if !ok || !e.live(c.now()) {
		delete(c.receipts, key)
		return nil, nil
	}
	r := e.value
	return &r, nil
}

func (c *LegCache) Set(ctx context.Context, receipt *domain.LegReceipt, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry[domain.LegReceipt]{value: *receipt}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.receipts[receipt.Key] = e
	return nil
}

// --- Wager Lock ---

type WagerLock struct {
	mu      sync.Mutex
	holders map[string]entry[uuid.UUID]
	now     func() time.Time
}

func NewWagerLock() *WagerLock {
	return &WagerLock{holders: make(map[string]entry[uuid.UUID]), now: time.Now}
}

func (l *WagerLock) Acquire(ctx context.Context, accountID string, wagerID uuid.UUID, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if e, ok := l.holders[accountID]; ok && e.live(now) && e.value != wagerID {
		return false, nil
	}
	e := entry[uuid.UUID]{value: wagerID}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	l.holders[accountID] = e
	return true, nil
}

func (l *WagerLock) Release(ctx context.Context, accountID string, wagerID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.holders[accountID]; ok && e.value == wagerID {
		delete(l.holders, accountID)
	}
	return nil
}

// --- Rate Limit Store ---

type window struct {
	id    int64
	count int64
}

type RateLimitStore struct {
	mu      sync.Mutex
	windows map[string]window
	now     func() time.Time
}

func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{windows: make(map[string]window), now: time.Now}
}

// Allow counts the request in a fixed window, like the Redis store.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, size time.Duration) (*ports.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secs := int64(size.Seconds())
	if secs < 1 {
		secs = 1
	}
	windowID := s.now().Unix() / secs
	w := s.windows[key]
	if w.id != windowID {
		w = window{id: windowID}
	}
	w.count++
	s.windows[key] = w
	count := w.count

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * secs,
	}, nil
}
