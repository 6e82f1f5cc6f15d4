package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"
	"wager-settlement/internal/metrics"
	"wager-settlement/pkg/apperror"
	"wager-settlement/pkg/retry"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// DefaultHandleTTL is how long a dialed handle may be reused.
const DefaultHandleTTL = 5 * time.Minute

// HandleConfig tunes the handle cache and the retry wrapper.
type HandleConfig struct {
	TTL       time.Duration
	CacheSize int
	Retry     retry.Policy
	// Clock is injectable so expiry can be tested without sleeping.
	Clock func() time.Time
}

// HandleService implements ports.HandleProvider. It caches one handle per
// (identity, purpose), evicts handles that produce credential errors and
// degrades to read-only DEMO mode when the player identity cannot be
// established.
type HandleService struct {
	dialer ports.LedgerDialer
	audit  ports.AuditService
	cfg    HandleConfig
	log    zerolog.Logger

	mu    sync.Mutex
	cache *lru.Cache[domain.HandleKey, *ports.Handle]
	mode  domain.Mode
}

// NewHandleService creates a handle service in LIVE mode. audit may be nil.
func NewHandleService(dialer ports.LedgerDialer, audit ports.AuditService, cfg HandleConfig, log zerolog.Logger) (*HandleService, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultHandleTTL
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 16
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.DefaultPolicy()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	cache, err := lru.New[domain.HandleKey, *ports.Handle](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating handle cache: %w", err)
	}

	return &HandleService{
		dialer: dialer,
		audit:  audit,
		cfg:    cfg,
		log:    log,
		cache:  cache,
		mode:   domain.ModeLive,
	}, nil
}

// Acquire returns the cached handle for key, dialing a new one when there is
// none or it has expired. A credential failure while dialing the player
// identity switches to DEMO and returns the anonymous handle instead.
func (s *HandleService) Acquire(ctx context.Context, key domain.HandleKey) (*ports.Handle, error) {
	now := s.cfg.Clock()

	s.mu.Lock()
	if h, ok := s.cache.Get(key); ok {
		if !h.Expired(now) {
			s.mu.Unlock()
			return h, nil
		}
		s.cache.Remove(key)
		metrics.HandleEvictions.WithLabelValues(metrics.ReasonExpired).Inc()
	}
	s.mu.Unlock()

	client, capability, err := s.dialer.Dial(ctx, key)
	if err != nil {
		metrics.HandleDials.WithLabelValues(string(key.Identity), metrics.ResultError).Inc()
		if key.Identity == domain.IdentityPlayer && ports.RemoteErrorKindOf(err) == ports.RemoteCredential {
			s.enterDemo(ctx, key, err)
			return s.Acquire(ctx, key.Anonymous())
		}
		return nil, err
	}
	metrics.HandleDials.WithLabelValues(string(key.Identity), metrics.ResultOK).Inc()

	h := &ports.Handle{
		ConnectionHandle: domain.ConnectionHandle{
			ID:         uuid.New(),
			Key:        key,
			CreatedAt:  now,
			TTL:        s.cfg.TTL,
			Capability: capability,
		},
		Client: client,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent Acquire may have won the dial; keep the first handle.
	if existing, ok := s.cache.Peek(key); ok && !existing.Expired(now) {
		return existing, nil
	}
	s.cache.Add(key, h)

	if key.Identity == domain.IdentityPlayer && !h.CanWrite() && s.mode == domain.ModeLive {
		s.mode = domain.ModeDemo
		metrics.ModeTransitions.WithLabelValues(string(domain.ModeDemo)).Inc()
		s.log.Warn().Str("purpose", string(key.Purpose)).Msg("ledger granted a read-only handle, entering demo mode")
	}

	s.log.Debug().
		Str("handle_id", h.ID.String()).
		Str("key", key.String()).
		Str("capability", string(capability)).
		Msg("ledger handle dialed")
	return h, nil
}

// InvalidateOnError evicts h if err is a credential failure. Only the handle
// that produced the error is removed, so a handle dialed since is kept and a
// second call is a no-op. It reports whether err was a credential failure.
func (s *HandleService) InvalidateOnError(err error, h *ports.Handle) bool {
	if h == nil || ports.RemoteErrorKindOf(err) != ports.RemoteCredential {
		return false
	}

	s.mu.Lock()
	cur, ok := s.cache.Peek(h.Key)
	evicted := ok && cur.ID == h.ID
	if evicted {
		s.cache.Remove(h.Key)
	}
	s.mu.Unlock()

	if evicted {
		metrics.HandleEvictions.WithLabelValues(metrics.ReasonCredential).Inc()
		s.log.Warn().Err(err).
			Str("handle_id", h.ID.String()).
			Str("key", h.Key.String()).
			Msg("ledger handle evicted after credential failure")
	}
	return true
}

// Call runs fn against a handle for spec.Purpose, retrying transient and
// credential failures under the configured policy.
func (s *HandleService) Call(ctx context.Context, spec ports.CallSpec, fn func(ctx context.Context, client ports.LedgerClient) error) error {
	if spec.Write && s.Mode() == domain.ModeDemo {
		return apperror.ErrDemoMode()
	}

	callCtx := ctx
	if spec.Detached {
		callCtx = context.WithoutCancel(ctx)
	}

	policy := s.cfg.Retry
	if spec.Once {
		policy.MaxAttempts = 1
	}

	op := func(_ context.Context, attempt int) error {
		key := domain.HandleKey{Identity: domain.IdentityPlayer, Purpose: spec.Purpose}
		if s.Mode() == domain.ModeDemo {
			key = key.Anonymous()
		}

		h, err := s.Acquire(callCtx, key)
		if err != nil {
			return err
		}
		if spec.Write && !h.CanWrite() {
			return apperror.ErrDemoMode()
		}

		err = fn(callCtx, h.Client)
		if err != nil {
			s.InvalidateOnError(err, h)
			metrics.LedgerCalls.WithLabelValues(spec.Op, metrics.ResultError).Inc()
			return err
		}
		metrics.LedgerCalls.WithLabelValues(spec.Op, metrics.ResultOK).Inc()
		return nil
	}

	notify := func(err error, attempt int, delay time.Duration) {
		metrics.LedgerRetries.WithLabelValues(spec.Op).Inc()
		s.log.Warn().Err(err).
			Str("op", spec.Op).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("ledger call failed, retrying")
	}

	err := retry.Do(ctx, policy, op, ports.IsRetryable, notify)
	if err != nil && ports.IsRetryable(err) && !spec.Once {
		s.log.Error().Err(err).Str("op", spec.Op).Int("attempts", policy.MaxAttempts).Msg("ledger call failed after retries")
	}
	return err
}

// Mode reports whether ledger writes are currently possible.
func (s *HandleService) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Reconnect drops every cached handle and dials the player identity again.
// The process returns to LIVE only if that dial is authenticated.
func (s *HandleService) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	n := s.cache.Len()
	s.cache.Purge()
	wasDemo := s.mode == domain.ModeDemo
	s.mu.Unlock()
	if n > 0 {
		metrics.HandleEvictions.WithLabelValues(metrics.ReasonReconnect).Add(float64(n))
	}

	key := domain.HandleKey{Identity: domain.IdentityPlayer, Purpose: domain.PurposeLedger}
	client, capability, err := s.dialer.Dial(ctx, key)
	if err != nil {
		metrics.HandleDials.WithLabelValues(string(key.Identity), metrics.ResultError).Inc()
		return fmt.Errorf("reconnecting: %w", err)
	}
	metrics.HandleDials.WithLabelValues(string(key.Identity), metrics.ResultOK).Inc()
	if capability != domain.CapabilityAuthenticated {
		return errors.New("reconnecting: ledger granted a read-only handle")
	}

	now := s.cfg.Clock()
	h := &ports.Handle{
		ConnectionHandle: domain.ConnectionHandle{
			ID:         uuid.New(),
			Key:        key,
			CreatedAt:  now,
			TTL:        s.cfg.TTL,
			Capability: capability,
		},
		Client: client,
	}

	s.mu.Lock()
	s.cache.Add(key, h)
	s.mode = domain.ModeLive
	s.mu.Unlock()

	if wasDemo {
		metrics.ModeTransitions.WithLabelValues(string(domain.ModeLive)).Inc()
		s.log.Info().Msg("ledger reconnected, leaving demo mode")
		s.logAudit(ctx, domain.AuditActionReconnected, nil)
	}
	return nil
}

func (s *HandleService) enterDemo(ctx context.Context, key domain.HandleKey, cause error) {
	s.mu.Lock()
	changed := s.mode != domain.ModeDemo
	s.mode = domain.ModeDemo
	s.mu.Unlock()
	if !changed {
		return
	}

	metrics.ModeTransitions.WithLabelValues(string(domain.ModeDemo)).Inc()
	s.log.Warn().Err(cause).Str("purpose", string(key.Purpose)).Msg("player identity unavailable, entering demo mode")
	s.logAudit(ctx, domain.AuditActionDemoModeEntered, map[string]interface{}{
		"purpose": key.Purpose,
		"cause":   cause.Error(),
	})
}

func (s *HandleService) logAudit(ctx context.Context, action domain.AuditAction, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	entry := &domain.AuditLog{
		Action:       action,
		ResourceType: "ledger",
		Actor:        ActorSystem,
	}
	s.audit.Log(ctx, withDetails(entry, details))
}
