package cmd

import (
	"context"
	"fmt"
	"net/http"

	"wager-settlement/config"
	"wager-settlement/internal/adapter/ledger"
	"wager-settlement/internal/adapter/storage/memory"
	pgStorage "wager-settlement/internal/adapter/storage/postgres"
	redisStorage "wager-settlement/internal/adapter/storage/redis"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"
	"wager-settlement/internal/core/settlement"
	"wager-settlement/internal/service"
	"wager-settlement/pkg/logger"
	"wager-settlement/pkg/retry"

	"github.com/rs/zerolog"
)

// app is the wired settlement client.
type app struct {
	settlement     *service.SettlementServiceImpl
	normalizer     ports.AmountNormalizer
	audit          ports.AuditService
	tokens         ports.TokenService // nil when no operator JWT secret is configured
	rateLimits     ports.RateLimitStore
	healthCheckers []ports.HealthChecker
	closers        []func()
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp wires storage, the ledger dialer and the services. PostgreSQL and
// Redis are used when enabled; otherwise the in-memory stores stand in and
// nothing survives a restart.
func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{}

	var (
		wagers  ports.WagerRepository
		records ports.TransactionRecordRepository
		audits  ports.AuditRepository
	)
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := pgStorage.Migrate(ctx, pool, log); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		wagers = pgStorage.NewWagerRepo(pool)
		records = pgStorage.NewTransactionRecordRepo(pool)
		audits = pgStorage.NewAuditRepo(pool)
		a.healthCheckers = append(a.healthCheckers, pgStorage.NewHealthCheck(pool))
	} else {
		log.Warn().Msg("database disabled, wagers are kept in memory only")
		wagers = memory.NewWagerRepo()
		records = memory.NewTransactionRecordRepo()
		audits = memory.NewAuditRepo()
	}

	var (
		legs ports.LegCache
		lock ports.WagerLock
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		legs = redisStorage.NewLegCache(rdb)
		lock = redisStorage.NewWagerLock(rdb)
		a.rateLimits = redisStorage.NewRateLimitStore(rdb)
		a.healthCheckers = append(a.healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		legs = memory.NewLegCache()
		lock = memory.NewWagerLock()
		a.rateLimits = memory.NewRateLimitStore()
	}

	seeds, err := seedCipher(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	signer, err := service.NewDelegationSigner(identitySecret(cfg), 0)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("delegation signer: %w", err)
	}
	dialer := ledger.NewDialer(ledger.Config{
		BaseURL:       cfg.Ledger.BaseURL,
		AccountID:     cfg.Ledger.AccountID,
		AccessKey:     cfg.Ledger.AccessKey,
		SigningSecret: cfg.Ledger.SecretKey,
	}, &http.Client{Timeout: cfg.Ledger.RequestTimeout}, signer, service.NewHMACSignatureService(), logger.Component(log, "ledger"))

	policy := retryPolicy(cfg.Retry)
	a.audit = service.NewAuditService(audits, log)
	handles, err := service.NewHandleService(dialer, a.audit, service.HandleConfig{
		TTL:       cfg.Ledger.HandleTTL,
		CacheSize: cfg.Ledger.HandleCacheSize,
		Retry:     policy,
	}, logger.Component(log, "handles"))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.healthCheckers = append(a.healthCheckers, ledger.NewHealthCheck(handles, cfg.Ledger.AccountID))

	normalizer, err := service.NewAmountNormalizer(
		cfg.Ledger.ScaleFactor,
		domain.AmountBounds{Min: domain.FixedPoint(cfg.Settlement.MinStake), Max: domain.FixedPoint(cfg.Settlement.MaxStake)},
		cfg.Settlement.ScaledThreshold,
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("amount normalizer: %w", err)
	}
	a.normalizer = normalizer

	authoritative := make([]domain.GameVariant, 0, len(cfg.Settlement.RemoteAuthoritative))
	for _, v := range cfg.Settlement.RemoteAuthoritative {
		variant := domain.GameVariant(v)
		if !variant.IsValid() {
			a.Close()
			return nil, fmt.Errorf("settlement.remote_authoritative: unknown variant %q", v)
		}
		authoritative = append(authoritative, variant)
	}

	a.settlement = service.NewSettlementService(
		handles,
		wagers,
		records,
		legs,
		lock,
		normalizer,
		seeds,
		a.audit,
		service.SettlementConfig{
			AccountID:   cfg.Ledger.AccountID,
			ScaleFactor: cfg.Ledger.ScaleFactor,
			Machine: settlement.Config{
				ReserveFee:  domain.FixedPoint(cfg.Settlement.ReserveFee),
				MaxAttempts: cfg.Settlement.MaxLegAttempts,
			},
			Backoff:             policy,
			RemoteAuthoritative: authoritative,
			ClientSeed:          cfg.Settlement.ClientSeed,
		},
		logger.Component(log, "settlement"),
	)

	if cfg.JWT.Secret != "" {
		a.tokens = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	} else {
		log.Warn().Msg("jwt.secret not set, admin routes are disabled")
	}

	return a, nil
}

func seedCipher(cfg *config.Config, log zerolog.Logger) (*service.AESSeedCipher, error) {
	if cfg.AES.Key != "" {
		c, err := service.NewAESSeedCipher(cfg.AES.Key)
		if err != nil {
			return nil, fmt.Errorf("seed cipher: %w", err)
		}
		return c, nil
	}
	if cfg.Database.Enabled {
		return nil, fmt.Errorf("aes.key is required when the database is enabled")
	}
	log.Warn().Msg("aes.key not set, using an ephemeral seed key")
	return service.NewEphemeralSeedCipher()
}

// identitySecret falls back to the signing secret, which is how the
// development ledger is configured.
func identitySecret(cfg *config.Config) string {
	if cfg.Ledger.IdentitySecret != "" {
		return cfg.Ledger.IdentitySecret
	}
	return cfg.Ledger.SecretKey
}

func retryPolicy(c config.RetryConfig) retry.Policy {
	return retry.Policy{
		BaseDelay:   c.BaseDelay,
		Multiplier:  c.Multiplier,
		MaxAttempts: c.MaxAttempts,
		MaxDelay:    c.MaxDelay,
	}
}
