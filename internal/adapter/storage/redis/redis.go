package redis

import (
	"context"
	"fmt"

	"wager-settlement/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates a Redis client and verifies connectivity. One address
// yields a plain client, several a cluster client, and a master name a
// sentinel-backed failover client.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (goredis.UniversalClient, error) {
	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:      cfg.Addrs(),
		MasterName: cfg.MasterName,
		Password:   cfg.Password,
		DB:         cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis %v: %w", cfg.Addrs(), err)
	}

	log.Info().
		Strs("addrs", cfg.Addrs()).
		Str("master", cfg.MasterName).
		Int("db", cfg.DB).
		Msg("Redis connection established")

	return client, nil
}
