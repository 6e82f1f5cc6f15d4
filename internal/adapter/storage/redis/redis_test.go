package redis

import (
	"context"
	"testing"

	"wager-settlement/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConfig_Addrs(t *testing.T) {
	cfg := config.RedisConfig{Host: "redis.example.com", Port: 6380}
	assert.Equal(t, []string{"redis.example.com:6380"}, cfg.Addrs())

	cfg.Addresses = []string{"a:26379", "b:26379"}
	assert.Equal(t, []string{"a:26379", "b:26379"}, cfg.Addrs())
}

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := config.RedisConfig{Addresses: []string{s.Addr()}}

	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	s.CheckGet(t, "k", "v")
}

func TestNewClient_Unreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err := NewClient(context.Background(), config.RedisConfig{Addresses: []string{addr}}, zerolog.Nop())
	assert.ErrorContains(t, err, "pinging redis")
}
