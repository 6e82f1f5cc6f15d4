package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Retry      RetryConfig      `mapstructure:"retry"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	AES        AESConfig        `mapstructure:"aes"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// LedgerConfig describes how to reach the remote ledger and how long handles live.
type LedgerConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	AccountID       string        `mapstructure:"account_id"`
	AccessKey       string        `mapstructure:"access_key"`
	SecretKey       string        `mapstructure:"secret_key"`      // HMAC request signing
	IdentitySecret  string        `mapstructure:"identity_secret"` // delegation token root key
	ScaleFactor     int64         `mapstructure:"scale_factor"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	HandleTTL       time.Duration `mapstructure:"handle_ttl"`
	HandleCacheSize int           `mapstructure:"handle_cache_size"`
}

type RetryConfig struct {
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	Multiplier  float64       `mapstructure:"multiplier"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

// SettlementConfig bounds stakes and controls reconciliation.
type SettlementConfig struct {
	ReserveFee          int64    `mapstructure:"reserve_fee"`
	MaxLegAttempts      int      `mapstructure:"max_leg_attempts"`
	MinStake            int64    `mapstructure:"min_stake"`
	MaxStake            int64    `mapstructure:"max_stake"`
	ScaledThreshold     int64    `mapstructure:"scaled_threshold"`
	RemoteAuthoritative []string `mapstructure:"remote_authoritative"` // game variants settled by the remote result
	ClientSeed          string   `mapstructure:"client_seed"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RedisConfig points at a single node by default. Addresses (with
// MasterName for sentinel) selects a sentinel or cluster deployment instead.
type RedisConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Addresses  []string `mapstructure:"addresses"`
	MasterName string   `mapstructure:"master_name"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Addrs returns the seed addresses handed to the universal client.
func (r RedisConfig) Addrs() []string {
	if len(r.Addresses) > 0 {
		return r.Addresses
	}
	return []string{r.Addr()}
}

// JWTConfig signs operator tokens for the admin surface.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for server seeds at rest
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WSC_ (Wager Settlement Client).
// Nested keys use underscore: WSC_LEDGER_BASE_URL, WSC_RETRY_MAX_ATTEMPTS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("ledger.base_url", "http://localhost:9090")
	v.SetDefault("ledger.account_id", "")
	v.SetDefault("ledger.access_key", "")
	v.SetDefault("ledger.secret_key", "")
	v.SetDefault("ledger.identity_secret", "")
	v.SetDefault("ledger.scale_factor", 100_000_000)
	v.SetDefault("ledger.request_timeout", "10s")
	v.SetDefault("ledger.handle_ttl", "5m")
	v.SetDefault("ledger.handle_cache_size", 16)
	v.SetDefault("retry.base_delay", "1s")
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.max_delay", "30s")
	v.SetDefault("settlement.reserve_fee", 0)
	v.SetDefault("settlement.max_leg_attempts", 3)
	v.SetDefault("settlement.min_stake", 1)
	v.SetDefault("settlement.max_stake", 1_000_000_000_000)
	v.SetDefault("settlement.scaled_threshold", 1_000_000)
	v.SetDefault("settlement.remote_authoritative", []string{"WHEEL"})
	v.SetDefault("settlement.client_seed", "")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wager_settlement")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.addresses", []string{})
	v.SetDefault("redis.master_name", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "1h")
	v.SetDefault("jwt.issuer", "wager-settlement")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WSC_LEDGER_BASE_URL -> ledger.base_url
	v.SetEnvPrefix("WSC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the settlement protocol cannot run with.
func (c *Config) Validate() error {
	if c.Ledger.ScaleFactor <= 0 {
		return fmt.Errorf("ledger.scale_factor must be positive, got %d", c.Ledger.ScaleFactor)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Settlement.MaxLegAttempts < 1 {
		return fmt.Errorf("settlement.max_leg_attempts must be at least 1, got %d", c.Settlement.MaxLegAttempts)
	}
	if c.Settlement.MinStake <= 0 || c.Settlement.MaxStake < c.Settlement.MinStake {
		return fmt.Errorf("settlement stake bounds invalid: min=%d max=%d", c.Settlement.MinStake, c.Settlement.MaxStake)
	}
	return nil
}
