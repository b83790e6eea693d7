// Package config loads app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; empty disables the DB-backed stores.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// AuthSecret is the HS256 signing secret for session tokens. Required.
	AuthSecret string `mapstructure:"AUTH_SECRET"`
	// JWTIssuer is the iss claim stamped into session tokens.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// TokenTTL is the session token lifetime (e.g. "24h").
	TokenTTL string `mapstructure:"TOKEN_TTL"`
	// MembershipCacheTTL bounds membership staleness (e.g. "30s").
	MembershipCacheTTL string `mapstructure:"MEMBERSHIP_CACHE_TTL"`
	// MembershipCacheSize is the maximum number of cached membership entries.
	MembershipCacheSize int `mapstructure:"MEMBERSHIP_CACHE_SIZE"`
	// RateBurst is the per-IP token bucket burst.
	RateBurst int `mapstructure:"RATE_BURST"`
	// RatePerSecond is the per-IP sustained request rate.
	RatePerSecond int `mapstructure:"RATE_PER_SECOND"`
	// MaxBodyBytes limits request body size.
	MaxBodyBytes int64 `mapstructure:"MAX_BODY_BYTES"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored; env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.SetEnvPrefix("TRANSPORTER")
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("AUTH_SECRET", "")
	v.SetDefault("JWT_ISSUER", "transporter-api")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("MEMBERSHIP_CACHE_TTL", "30s")
	v.SetDefault("MEMBERSHIP_CACHE_SIZE", 4096)
	v.SetDefault("RATE_BURST", 20)
	v.SetDefault("RATE_PER_SECOND", 10)
	v.SetDefault("MAX_BODY_BYTES", int64(1<<20))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.AuthSecret == "" {
		return nil, errors.New("config: AUTH_SECRET must be set")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.RateBurst <= 0 || cfg.RatePerSecond <= 0 {
		return nil, errors.New("config: RATE_BURST and RATE_PER_SECOND must be positive")
	}

	return &cfg, nil
}

// TokenTTLDuration parses TokenTTL. Returns 24h if unset or invalid.
func (c *Config) TokenTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// MembershipCacheTTLDuration parses MembershipCacheTTL. Returns 30s if unset
// or invalid.
func (c *Config) MembershipCacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.MembershipCacheTTL)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
