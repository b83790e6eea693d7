package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSPORTER_AUTH_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "transporter-api" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "transporter-api")
	}
	if cfg.TokenTTL != "24h" {
		t.Errorf("TokenTTL = %q, want %q", cfg.TokenTTL, "24h")
	}
	if cfg.MembershipCacheSize != 4096 {
		t.Errorf("MembershipCacheSize = %d, want 4096", cfg.MembershipCacheSize)
	}
	if cfg.RateBurst != 20 || cfg.RatePerSecond != 10 {
		t.Errorf("rate limits = %d/%d, want 20/10", cfg.RateBurst, cfg.RatePerSecond)
	}
}

func TestLoadRequiresAuthSecret(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load should return error when AUTH_SECRET is unset")
	}
	if cfg != nil {
		t.Error("Load should return nil config on error")
	}
}

func TestLoadEnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSPORTER_AUTH_SECRET", "test-secret")
	os.Setenv("TRANSPORTER_HTTP_ADDR", ":9090")
	os.Setenv("TRANSPORTER_JWT_ISSUER", "custom-issuer")
	os.Setenv("TRANSPORTER_RATE_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.RateBurst != 5 {
		t.Errorf("RateBurst = %d, want 5", cfg.RateBurst)
	}
}

func TestTokenTTLDuration(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSPORTER_AUTH_SECRET", "test-secret")
	os.Setenv("TRANSPORTER_TOKEN_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ttl := cfg.TokenTTLDuration(); ttl != 30*time.Minute {
		t.Errorf("TokenTTLDuration = %v, want %v", ttl, 30*time.Minute)
	}
}

func TestTokenTTLDurationInvalid(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSPORTER_AUTH_SECRET", "test-secret")
	os.Setenv("TRANSPORTER_TOKEN_TTL", "invalid")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ttl := cfg.TokenTTLDuration(); ttl != 24*time.Hour {
		t.Errorf("TokenTTLDuration = %v, want %v (default)", ttl, 24*time.Hour)
	}
}

func TestMembershipCacheTTLDuration(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSPORTER_AUTH_SECRET", "test-secret")
	os.Setenv("TRANSPORTER_MEMBERSHIP_CACHE_TTL", "-5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ttl := cfg.MembershipCacheTTLDuration(); ttl != 30*time.Second {
		t.Errorf("MembershipCacheTTLDuration = %v, want %v (default)", ttl, 30*time.Second)
	}
}
