package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_BURST",
		"RATE_LIMIT_REFILL_EVERY", "RATE_LIMIT_KEY_STRATEGY",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("enabled should default to true")
	}
	if cfg.Capacity != 60 {
		t.Errorf("capacity = %d, want 60", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != time.Second {
		t.Errorf("refill = %d/%s, want 1/1s", cfg.RefillTokens, cfg.RefillInterval)
	}
	if cfg.KeyStrategy != "ip_user_route" {
		t.Errorf("key strategy = %q", cfg.KeyStrategy)
	}
}

func TestLoadRateLimitConfigOverridesAndClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Enabled {
		t.Error("enabled should be false")
	}
	if cfg.Capacity != 1 {
		t.Errorf("negative capacity should clamp to 1, got %d", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != 2*time.Second {
		t.Errorf("REFILL_EVERY should force 1 token per 2s, got %d/%s", cfg.RefillTokens, cfg.RefillInterval)
	}
	if want := 5 * cfg.RefillInterval; cfg.TTL != want {
		t.Errorf("short TTL should clamp to %s, got %s", want, cfg.TTL)
	}

	t.Setenv("RATE_LIMIT_BURST", "120")
	if cfg := LoadRateLimitConfig(); cfg.Capacity != 120 {
		t.Errorf("BURST should override capacity, got %d", cfg.Capacity)
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"ON", false, true},
		{"false", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.raw)
			if got := envBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("envBool(%q, %v) = %v, want %v", tt.raw, tt.def, got, tt.want)
			}
		})
	}
}
