package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 20000 {
		t.Errorf("expected default port 20000, got %d", cfg.Port)
	}
	if cfg.OutboxSize != 32 || cfg.ScrollbackCap != 1000 {
		t.Errorf("unexpected default sizes: %d, %d", cfg.OutboxSize, cfg.ScrollbackCap)
	}
	if cfg.ReadTimeout != 5*time.Minute || cfg.WriteTimeout != 30*time.Second {
		t.Errorf("unexpected default timeouts: %v, %v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.MaxPseudonymLength != 24 {
		t.Errorf("expected pseudonym limit 24, got %d", cfg.MaxPseudonymLength)
	}
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("LANCHAT_HOST", "192.168.1.10")
	t.Setenv("LANCHAT_PORT", "4242")
	t.Setenv("LANCHAT_READ_TIMEOUT", "90s")
	t.Setenv("LANCHAT_DEBUG", "true")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "192.168.1.10" || cfg.Port != 4242 {
		t.Errorf("unexpected address: %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.ReadTimeout != 90*time.Second {
		t.Errorf("expected 90s read timeout, got %v", cfg.ReadTimeout)
	}
	if !cfg.Debug {
		t.Error("expected debug mode on")
	}
}

func TestNew_RejectsNonPositiveSizes(t *testing.T) {
	t.Setenv("LANCHAT_SCROLLBACK", "0")
	if _, err := New(); err == nil {
		t.Error("expected an error for zero scrollback capacity")
	}
}
