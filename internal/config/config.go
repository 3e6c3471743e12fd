// Package config loads process defaults from LANCHAT_* environment
// variables; command line flags select the role and may override the
// address and pseudonym.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Host - address the server binds; empty selects the first
	// routable local IPv4.
	Host string `env:"LANCHAT_HOST"`
	// Port - default relay port.
	Port uint16 `env:"LANCHAT_PORT" envDefault:"20000"`
	// OutboxSize - per-connection outbound frame channel capacity.
	OutboxSize int `env:"LANCHAT_OUTBOX_SIZE" envDefault:"32"`
	// ScrollbackCap - client scrollback capacity in lines.
	ScrollbackCap int `env:"LANCHAT_SCROLLBACK" envDefault:"1000"`
	// ReadTimeout - idle period before a silent connection is dropped.
	ReadTimeout time.Duration `env:"LANCHAT_READ_TIMEOUT" envDefault:"5m"`
	// WriteTimeout - deadline for a single outbound frame write.
	WriteTimeout time.Duration `env:"LANCHAT_WRITE_TIMEOUT" envDefault:"30s"`
	// MaxPseudonymLength - upper bound in runes for accepted pseudonyms.
	MaxPseudonymLength int `env:"LANCHAT_MAX_PSEUDONYM" envDefault:"24"`
	// Debug - when set, the client logs to lanchat-debug.log.
	Debug bool `env:"LANCHAT_DEBUG"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.OutboxSize <= 0 || cfg.ScrollbackCap <= 0 || cfg.MaxPseudonymLength <= 0 {
		return nil, fmt.Errorf("config: sizes must be greater than 0")
	}
	return &cfg, nil
}
