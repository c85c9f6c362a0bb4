// Package config reads process settings from the environment. Command-line
// flags in cmd/ take their defaults from here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/peterkuimelis/gwentx/internal/game"
)

// Config holds the settings shared by the gwentx binaries.
type Config struct {
	DecksFile   string        `env:"GWENTX_DECKS"     envDefault:"decks.yaml"`
	CatalogFile string        `env:"GWENTX_CATALOG"`
	Port        int           `env:"GWENTX_PORT"      envDefault:"8080"`
	MCPPort     string        `env:"GWENTX_MCP_PORT"  envDefault:"9999"`
	Seed        int64         `env:"GWENTX_SEED"`
	HandSize    int           `env:"GWENTX_HAND_SIZE" envDefault:"10"`
	DeckSize    int           `env:"GWENTX_DECK_SIZE" envDefault:"15"`
	RoundDraw   int           `env:"GWENTX_ROUND_DRAW"`
	AIDelay     time.Duration `env:"GWENTX_AI_DELAY"  envDefault:"1s"`
	PublicURL   string        `env:"GWENTX_PUBLIC_URL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a match cannot start with.
func (c Config) Validate() error {
	if c.HandSize < 1 {
		return fmt.Errorf("hand size must be at least 1, got %d", c.HandSize)
	}
	if c.DeckSize < 1 {
		return fmt.Errorf("deck size must be at least 1, got %d", c.DeckSize)
	}
	if c.RoundDraw < 0 {
		return fmt.Errorf("round draw must not be negative, got %d", c.RoundDraw)
	}
	return nil
}

// Catalog loads the configured card catalog, or the builtin set when no
// catalog file is configured.
func (c Config) Catalog() (game.Catalog, error) {
	if c.CatalogFile == "" {
		return game.DefaultCatalog(), nil
	}
	cat, err := game.LoadCatalog(c.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", c.CatalogFile, err)
	}
	return cat, nil
}
