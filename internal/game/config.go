package game

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds game configuration, populated from the environment.
type Config struct {
	// Dungeon dimensions.
	Width  int `env:"TH_DUNGEON_WIDTH" envDefault:"25"`
	Height int `env:"TH_DUNGEON_HEIGHT" envDefault:"12"`

	// Seed for random number generation. A seed of 0 means a time-based
	// seed will be used.
	Seed int64 `env:"TH_SEED" envDefault:"0"`

	// InputWindow is how long the engine waits for a command each turn
	// before treating the turn as a no-op.
	InputWindow time.Duration `env:"TH_INPUT_WINDOW" envDefault:"500ms"`
}

// LoadConfig parses configuration from the environment, applying defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Width < 5 || cfg.Height < 5 {
		return Config{}, fmt.Errorf("dungeon %dx%d too small, need at least 5x5", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
