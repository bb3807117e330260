package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken     string `env:"BOT_TOKEN"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./blackjack.db"`
	HTTPAddr     string `env:"HTTP_ADDR" envDefault:":8080"`

	// ScoreAPIURL points the bot and terminal at a remote score service.
	// When empty they use the SQLite database directly.
	ScoreAPIURL string        `env:"SCORE_API_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"5s"`

	DealerDrawDelay   time.Duration `env:"DEALER_DRAW_DELAY" envDefault:"1200ms"`
	DealerRevealDelay time.Duration `env:"DEALER_REVEAL_DELAY" envDefault:"800ms"`

	RewardThreshold  int `env:"REWARD_THRESHOLD" envDefault:"1000"`
	LeaderboardLimit int `env:"LEADERBOARD_LIMIT" envDefault:"20"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.LeaderboardLimit <= 0 {
		return nil, fmt.Errorf("LEADERBOARD_LIMIT must be positive, got %d", cfg.LeaderboardLimit)
	}
	if cfg.DealerDrawDelay < 0 || cfg.DealerRevealDelay < 0 {
		return nil, errors.New("dealer delays must not be negative")
	}

	return &cfg, nil
}

func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	return nil
}
