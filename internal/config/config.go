package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// TokenPlaceholder is the value shipped in deployment templates. Starting
// with it would produce a bot that can never authenticate, so Load rejects
// it with a diagnostic instead.
const TokenPlaceholder = "YOUR_BOT_TOKEN_HERE"

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN,required"`

	// Local storage for fetched videos
	DownloadDir string `env:"DOWNLOAD_DIR" envDefault:"downloads"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Telegram logging (0 disables)
	LogChatID int64 `env:"LOG_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.BotToken == TokenPlaceholder {
		return nil, errors.New("BOT_TOKEN is still the placeholder value, set a real bot token")
	}
	return cfg, nil
}
