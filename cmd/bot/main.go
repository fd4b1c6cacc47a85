package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/rohit98064/Tele-Bot/internal/config"
	"github.com/rohit98064/Tele-Bot/internal/handler"
	"github.com/rohit98064/Tele-Bot/internal/middleware"
	"github.com/rohit98064/Tele-Bot/internal/service"
	"github.com/rohit98064/Tele-Bot/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(config.RateLimitPerMinute, config.RateLimitBurst, config.RateLimitEntryTTL),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize services
	tx := telegram.NewClient(b)
	reporter := telegram.NewReporter(b, cfg.LogChatID)
	sessions := service.NewSessionStore()
	catalog := service.NewCatalogService()
	delivery := service.NewDeliveryService(catalog, tx, cfg.DownloadDir)

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:      b,
		Sessions: sessions,
		Catalog:  catalog,
		Delivery: delivery,
		Tx:       tx,
		Reporter: reporter,
	})

	// Register all handlers
	h.Register()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
