package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperhq/anvil/internal/acord"
	"github.com/harperhq/anvil/internal/agent"
	"github.com/harperhq/anvil/internal/api"
	"github.com/harperhq/anvil/internal/config"
	"github.com/harperhq/anvil/internal/events"
	"github.com/harperhq/anvil/internal/llm"
	"github.com/harperhq/anvil/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("anvil starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database is optional; without it anvil runs stateless with no form history.
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, running without form storage")
	}

	// Anthropic client
	if cfg.AnthropicAPIKey == "" {
		slog.Error("ANTHROPIC_API_KEY is required")
		os.Exit(1)
	}
	provider := llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	slog.Info("anthropic client ready", "model", cfg.AnthropicModel)

	// Core components
	mapper := acord.NewMapper(cfg.AgencyName)
	pipeline := agent.New(provider, cfg.AmbiguityThreshold, slog.Default())
	quickfill := agent.NewQuickFill(provider, slog.Default())

	// NATS
	natsClient, err := events.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Regenerate forms on memory updates (needs storage)
	if db != nil {
		listener := events.NewListener(natsClient, db, mapper, slog.Default())
		if err := listener.Start(natsClient); err != nil {
			slog.Error("failed to subscribe to memory updates", "error", err)
			os.Exit(1)
		}
	}

	// HTTP API
	var formStore api.FormStore
	if db != nil {
		formStore = db
	}
	srv := api.NewServer(cfg.Port, cfg.APIToken, mapper, pipeline, quickfill, formStore, natsClient, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if err := natsClient.Publish("anvil.service.registered", map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"port":      cfg.Port,
	}); err != nil {
		slog.Warn("failed to publish registration", "error", err)
	}

	slog.Info("anvil ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("anvil stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
