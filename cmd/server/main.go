package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/PharmaDB/internal/config"
	"github.com/JonMunkholm/PharmaDB/internal/core"
	_ "github.com/JonMunkholm/PharmaDB/internal/core/kinds" // Register entity kinds
	"github.com/JonMunkholm/PharmaDB/internal/database"
	"github.com/JonMunkholm/PharmaDB/internal/invoice"
	"github.com/JonMunkholm/PharmaDB/internal/logging"
	"github.com/JonMunkholm/PharmaDB/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	provider, err := database.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to configure database", "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	// The pool opens lazily; ping once so a bad URL fails at startup.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	err = provider.Ping(ctx)
	cancel()
	if err != nil {
		slog.Error("failed to ping database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database", "driver", provider.Dialect().Name)

	service := core.NewService(provider, cfg.Database.Schema)

	invoices, err := invoice.FromConfig(provider, cfg.Invoice)
	if err != nil {
		slog.Error("failed to configure invoices", "error", err)
		os.Exit(1)
	}

	kinds := make([]string, 0, core.KindCount())
	for _, k := range core.Kinds() {
		kinds = append(kinds, k.Name)
	}
	slog.Info("entity kinds registered", "count", len(kinds), "kinds", kinds)

	server := web.NewServer(service, invoices, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server stopped", "error", err)
		provider.Close()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
