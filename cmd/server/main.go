package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JonMunkholm/leadsite/internal/config"
	"github.com/JonMunkholm/leadsite/internal/core"
	"github.com/JonMunkholm/leadsite/internal/logging"
	"github.com/JonMunkholm/leadsite/internal/metrics"
	"github.com/JonMunkholm/leadsite/internal/web"
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
	slog.Debug("configuration", "config", cfg.String())

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_driver", cfg.Store.Driver,
		"fallback_log", cfg.FallbackLog.Enabled,
		"metrics", cfg.Metrics.Enabled,
	)

	// One pool for the whole process, closed after the server drains.
	ctx := context.Background()
	store, err := core.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if n, err := store.Count(ctx); err == nil {
		slog.Info("store ready", "driver", store.Dialect().Name, "applications", n)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// A nil *FallbackLog must not end up inside the interface.
	var fallback core.FallbackWriter
	if cfg.FallbackLog.Enabled {
		fallback = core.NewFallbackLog(cfg.FallbackLog.Path)
		slog.Info("fallback log enabled", "path", cfg.FallbackLog.Path)
	}

	service := core.NewService(store, fallback, m)

	server := web.NewServer(cfg, web.Deps{
		Service:  service,
		Health:   store,
		Metrics:  m,
		Gatherer: reg,
	})

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

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

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		store.Close()
		os.Exit(1)
	}

	<-done
	slog.Info("server stopped")
}
