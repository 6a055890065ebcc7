// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// Command console is the entry point for the Veloura admin back-office
// gateway. It holds the operator session, guards administrative routes,
// and proxies data operations to the platform API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veloura/veloura/internal/console"
	"github.com/veloura/veloura/internal/console/restclient"
	"github.com/veloura/veloura/internal/console/session"
	redisstore "github.com/veloura/veloura/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", "veloura-console"))
	slog.SetDefault(log)

	log.Info("[Veloura] console_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := console.LoadConfig()
	must(log, err, "load configuration")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Session Storage ────────────────────────────────────────────────
	// Redis when configured, in-process memory otherwise.
	var storage session.Storage
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		storage = session.NewRedisStorage(rdb)
	} else {
		storage = session.NewMemoryStorage()
		log.Warn("console_sessions_in_memory_only")
	}

	// ── 4. Session Store ──────────────────────────────────────────────────
	store := session.NewStore(storage, log)
	must(log, store.Initialize(startupCtx), "initialize session store")

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go store.Watch(watchCtx, cfg.PollInterval)

	// ── 5. API Client & Server ────────────────────────────────────────────
	apiClient := restclient.New(cfg.APIBaseURL)
	server := console.NewServer(cfg, store, apiClient, log)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("console startup error", slog.Any("error", err))
	}

	if err := server.Shutdown(15 * time.Second); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("console stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
