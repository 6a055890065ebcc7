// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// Command api is the entry point for the Veloura platform API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect optional backends (Elasticsearch, Kafka, assistant upstream).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/veloura/veloura/internal/api"
	"github.com/veloura/veloura/internal/chat"
	"github.com/veloura/veloura/internal/content/article"
	"github.com/veloura/veloura/internal/insights/behavior"
	"github.com/veloura/veloura/internal/insights/recommend"
	"github.com/veloura/veloura/internal/insights/stats"
	"github.com/veloura/veloura/internal/platform/config"
	"github.com/veloura/veloura/internal/platform/constants"
	"github.com/veloura/veloura/internal/platform/migration"
	pgstore "github.com/veloura/veloura/internal/platform/postgres"
	redisstore "github.com/veloura/veloura/internal/platform/redis"
	"github.com/veloura/veloura/internal/platform/sec"
	"github.com/veloura/veloura/internal/store/category"
	"github.com/veloura/veloura/internal/store/product"
	"github.com/veloura/veloura/internal/store/tag"
	"github.com/veloura/veloura/internal/store/voucher"
	"github.com/veloura/veloura/internal/users/account"
	"github.com/veloura/veloura/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "veloura-api"))
	slog.SetDefault(log)

	log.Info("[Veloura] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "veloura-api"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Search Index ───────────────────────────────────────────────────
	// Elasticsearch when configured, ILIKE catalogue scans otherwise.
	var searchIndex product.SearchIndex
	var checkSearch func() error
	if cfg.ElasticURL != "" {
		esClient, err := product.NewSearchClient([]string{cfg.ElasticURL}, cfg.ElasticUser, cfg.ElasticPassword)
		must(log, err, "connect to elasticsearch")
		elasticIndex := product.NewElasticIndex(esClient, cfg.ElasticIndex)
		searchIndex = elasticIndex
		checkSearch = func() error {
			return elasticIndex.Ping(context.Background())
		}
		log.Info("search_backend_ready", slog.String("index", cfg.ElasticIndex))
	} else {
		searchIndex = product.NewSQLIndex(pool)
		log.Warn("search_degraded_to_sql_scans")
	}

	// ── 8. Behavior Stream ────────────────────────────────────────────────
	var publisher behavior.Publisher = behavior.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		publisher = behavior.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		log.Info("behavior_stream_ready", slog.String("topic", cfg.KafkaTopic))
	} else {
		log.Warn("behavior_stream_disabled")
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			log.Error("kafka close error", slog.Any("error", cerr))
		}
	}()

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckSearch: checkSearch,
	}, log)

	// ── 10. Domain Wiring ─────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	otpRepository := auth.NewOTPRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, otpRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewPreferencesRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)
	accountHandler := account.NewHandler(accountService)

	productRepository := product.NewPostgresRepository(pool)
	productService := product.NewService(productRepository, searchIndex, log)
	productHandler := product.NewHandler(productService, log)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(pool), log))
	tagHandler := tag.NewHandler(tag.NewService(tag.NewPostgresRepository(pool), log))
	voucherHandler := voucher.NewHandler(voucher.NewService(voucher.NewPostgresRepository(pool), log))
	articleHandler := article.NewHandler(article.NewService(article.NewPostgresRepository(pool), log))

	recentViews := behavior.NewRecentViewsRepository(rdb)
	behaviorService := behavior.NewService(publisher, recentViews, productRepository, log)
	behaviorHandler := behavior.NewHandler(behaviorService)

	statsHandler := stats.NewHandler(stats.NewService(stats.NewPostgresRepository(pool), log))

	recommendService := recommend.NewService(recentViews, productRepository, recommend.NewPostgresPopularity(pool), log)
	recommendHandler := recommend.NewHandler(recommendService, log)

	// ── 11. Chat Assistant ────────────────────────────────────────────────
	var assistant chat.Assistant = chat.CannedAssistant{}
	if cfg.AssistantURL != "" {
		assistant = chat.NewOpenAIAssistant(cfg.AssistantURL, cfg.AssistantKey, cfg.AssistantModel)
		log.Info("chat_assistant_ready", slog.String("model", cfg.AssistantModel))
	} else {
		log.Warn("chat_assistant_canned_mode")
	}

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	hub := chat.NewHub(log)
	go hub.Run(hubCtx)
	chatHandler := chat.NewHandler(hub, assistant, log)

	// ── 12. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Product:   productHandler,
		Category:  categoryHandler,
		Tag:       tagHandler,
		Voucher:   voucherHandler,
		Article:   articleHandler,
		Behavior:  behaviorHandler,
		Stats:     statsHandler,
		Recommend: recommendHandler,
		Chat:      chatHandler,
	}

	server := api.NewServer(hubCtx, cfg, log, jwtSvc, handlers)

	// ── 13. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
