package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/mcoot/gomemo/internal/api"
	"github.com/mcoot/gomemo/internal/factory"
	"github.com/mcoot/gomemo/internal/services/replay"
	redisstorage "github.com/mcoot/gomemo/internal/storage/redis"
	sqlitestorage "github.com/mcoot/gomemo/internal/storage/sqlite"
	"github.com/mcoot/gomemo/internal/web"
)

func main() {
	// A missing .env is fine; real environment variables win either way
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if path := os.Getenv("SQLITE_PATH"); path != "" {
			sqliteCfg.Path = path
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	replayCfg := replay.DefaultConfig()
	replayCfg.MinOpponentDelay = envDuration(logger, "OPPONENT_DELAY_MS", replayCfg.MinOpponentDelay)
	replayCfg.OpponentJitter = envDuration(logger, "OPPONENT_JITTER_MS", replayCfg.OpponentJitter)
	cfg.ReplayConfig = &replayCfg

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	// API routes are registered first so /api/ never reaches the pages
	router := mux.NewRouter()
	api.Mount(router, api.RouterConfig{
		Logger:     logger,
		Records:    app.RecordService,
		History:    app.HistoryService,
		Manager:    app.SessionManager,
		HubManager: app.HubManager,
	})
	web.Mount(router, web.RouterConfig{
		Logger:    logger,
		Records:   app.RecordService,
		History:   app.HistoryService,
		Manager:   app.SessionManager,
		StaticDir: os.Getenv("STATIC_DIR"),
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Ends open event streams so Shutdown does not wait on them
		app.SessionManager.CloseAll()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return
		}
	}

	logger.Info("server stopped")
}

// envDuration reads a millisecond count from the environment
func envDuration(logger *slog.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		logger.Warn("ignoring invalid duration", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
