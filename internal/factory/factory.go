package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/gomemo/internal/dependencies/clock"
	"github.com/mcoot/gomemo/internal/dependencies/random"
	"github.com/mcoot/gomemo/internal/services/history"
	"github.com/mcoot/gomemo/internal/services/records"
	"github.com/mcoot/gomemo/internal/services/replay"
	"github.com/mcoot/gomemo/internal/storage"
	"github.com/mcoot/gomemo/internal/storage/memory"
	redisstorage "github.com/mcoot/gomemo/internal/storage/redis"
	sqlitestorage "github.com/mcoot/gomemo/internal/storage/sqlite"
	"github.com/mcoot/gomemo/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RecordService  *records.Service
	HistoryService *history.Service
	SessionManager *replay.Manager
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds the database location (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
	// ReplayConfig controls opponent auto-play timing
	// If nil, defaults to replay.DefaultConfig(). Zero delays are honored.
	ReplayConfig *replay.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), random.New(), replayConfig(cfg), logger), nil
}

func replayConfig(cfg Config) replay.Config {
	if cfg.ReplayConfig == nil {
		return replay.DefaultConfig()
	}
	return *cfg.ReplayConfig
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		return sqlitestorage.New(*cfg.SQLiteConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, replayCfg replay.Config, logger *slog.Logger) *App {
	recordService := records.New(store, clk, logger)
	historyService := history.New(store, clk, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	sessionManager := replay.NewManager(recordService, historyService, broadcaster, clk, rnd, replayCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		RecordService:  recordService,
		HistoryService: historyService,
		SessionManager: sessionManager,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}

// Close ends all live sessions and releases the storage backend
func (a *App) Close() error {
	a.SessionManager.CloseAll()
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
