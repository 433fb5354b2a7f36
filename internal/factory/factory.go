package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/scorekeep/scorekeep/internal/dependencies/clock"
	"github.com/scorekeep/scorekeep/internal/services/registry"
	"github.com/scorekeep/scorekeep/internal/services/standings"
	"github.com/scorekeep/scorekeep/internal/storage"
	"github.com/scorekeep/scorekeep/internal/storage/memory"
	redisstorage "github.com/scorekeep/scorekeep/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Registry  *registry.Service
	Standings *standings.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	return &App{
		Storage:   store,
		Clock:     clk,
		Registry:  registry.New(store, clk, logger),
		Standings: standings.New(),
	}
}

// Close releases any resources held by the storage backend
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
