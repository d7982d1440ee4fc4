package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finboard/internal/amqp"
	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/services"
	"finboard/internal/store"
	"finboard/internal/store/memory"
	"finboard/internal/store/mongostore"
	"finboard/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(applog.ComponentBackend)}
}

// CreateBackend opens the configured store.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MongoBackend:
		return f.createMongoBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := sqlite.Open(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:      repo,
		Categories: store.StaticCategories(core.DefaultCategories),
		Cleanup:    repo.Close,
	}, nil
}

func (f *DefaultFactory) createMongoBackend(ctx context.Context, config Config) (*BackendResult, error) {
	acc := mongostore.NewAccessor(config.MongoURI, config.MongoDatabase)
	if err := acc.Ping(ctx); err != nil {
		_ = acc.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize MongoDB backend: %w", err)
	}

	f.logger.Info("Initialized MongoDB backend", "database", config.MongoDatabase)

	return &BackendResult{
		Store:      mongostore.New(acc),
		Categories: store.StaticCategories(core.DefaultCategories),
		Cleanup: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return acc.Close(ctx)
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	seedDir := config.SeedDir
	if seedDir == "" {
		seedDir = "."
	}
	st := memory.NewFromFiles(seedDir)

	f.logger.Info("Initialized memory backend", "seed_dir", seedDir)

	return &BackendResult{
		Store:      st,
		Categories: st,
	}, nil
}

// Migrate implements Factory.Migrate.
func (f *DefaultFactory) Migrate(ctx context.Context, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	switch config.Type {
	case SQLiteBackend:
		if dir := filepath.Dir(config.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create db directory: %w", err)
			}
		}
		if err := sqlite.RunMigrations(config.SQLiteDBPath); err != nil {
			return fmt.Errorf("sqlite migrations: %w", err)
		}
		f.logger.Info("SQLite migrations applied", "db_path", config.SQLiteDBPath)
	case MongoBackend:
		acc := mongostore.NewAccessor(config.MongoURI, config.MongoDatabase)
		defer acc.Close(context.Background())
		if err := acc.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		f.logger.Info("MongoDB indexes ensured", "database", config.MongoDatabase)
	case MemoryBackend:
		f.logger.Info("Memory backend has no schema")
	}
	return nil
}

// AMQPConfig describes the optional change-event broker.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// NewPublisher connects to the broker when one is configured. With no URL,
// or when the broker is unreachable, it returns a nil publisher and the
// application runs without change events.
func NewPublisher(cfg AMQPConfig, logger *applog.Logger) (services.Publisher, CleanupFunc) {
	if cfg.URL == "" {
		return nil, nil
	}
	client, err := amqp.NewClient(cfg.URL, cfg.Exchange, cfg.Queue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without change events",
			applog.FieldComponent, applog.ComponentAMQP, applog.FieldError, err)
		return nil, nil
	}
	logger.Info("Initialized AMQP client", "exchange", cfg.Exchange, "queue", cfg.Queue)
	return client, client.Close
}
