// Package backend builds the stores for the configured data backend.
package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

// CleanupFunc releases the resources held by a backend.
type CleanupFunc func() error

type HealthFunc func(ctx context.Context) map[string]string

// Backend holds the stores of one data backend along with its lifecycle hooks.
type Backend struct {
	Name         string
	Transactions domain.TransactionRepository
	Users        user.Repository
	Health       HealthFunc
	Cleanup      CleanupFunc
}

func New(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app config is nil")
	}

	switch cfg.DataBackend {
	case config.BackendPostgres:
		return newPostgresBackend(ctx, cfg)
	case config.BackendMongo:
		return newMongoBackend(ctx, cfg)
	case config.BackendMemory:
		return newMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

func newPostgresBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	dbService, err := db.NewDBService(ctx, cfg.DBConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if err := db.RunMigrations(dbService.DB); err != nil {
		_ = dbService.Close()
		return nil, err
	}

	log.Info().Str("backend", config.BackendPostgres).Msg("Initialized postgres backend")
	return &Backend{
		Name:         config.BackendPostgres,
		Transactions: infrastructure.NewPostgresTransactionRepository(dbService.DB),
		Users:        user.NewUserRepository(dbService.DB),
		Health:       dbService.Health,
		Cleanup:      dbService.Close,
	}, nil
}

func newMongoBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	mongoService, err := db.NewMongoService(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mongo: %w", err)
	}
	users, err := user.NewMongoUserRepository(ctx, mongoService.Database)
	if err != nil {
		_ = mongoService.Close()
		return nil, err
	}

	log.Info().Str("backend", config.BackendMongo).Str("database", cfg.MongoDatabase).Msg("Initialized mongo backend")
	return &Backend{
		Name:         config.BackendMongo,
		Transactions: infrastructure.NewMongoTransactionRepository(mongoService.Database),
		Users:        users,
		Health:       mongoService.Health,
		Cleanup:      mongoService.Close,
	}, nil
}

func newMemoryBackend() *Backend {
	log.Warn().Str("backend", config.BackendMemory).Msg("Initialized memory backend, data is lost on restart")
	return &Backend{
		Name:         config.BackendMemory,
		Transactions: infrastructure.NewMemoryTransactionRepository(),
		Users:        user.NewMemoryUserRepository(),
		Health: func(context.Context) map[string]string {
			return map[string]string{"status": "up", "message": "It's healthy"}
		},
		Cleanup: func() error { return nil },
	}
}
