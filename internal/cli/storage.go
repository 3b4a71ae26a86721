package cli

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/freelance-ledger/internal/app"
	"gitlab.com/yelinaung/freelance-ledger/internal/config"
	"gitlab.com/yelinaung/freelance-ledger/internal/database"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"gitlab.com/yelinaung/freelance-ledger/internal/repository"
	"gitlab.com/yelinaung/freelance-ledger/internal/sample"
)

type storage struct {
	kv    repository.KV
	close func(context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Log.Debug().Str("backend", cfg.StorageBackend).Msg("Storage opened")
		return &storage{
			kv: repository.NewPostgresKV(pool),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Log.Debug().Str("backend", cfg.StorageBackend).Str("path", cfg.SQLitePath).Msg("Storage opened")
		return &storage{
			kv:    repository.NewSQLiteKV(db),
			close: func(context.Context) error { return db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

// newApp wires the facade over kv. The sample dataset seeds empty storage
// when enabled.
func newApp(kv repository.KV, cfg *config.Config, now func() time.Time) *app.App {
	var seedProjects func() []models.Project
	var seedClients func() []models.Client
	if cfg.SeedSampleData {
		seedProjects = func() []models.Project { return sample.Projects(now()) }
		seedClients = func() []models.Client { return sample.Clients(now()) }
	}

	return app.New(
		repository.NewCollection(kv, repository.KeyProjects, seedProjects),
		repository.NewCollection(kv, repository.KeyClients, seedClients),
		repository.NewCurrencyPreference(kv, cfg.DefaultCurrency),
		cfg.DefaultCurrency,
		app.WithClock(now),
	)
}
