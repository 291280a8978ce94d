package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrpayroll/internal/domain/employee"
	"hrpayroll/internal/platform/config"
	cryptoutil "hrpayroll/internal/platform/crypto"
	"hrpayroll/internal/platform/db"
	"hrpayroll/internal/platform/metrics"
)

// App holds the loaded roster service and the resources behind its store.
type App struct {
	Config  config.Config
	Service *employee.Service
	Metrics *metrics.Collector
	Logger  *slog.Logger

	pool *pgxpool.Pool
}

// New opens the configured store and loads the roster from it. A load
// failure is returned as is; the caller decides whether to stop.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Service = employee.NewService(employee.NewRoster(), store, employee.ServiceConfig{
		Logger:        logger,
		RetirementAge: cfg.RetirementAge,
	})
	if err := a.Service.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) (employee.Store, error) {
	switch a.Config.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := db.Connect(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		a.pool = pool
		a.Logger.Info("using postgres store")
		return employee.NewPostgresStore(pool), nil
	default:
		crypto := cryptoutil.New(a.Config.DataEncryptionKey)
		a.Logger.Info("using file store", "path", a.Config.StorePath, "encrypted", crypto.Configured())
		return employee.NewFileStore(a.Config.StorePath, crypto), nil
	}
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

// MigrateOnly applies the embedded migrations without loading a roster.
func MigrateOnly(ctx context.Context, cfg config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	return db.Migrate(ctx, pool)
}
