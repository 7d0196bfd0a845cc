package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

const (
	maxRetries       = 5
	connectTimeout   = 5 * time.Second
	initialBackoff   = 500 * time.Millisecond
	migrationTimeout = time.Minute
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool // nil with the memory store
	Store  repositories.Store
}

// NewApp opens the store selected by cfg.StoreDriver. For Postgres it
// retries the connection with exponential backoff and applies pending
// migrations.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.StoreDriver == constants.StoreDriverMemory {
		utils.Logger.Warn("Using in-memory store; data is lost on restart.")
		return NewAppWithStore(cfg, repositories.NewMemoryStore()), nil
	}

	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, cfg.DBUrl)
		cancel()
		if err == nil {
			utils.Logger.Infof("%s connected to DB on attempt %d", cfg.AppName, i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)
		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()
	if err := RunMigrations(ctx, cfg.DBUrl); err != nil {
		dbPool.Close()
		return nil, err
	}
	utils.Logger.Info("Database migrations applied.")

	a := NewAppWithStore(cfg, repositories.NewPostgresStore(dbPool))
	a.DB = dbPool
	return a, nil
}

// NewAppWithStore wires an App around an existing store.
func NewAppWithStore(cfg *config.Config, store repositories.Store) *App {
	return &App{Config: cfg, Store: store}
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Infof("%s DB connection closed.", a.Config.AppName)
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
