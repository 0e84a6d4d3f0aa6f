package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/rate_ledger/internal/platform/config"
	"github.com/SscSPs/rate_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/rate_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/rate_ledger/internal/repositories/memory"
	"github.com/SscSPs/rate_ledger/pkg/database"
)

// openStore connects the configured rate store. Postgres schemas are migrated first.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if err := database.MigratePostgres(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to migrate database: %w", err)
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), nil
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		logger.Info("SQLite database opened.", slog.String("dsn", cfg.SQLiteDSN))
		return sqlite.NewRepositoryProvider(db), nil
	case config.StoreDriverMemory:
		return memory.NewRepositoryProvider(), nil
	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
