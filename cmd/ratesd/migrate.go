package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/SscSPs/rate_ledger/internal/platform/config"
	"github.com/SscSPs/rate_ledger/pkg/database"
	"github.com/google/subcommands"
)

type migrateCmd struct {
	logger *slog.Logger
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending PostgreSQL migrations" }
func (*migrateCmd) Usage() string {
	return `ratesd migrate

  Applies the embedded schema migrations to PGSQL_URL and exits.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (m *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		m.logger.Error("Failed to load config", slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		m.logger.Error("migrate only applies to the postgres store", slog.String("store", cfg.StoreDriver))
		return subcommands.ExitUsageError
	}
	if err := database.MigratePostgres(cfg.DatabaseURL, m.logger); err != nil {
		m.logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
