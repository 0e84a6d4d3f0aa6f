package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/rate_ledger/internal/core/services"
	"github.com/SscSPs/rate_ledger/internal/dto"
	"github.com/SscSPs/rate_ledger/internal/platform/config"
	"github.com/google/subcommands"
)

type statsCmd struct {
	logger *slog.Logger
	window int
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "print the conversion dashboard as JSON" }
func (*statsCmd) Usage() string {
	return `ratesd stats [-window N]

  Reads the configured store and prints the current rate, the daily
  extrema statistics and the recent trend.
`
}

func (s *statsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&s.window, "window", 0, "Number of recent records in the trend (defaults to TREND_WINDOW).")
}

func (s *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		s.logger.Error("Failed to load config", slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}
	if s.window < 0 {
		fmt.Fprintln(os.Stderr, "window must not be negative")
		return subcommands.ExitUsageError
	}

	repos, err := openStore(ctx, cfg, s.logger)
	if err != nil {
		s.logger.Error("Failed to open rate store", slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}
	defer repos.Close()

	container := services.NewServiceContainer(cfg, repos)
	dashboard, err := container.RateInsights.GetDashboard(ctx, s.window)
	if err != nil {
		s.logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.ToDashboardResponse(dashboard)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
