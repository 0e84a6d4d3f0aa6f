package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/SscSPs/rate_ledger/internal/platform/config"
	"github.com/SscSPs/rate_ledger/internal/utils"
	"github.com/google/subcommands"
)

type tokenCmd struct {
	logger *slog.Logger
	sub    string
	name   string
	role   string
	expiry time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a bearer token signed with JWT_SECRET" }
func (*tokenCmd) Usage() string {
	return `ratesd token -sub <id> [-name <name>] [-role <role>] [-expiry 1h]

  Prints a token for local testing and scripted backfills. Production tokens
  come from the identity provider.
`
}

func (t *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.sub, "sub", "", "Subject (actor id) of the token.")
	f.StringVar(&t.name, "name", "", "Display name of the actor.")
	f.StringVar(&t.role, "role", "", "Role checked against WRITER_ROLES.")
	f.DurationVar(&t.expiry, "expiry", time.Hour, "Token lifetime.")
}

func (t *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if t.sub == "" {
		fmt.Fprintln(os.Stderr, "-sub is required")
		return subcommands.ExitUsageError
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		t.logger.Error("Failed to load config", slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}

	token, err := utils.GenerateActorToken(domain.Actor{ID: t.sub, Name: t.name, Role: t.role}, cfg.JWTSecret, t.expiry, "ratesd")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(token)
	return subcommands.ExitSuccess
}
