package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
)

// @title Rate Ledger API
// @version 1.0
// @description Append-only ledger of currency conversion rates with daily statistics and recent trends.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&serveCmd{logger: logger}, "")
	commander.Register(&migrateCmd{logger: logger}, "")
	commander.Register(&statsCmd{logger: logger}, "")
	commander.Register(&tokenCmd{logger: logger}, "")

	flag.Parse()
	if flag.NArg() == 0 {
		// a bare invocation runs the server
		os.Exit(int((&serveCmd{logger: logger}).Execute(context.Background(), flag.CommandLine)))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
