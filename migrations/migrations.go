// Package migrations embeds the SQL schema so the binary can migrate without a checkout.
package migrations

import "embed"

// Postgres holds the golang-migrate files for the PostgreSQL store.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// PostgresDir is the directory inside Postgres that holds the migration files.
const PostgresDir = "postgres"
