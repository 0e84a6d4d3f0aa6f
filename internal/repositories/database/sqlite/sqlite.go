// Package sqlite stores the rate ledger in an embedded SQLite database.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Register sqlite driver
)

//go:embed schema.sql
var schema string

// DB wraps the database handle the repositories run on.
type DB struct {
	*sql.DB
}

// connParams apply to every pooled connection. Writers take the write lock when the
// transaction begins and wait for it instead of failing with SQLITE_BUSY.
var connParams = []string{
	"_txlock=immediate",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
}

// withConnParams appends connParams to a file DSN, keeping any the caller already set.
func withConnParams(dsn string) string {
	if dsn == ":memory:" {
		return dsn
	}
	var extra []string
	for _, p := range connParams {
		key := p[:strings.Index(p, "=")+1]
		if i := strings.Index(p, "("); i >= 0 {
			key = p[:i+1]
		}
		if !strings.Contains(dsn, key) {
			extra = append(extra, p)
		}
	}
	if len(extra) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(extra, "&")
}

// Open opens (creating if needed) the database at dsn and applies the schema.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", withConnParams(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// In-memory databases are per-connection; multiple connections each get a
	// separate empty database. Limit to one connection so migrations and
	// queries all see the same data.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{db}, nil
}
