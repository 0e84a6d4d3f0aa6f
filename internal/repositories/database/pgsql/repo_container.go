package pgsql

import (
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/rate_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	rateRepo := NewPgxConversionRateRepository(dbPool)
	return portsrepo.RepositoryProvider{
		RateRepo: rateRepo,
		Health:   rateRepo,
		Close:    func() { database.ClosePgxPool(dbPool) },
	}
}
