package sqlite

import (
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite-backed repositories. Close closes db.
func NewRepositoryProvider(db *DB) portsrepo.RepositoryProvider {
	rateRepo := NewConversionRateRepository(db.DB)
	return portsrepo.RepositoryProvider{
		RateRepo: rateRepo,
		Health:   rateRepo,
		Close:    func() { _ = db.Close() },
	}
}
