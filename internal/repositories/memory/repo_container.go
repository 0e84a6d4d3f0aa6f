package memory

import (
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires a fresh in-memory ledger.
func NewRepositoryProvider(opts ...Option) portsrepo.RepositoryProvider {
	rateRepo := NewRateRepository(opts...)
	return portsrepo.RepositoryProvider{
		RateRepo: rateRepo,
		Health:   rateRepo,
		Close:    func() {},
	}
}
