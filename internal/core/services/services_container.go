package services

import (
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rate_ledger/internal/core/ports/services"
	"github.com/SscSPs/rate_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	ledger := NewConversionRateService(repos.RateRepo)

	container := &portssvc.ServiceContainer{
		RateLedger:   ledger,
		RateInsights: NewRateInsightsService(ledger, WithDefaultTrendWindow(cfg.TrendWindow)),
	}
	if repos.Health != nil {
		container.Health = repos.Health
	}
	return container
}
