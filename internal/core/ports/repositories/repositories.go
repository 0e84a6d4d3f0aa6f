package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	RateRepo RateRepositoryFacade
	Health   HealthChecker

	// Close releases the underlying store, if it holds any resources.
	Close func()
}

// HealthChecker is implemented by stores that can verify their backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
