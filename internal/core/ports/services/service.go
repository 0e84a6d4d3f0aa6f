package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	RateLedger   RateLedgerSvcFacade
	RateInsights RateInsightsSvc
	Health       HealthSvc
}

// HealthSvc reports whether the rate store is reachable.
type HealthSvc interface {
	Ping(ctx context.Context) error
}
