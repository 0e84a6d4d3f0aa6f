package services

import (
	"context"
	"iter"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/SscSPs/rate_ledger/internal/dto"
)

// RateLedgerReaderSvc defines read resolutions over the rate ledger.
// Absence is reported as a nil record with a nil error.
type RateLedgerReaderSvc interface {
	// GetCurrentRate returns the rate in effect, or nil if nothing has been recorded.
	GetCurrentRate(ctx context.Context) (*domain.RateRecord, error)

	// GetRateForPeriod returns the rate in effect within the given calendar month, or nil.
	GetRateForPeriod(ctx context.Context, year, month int) (*domain.RateRecord, error)

	// ListHistory streams the full ledger, latest effective month first.
	ListHistory(ctx context.Context) iter.Seq2[domain.RateRecord, error]

	// ListWriteOrdered streams the full ledger in the order records were written.
	ListWriteOrdered(ctx context.Context) iter.Seq2[domain.RateRecord, error]
}

// RateLedgerWriterSvc defines write admission to the rate ledger.
type RateLedgerWriterSvc interface {
	// RecordRate appends exactly one new record attributed to actor.
	RecordRate(ctx context.Context, req dto.RecordRateRequest, actor domain.Actor) (*domain.RateRecord, error)
}

// RateLedgerSvcFacade combines all rate ledger service interfaces
type RateLedgerSvcFacade interface {
	RateLedgerReaderSvc
	RateLedgerWriterSvc
}

// RateInsightsSvc derives presentation statistics from the ledger.
type RateInsightsSvc interface {
	GetDailyStats(ctx context.Context) (domain.DailyStats, error)
	GetRecentTrend(ctx context.Context, window int) ([]domain.TrendPoint, error)
	GetDashboard(ctx context.Context, window int) (*domain.RateDashboard, error)
}
