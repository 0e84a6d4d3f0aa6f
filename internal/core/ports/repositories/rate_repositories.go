package repositories

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
)

// RateReader defines read operations over the append-only rate log.
type RateReader interface {
	// FindLatestRate returns the rate in effect: greatest effective month, then latest write.
	// It returns apperrors.ErrNotFound when the ledger is empty.
	FindLatestRate(ctx context.Context) (*domain.RateRecord, error)

	// FindRatesByEffectiveRange streams records whose effective month lies in [start, end),
	// best candidate first (same ordering as history).
	FindRatesByEffectiveRange(ctx context.Context, start, end time.Time) iter.Seq2[domain.RateRecord, error]

	// ListRates streams the whole ledger in the requested order.
	ListRates(ctx context.Context, order domain.RateOrder) iter.Seq2[domain.RateRecord, error]

	// CountRates returns the number of records in the ledger.
	CountRates(ctx context.Context) (int64, error)
}

// RateWriter defines the single mutation the ledger supports.
type RateWriter interface {
	// AppendRate stores a new record and returns it with Sequence and RecordedAt assigned.
	// The append is atomic: on error nothing has been stored.
	AppendRate(ctx context.Context, rate domain.RateRecord) (*domain.RateRecord, error)
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
