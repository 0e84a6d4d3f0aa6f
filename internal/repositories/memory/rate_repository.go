// Package memory provides an in-process rate store. The ledger is an arena of
// records addressed by their write sequence; the only mutation is an append.
package memory

import (
	"context"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
)

// RateRepository keeps the ledger in memory. It is safe for concurrent use.
type RateRepository struct {
	mu      sync.RWMutex
	records []domain.RateRecord
	now     func() time.Time
}

// Option configures a RateRepository.
type Option func(*RateRepository)

// WithClock overrides the clock used to stamp RecordedAt.
func WithClock(now func() time.Time) Option {
	return func(r *RateRepository) { r.now = now }
}

// NewRateRepository creates an empty in-memory ledger.
func NewRateRepository(opts ...Option) *RateRepository {
	r := &RateRepository{now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

var _ portsrepo.RateRepositoryFacade = (*RateRepository)(nil)

// AppendRate stores a copy of rate with the next sequence number. RecordedAt never
// goes backwards even if the clock does.
func (r *RateRepository) AppendRate(ctx context.Context, rate domain.RateRecord) (*domain.RateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to append rate", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	recordedAt := r.now().UTC()
	if n := len(r.records); n > 0 && recordedAt.Before(r.records[n-1].RecordedAt) {
		recordedAt = r.records[n-1].RecordedAt
	}
	rate.Sequence = int64(len(r.records) + 1)
	rate.RecordedAt = recordedAt
	r.records = append(r.records, rate)

	stored := rate
	return &stored, nil
}

// FindLatestRate returns the rate in effect or apperrors.ErrNotFound.
func (r *RateRepository) FindLatestRate(ctx context.Context) (*domain.RateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to find latest rate", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.records) == 0 {
		return nil, apperrors.NewNotFoundError("no conversion rate recorded")
	}
	best := r.records[0]
	for _, rec := range r.records[1:] {
		if domain.SupersedesRate(rec, best) {
			best = rec
		}
	}
	return &best, nil
}

// FindRatesByEffectiveRange streams records with start <= EffectiveMonth < end, best first.
func (r *RateRepository) FindRatesByEffectiveRange(ctx context.Context, start, end time.Time) iter.Seq2[domain.RateRecord, error] {
	return r.scan(ctx, domain.OrderEffectiveDesc, func(rec domain.RateRecord) bool {
		return !rec.EffectiveMonth.Before(start) && rec.EffectiveMonth.Before(end)
	})
}

// ListRates streams every record in the requested order.
func (r *RateRepository) ListRates(ctx context.Context, order domain.RateOrder) iter.Seq2[domain.RateRecord, error] {
	return r.scan(ctx, order, nil)
}

// CountRates returns the ledger size.
func (r *RateRepository) CountRates(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperrors.NewPersistenceError("failed to count rates", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}

// Ping always succeeds.
func (r *RateRepository) Ping(context.Context) error {
	return nil
}

// scan snapshots the arena when iteration starts; appends made afterwards are not seen.
func (r *RateRepository) scan(ctx context.Context, order domain.RateOrder, keep func(domain.RateRecord) bool) iter.Seq2[domain.RateRecord, error] {
	return func(yield func(domain.RateRecord, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(domain.RateRecord{}, apperrors.NewPersistenceError("failed to list rates", err))
			return
		}

		r.mu.RLock()
		snapshot := slices.Clone(r.records)
		r.mu.RUnlock()

		if keep != nil {
			snapshot = slices.DeleteFunc(snapshot, func(rec domain.RateRecord) bool { return !keep(rec) })
		}
		switch order {
		case domain.OrderEffectiveDesc:
			slices.SortStableFunc(snapshot, func(a, b domain.RateRecord) int {
				switch {
				case domain.SupersedesRate(a, b):
					return -1
				case domain.SupersedesRate(b, a):
					return 1
				default:
					return 0
				}
			})
		case domain.OrderWriteAsc:
			// the arena is already in write order
		}

		for _, rec := range snapshot {
			if !yield(rec, nil) {
				return
			}
		}
	}
}
