package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"time"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/rate_ledger/internal/models"
	"github.com/SscSPs/rate_ledger/internal/utils/mapping"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02 15:04:05.000000000"

const selectRateColumns = `SELECT seq, rate_id, rate, effective_month, recorded_at, recorded_by_id, recorded_by_name
	FROM conversion_rates`

const orderEffectiveDesc = ` ORDER BY effective_month DESC, recorded_at DESC, seq DESC`

const orderWriteAsc = ` ORDER BY recorded_at ASC, seq ASC`

// ConversionRateRepository implements the rate store on database/sql with SQLite.
type ConversionRateRepository struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a ConversionRateRepository.
type Option func(*ConversionRateRepository)

// WithClock overrides the clock used to stamp recorded_at.
func WithClock(now func() time.Time) Option {
	return func(r *ConversionRateRepository) { r.now = now }
}

// NewConversionRateRepository creates a repository over an opened database.
func NewConversionRateRepository(db *sql.DB, opts ...Option) *ConversionRateRepository {
	r := &ConversionRateRepository{db: db, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

var _ portsrepo.RateRepositoryFacade = (*ConversionRateRepository)(nil)

// AppendRate inserts rate in a single transaction, stamping recorded_at so that it never
// goes below the latest stored value.
func (r *ConversionRateRepository) AppendRate(ctx context.Context, rate domain.RateRecord) (*domain.RateRecord, error) {
	m := mapping.ToModelConversionRate(rate)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	recordedAt := r.now().UTC()
	var last sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT max(recorded_at) FROM conversion_rates`).Scan(&last); err != nil {
		return nil, apperrors.NewPersistenceError("failed to read write clock", err)
	}
	if last.Valid {
		lastAt, err := time.Parse(timeLayout, last.String)
		if err != nil {
			return nil, apperrors.NewPersistenceError("corrupt recorded_at", err)
		}
		if recordedAt.Before(lastAt) {
			recordedAt = lastAt
		}
	}
	m.RecordedAt = recordedAt

	res, err := tx.ExecContext(ctx, `INSERT INTO conversion_rates
		(rate_id, rate, effective_month, recorded_at, recorded_by_id, recorded_by_name)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.RateID, m.Rate.String(), m.EffectiveMonth.UTC().Format(timeLayout),
		m.RecordedAt.Format(timeLayout), m.RecordedByID, m.RecordedByName,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to append conversion rate", err)
	}
	if m.Seq, err = res.LastInsertId(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to read assigned sequence", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to commit conversion rate", err)
	}

	stored := mapping.ToDomainRateRecord(m)
	return &stored, nil
}

// FindLatestRate returns the rate in effect or apperrors.ErrNotFound.
func (r *ConversionRateRepository) FindLatestRate(ctx context.Context) (*domain.RateRecord, error) {
	row := r.db.QueryRowContext(ctx, selectRateColumns+orderEffectiveDesc+` LIMIT 1`)
	m, err := scanConversionRate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no conversion rate recorded")
		}
		return nil, apperrors.NewPersistenceError("failed to find latest conversion rate", err)
	}
	rec := mapping.ToDomainRateRecord(m)
	return &rec, nil
}

// FindRatesByEffectiveRange streams records with start <= effective_month < end, best first.
func (r *ConversionRateRepository) FindRatesByEffectiveRange(ctx context.Context, start, end time.Time) iter.Seq2[domain.RateRecord, error] {
	return r.streamRates(ctx,
		selectRateColumns+` WHERE effective_month >= ? AND effective_month < ?`+orderEffectiveDesc,
		start.UTC().Format(timeLayout), end.UTC().Format(timeLayout))
}

// ListRates streams the whole ledger in the requested order.
func (r *ConversionRateRepository) ListRates(ctx context.Context, order domain.RateOrder) iter.Seq2[domain.RateRecord, error] {
	query := selectRateColumns + orderEffectiveDesc
	if order == domain.OrderWriteAsc {
		query = selectRateColumns + orderWriteAsc
	}
	return r.streamRates(ctx, query)
}

// CountRates returns the ledger size.
func (r *ConversionRateRepository) CountRates(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversion_rates`).Scan(&n); err != nil {
		return 0, apperrors.NewPersistenceError("failed to count conversion rates", err)
	}
	return n, nil
}

// Ping verifies the database is reachable.
func (r *ConversionRateRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return apperrors.NewPersistenceError("database unreachable", err)
	}
	return nil
}

func (r *ConversionRateRepository) streamRates(ctx context.Context, query string, args ...any) iter.Seq2[domain.RateRecord, error] {
	return func(yield func(domain.RateRecord, error) bool) {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(domain.RateRecord{}, apperrors.NewPersistenceError("failed to list conversion rates", err))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			m, err := scanConversionRate(rows)
			if err != nil {
				yield(domain.RateRecord{}, apperrors.NewPersistenceError("failed to scan conversion rate", err))
				return
			}
			if !yield(mapping.ToDomainRateRecord(m), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.RateRecord{}, apperrors.NewPersistenceError("error iterating conversion rates", err))
		}
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversionRate(row scanner) (models.ConversionRate, error) {
	var m models.ConversionRate
	var effective, recorded string
	if err := row.Scan(&m.Seq, &m.RateID, &m.Rate, &effective, &recorded, &m.RecordedByID, &m.RecordedByName); err != nil {
		return m, err
	}
	var err error
	if m.EffectiveMonth, err = time.Parse(timeLayout, effective); err != nil {
		return m, err
	}
	if m.RecordedAt, err = time.Parse(timeLayout, recorded); err != nil {
		return m, err
	}
	return m, nil
}
