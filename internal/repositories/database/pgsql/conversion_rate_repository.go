package pgsql

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/rate_ledger/internal/models"
	"github.com/SscSPs/rate_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// appendLockKey serialises appends so recorded_at never decreases in write order.
const appendLockKey int64 = 0x7261746573 // "rates"

const selectRateColumns = `
	SELECT seq, rate_id, rate, effective_month, recorded_at, recorded_by_id, recorded_by_name
	FROM conversion_rates`

const orderEffectiveDesc = ` ORDER BY effective_month DESC, recorded_at DESC, seq DESC`

const orderWriteAsc = ` ORDER BY recorded_at ASC, seq ASC`

// PgxConversionRateRepository implements the rate store on PostgreSQL using pgxpool.
type PgxConversionRateRepository struct {
	BaseRepository
}

// NewPgxConversionRateRepository creates a new PgxConversionRateRepository.
func NewPgxConversionRateRepository(db *pgxpool.Pool) *PgxConversionRateRepository {
	return &PgxConversionRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.RateRepositoryFacade = (*PgxConversionRateRepository)(nil)

// AppendRate inserts a new record. The database assigns seq and recorded_at, and the
// whole append is one transaction so a failed or abandoned call stores nothing.
func (r *PgxConversionRateRepository) AppendRate(ctx context.Context, rate domain.RateRecord) (*domain.RateRecord, error) {
	modelRate := mapping.ToModelConversionRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, appendLockKey); err != nil {
		return nil, apperrors.NewPersistenceError("failed to lock rate log", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO conversion_rates (
			rate_id, rate, effective_month, recorded_at, recorded_by_id, recorded_by_name
		) VALUES (
			$1, $2, $3,
			GREATEST(clock_timestamp(), COALESCE((SELECT max(recorded_at) FROM conversion_rates), clock_timestamp())),
			$4, $5
		)
		RETURNING seq, recorded_at`,
		modelRate.RateID, modelRate.Rate, modelRate.EffectiveMonth,
		modelRate.RecordedByID, modelRate.RecordedByName,
	).Scan(&modelRate.Seq, &modelRate.RecordedAt)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to append conversion rate", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	stored := mapping.ToDomainRateRecord(modelRate)
	return &stored, nil
}

// FindLatestRate retrieves the rate in effect.
func (r *PgxConversionRateRepository) FindLatestRate(ctx context.Context) (*domain.RateRecord, error) {
	var modelRate models.ConversionRate
	err := scanConversionRate(r.Pool.QueryRow(ctx, selectRateColumns+orderEffectiveDesc+` LIMIT 1`), &modelRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no conversion rate recorded")
		}
		return nil, apperrors.NewPersistenceError("failed to find latest conversion rate", err)
	}

	domainRate := mapping.ToDomainRateRecord(modelRate)
	return &domainRate, nil
}

// FindRatesByEffectiveRange streams records with start <= effective_month < end, best first.
func (r *PgxConversionRateRepository) FindRatesByEffectiveRange(ctx context.Context, start, end time.Time) iter.Seq2[domain.RateRecord, error] {
	return r.streamRates(ctx,
		selectRateColumns+` WHERE effective_month >= $1 AND effective_month < $2`+orderEffectiveDesc,
		start, end)
}

// ListRates streams the whole ledger in the requested order.
func (r *PgxConversionRateRepository) ListRates(ctx context.Context, order domain.RateOrder) iter.Seq2[domain.RateRecord, error] {
	query := selectRateColumns + orderEffectiveDesc
	if order == domain.OrderWriteAsc {
		query = selectRateColumns + orderWriteAsc
	}
	return r.streamRates(ctx, query)
}

// CountRates returns the ledger size.
func (r *PgxConversionRateRepository) CountRates(ctx context.Context) (int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM conversion_rates`).Scan(&total); err != nil {
		return 0, apperrors.NewPersistenceError("failed to count conversion rates", err)
	}
	return total, nil
}

// streamRates runs query and yields rows as they are read; the cursor is closed when the
// consumer stops early.
func (r *PgxConversionRateRepository) streamRates(ctx context.Context, query string, args ...any) iter.Seq2[domain.RateRecord, error] {
	return func(yield func(domain.RateRecord, error) bool) {
		rows, err := r.Pool.Query(ctx, query, args...)
		if err != nil {
			yield(domain.RateRecord{}, apperrors.NewPersistenceError("failed to list conversion rates", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var modelRate models.ConversionRate
			if err := scanConversionRate(rows, &modelRate); err != nil {
				yield(domain.RateRecord{}, apperrors.NewPersistenceError("failed to scan conversion rate", err))
				return
			}
			if !yield(mapping.ToDomainRateRecord(modelRate), nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(domain.RateRecord{}, apperrors.NewPersistenceError("error iterating conversion rates", err))
		}
	}
}

func scanConversionRate(row pgx.Row, m *models.ConversionRate) error {
	return row.Scan(
		&m.Seq, &m.RateID, &m.Rate, &m.EffectiveMonth,
		&m.RecordedAt, &m.RecordedByID, &m.RecordedByName,
	)
}
