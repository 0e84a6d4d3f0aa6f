package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rate_ledger/internal/core/ports/services"
	"github.com/SscSPs/rate_ledger/internal/dto"
	"github.com/google/uuid"
)

// effectiveMonthLayouts are the accepted spellings of an effective month, most precise first.
var effectiveMonthLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// ConversionRateService owns write admission and read resolution for the rate ledger.
type ConversionRateService struct {
	BaseService
	rateRepo portsrepo.RateRepositoryFacade
}

// NewConversionRateService creates a new ConversionRateService.
func NewConversionRateService(rateRepo portsrepo.RateRepositoryFacade) *ConversionRateService {
	return &ConversionRateService{rateRepo: rateRepo}
}

var _ portssvc.RateLedgerSvcFacade = (*ConversionRateService)(nil)

// RecordRate validates the request and appends one new record. Validation happens before
// the store is touched; store failures are returned unchanged and never retried.
func (s *ConversionRateService) RecordRate(ctx context.Context, req dto.RecordRateRequest, actor domain.Actor) (*domain.RateRecord, error) {
	if req.Rate == nil || !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("rate must be a positive number")
	}
	effectiveMonth, err := ParseEffectiveMonth(req.EffectiveMonth)
	if err != nil {
		return nil, err
	}
	if actor.ID == "" {
		return nil, apperrors.NewValidationError("an identified actor is required to record a rate")
	}

	record := domain.RateRecord{
		RateID:         uuid.NewString(),
		Rate:           *req.Rate,
		EffectiveMonth: effectiveMonth,
		RecordedBy:     actor,
	}

	stored, err := s.rateRepo.AppendRate(ctx, record)
	if err != nil {
		s.LogError(ctx, err, "Failed to append conversion rate", slog.String("rate_id", record.RateID))
		return nil, fmt.Errorf("failed to record conversion rate: %w", err)
	}

	s.LogInfo(ctx, "Conversion rate recorded",
		slog.String("rate_id", stored.RateID),
		slog.String("rate", stored.Rate.String()),
		slog.Time("effective_month", stored.EffectiveMonth),
		slog.String("recorded_by", actor.ID))
	return stored, nil
}

// GetCurrentRate returns the record with the latest effective month (latest write on ties),
// or nil when the ledger is empty.
func (s *ConversionRateService) GetCurrentRate(ctx context.Context) (*domain.RateRecord, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current conversion rate: %w", err)
	}
	return rate, nil
}

// GetRateForPeriod returns the rate in effect within the calendar month, or nil when no
// record falls in it.
func (s *ConversionRateService) GetRateForPeriod(ctx context.Context, year, month int) (*domain.RateRecord, error) {
	if year <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("year must be positive, got %d", year))
	}
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}

	start, end := domain.MonthBounds(year, month)
	var best *domain.RateRecord
	// pick the winner here rather than trusting the adapter's ordering
	for rec, err := range s.rateRepo.FindRatesByEffectiveRange(ctx, start, end) {
		if err != nil {
			return nil, fmt.Errorf("failed to get conversion rate for %04d-%02d: %w", year, month, err)
		}
		if best == nil || domain.SupersedesRate(rec, *best) {
			best = &rec
		}
	}
	if best == nil {
		s.LogDebug(ctx, "No conversion rate recorded for period", slog.Int("year", year), slog.Int("month", month))
	}
	return best, nil
}

// ListHistory streams the ledger by effective month, latest first.
func (s *ConversionRateService) ListHistory(ctx context.Context) iter.Seq2[domain.RateRecord, error] {
	return s.rateRepo.ListRates(ctx, domain.OrderEffectiveDesc)
}

// ListWriteOrdered streams the ledger in the order it was written.
func (s *ConversionRateService) ListWriteOrdered(ctx context.Context) iter.Seq2[domain.RateRecord, error] {
	return s.rateRepo.ListRates(ctx, domain.OrderWriteAsc)
}

// ParseEffectiveMonth parses a date in one of the accepted layouts and normalises it to UTC.
// The day and time of day are kept.
func ParseEffectiveMonth(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperrors.NewValidationError("effectiveMonth is required")
	}
	for _, layout := range effectiveMonthLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("effectiveMonth %q is not a valid date", value))
}

// ParseYearMonth splits a YYYYMM selector into year and month.
func ParseYearMonth(value string) (int, int, error) {
	if len(value) != 6 {
		return 0, 0, apperrors.NewValidationError("yearmonth must have the form YYYYMM")
	}
	year, errYear := strconv.Atoi(value[:4])
	month, errMonth := strconv.Atoi(value[4:])
	if errYear != nil || errMonth != nil {
		return 0, 0, apperrors.NewValidationError("yearmonth must have the form YYYYMM")
	}
	if year <= 0 || month < 1 || month > 12 {
		return 0, 0, apperrors.NewValidationError(fmt.Sprintf("yearmonth %q is out of range", value))
	}
	return year, month, nil
}
