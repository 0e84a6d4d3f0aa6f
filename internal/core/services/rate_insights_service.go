package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/rate_ledger/internal/core/analytics"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/rate_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// RateInsightsService feeds ledger reads into the analytics engine.
type RateInsightsService struct {
	BaseService
	ledger        portssvc.RateLedgerReaderSvc
	defaultWindow int
}

// InsightsOption configures a RateInsightsService.
type InsightsOption func(*RateInsightsService)

// WithDefaultTrendWindow sets the window used when callers do not ask for one.
func WithDefaultTrendWindow(window int) InsightsOption {
	return func(s *RateInsightsService) {
		if window > 0 {
			s.defaultWindow = window
		}
	}
}

// NewRateInsightsService creates a new RateInsightsService.
func NewRateInsightsService(ledger portssvc.RateLedgerReaderSvc, opts ...InsightsOption) *RateInsightsService {
	s := &RateInsightsService{ledger: ledger, defaultWindow: analytics.DefaultTrendWindow}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ portssvc.RateInsightsSvc = (*RateInsightsService)(nil)

// GetDailyStats computes daily extrema over the history (latest effective month first).
func (s *RateInsightsService) GetDailyStats(ctx context.Context) (domain.DailyStats, error) {
	var err error
	stats := analytics.DailyExtremaStats(analytics.UntilError(s.ledger.ListHistory(ctx), &err))
	if err != nil {
		s.LogError(ctx, err, "Failed to read history for daily stats")
		return domain.DailyStats{}, fmt.Errorf("failed to compute daily stats: %w", err)
	}
	return stats, nil
}

// GetRecentTrend computes the step-change trend over the last window writes.
func (s *RateInsightsService) GetRecentTrend(ctx context.Context, window int) ([]domain.TrendPoint, error) {
	if window <= 0 {
		window = s.defaultWindow
	}
	var err error
	points := analytics.RecentTrend(analytics.UntilError(s.ledger.ListWriteOrdered(ctx), &err), window)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger for trend", slog.Int("window", window))
		return nil, fmt.Errorf("failed to compute recent trend: %w", err)
	}
	return points, nil
}

// GetDashboard resolves the current rate, the daily stats and the trend concurrently.
func (s *RateInsightsService) GetDashboard(ctx context.Context, window int) (*domain.RateDashboard, error) {
	dashboard := &domain.RateDashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		current, err := s.ledger.GetCurrentRate(gctx)
		dashboard.Current = current
		return err
	})
	g.Go(func() error {
		stats, err := s.GetDailyStats(gctx)
		dashboard.Stats = stats
		return err
	})
	g.Go(func() error {
		trend, err := s.GetRecentTrend(gctx, window)
		dashboard.Trend = trend
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
