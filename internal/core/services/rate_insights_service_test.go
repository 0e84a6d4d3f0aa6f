package services_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/SscSPs/rate_ledger/internal/apperrors"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/SscSPs/rate_ledger/internal/core/services"
	"github.com/SscSPs/rate_ledger/internal/dto"
	"github.com/SscSPs/rate_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ana = domain.Actor{ID: "user-1", Name: "Ana"}

func newLedger(t *testing.T) (*services.ConversionRateService, *memory.RateRepository) {
	t.Helper()
	repo := memory.NewRateRepository()
	return services.NewConversionRateService(repo), repo
}

func record(t *testing.T, svc *services.ConversionRateService, rate, effective string) *domain.RateRecord {
	t.Helper()
	rec, err := svc.RecordRate(context.Background(), dto.RecordRateRequest{Rate: decimalPtr(rate), EffectiveMonth: effective}, ana)
	require.NoError(t, err)
	return rec
}

func history(t *testing.T, svc *services.ConversionRateService) []domain.RateRecord {
	t.Helper()
	var out []domain.RateRecord
	for rec, err := range svc.ListHistory(context.Background()) {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestLedger_HistoryHoldsEveryWriteInEffectiveOrder(t *testing.T) {
	svc, _ := newLedger(t)
	written := map[string]domain.RateRecord{}
	for _, eff := range []string{"2025-03-10", "2024-11-01", "2025-01-20", "2025-03-10", "2023-07-04"} {
		rec := record(t, svc, "110.5", eff)
		written[rec.RateID] = *rec
	}

	got := history(t, svc)

	require.Len(t, got, len(written))
	for i, rec := range got {
		assert.Equal(t, written[rec.RateID], rec, "record must come back unmodified")
		if i > 0 {
			assert.False(t, rec.EffectiveMonth.After(got[i-1].EffectiveMonth), "history must be descending")
		}
	}
	assert.Equal(t, got, history(t, svc), "listing twice without writes is idempotent")
}

func TestLedger_CurrentRateLifecycle(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()

	current, err := svc.GetCurrentRate(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	first := record(t, svc, "100", "2025-05-01")
	current, err = svc.GetCurrentRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, current)

	// a backfill does not displace the current rate
	record(t, svc, "90", "2025-01-01")
	// a correction for the same effective month does
	correction := record(t, svc, "101", "2025-05-01")
	current, err = svc.GetCurrentRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, correction.RateID, current.RateID)

	period, err := svc.GetRateForPeriod(ctx, 2025, 5)
	require.NoError(t, err)
	assert.Equal(t, correction.RateID, period.RateID)

	none, err := svc.GetRateForPeriod(ctx, 2025, 4)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLedger_RejectedWritesAppendNothing(t *testing.T) {
	svc, repo := newLedger(t)
	record(t, svc, "1.1", "2025-01-01")

	for _, bad := range []string{"-1", "0"} {
		_, err := svc.RecordRate(context.Background(), dto.RecordRateRequest{Rate: decimalPtr(bad), EffectiveMonth: "2025-01-01"}, ana)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}

	n, err := repo.CountRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInsights_StatsAndTrend(t *testing.T) {
	svc, _ := newLedger(t)
	record(t, svc, "1.0", "2025-05-01T09:00:00Z")
	record(t, svc, "1.2", "2025-05-01T15:00:00Z")
	record(t, svc, "0.9", "2025-05-02T09:00:00Z")

	insights := services.NewRateInsightsService(svc)
	stats, err := insights.GetDailyStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2", stats.Highest.String())
	assert.Equal(t, "2025-05-01", stats.HighestDate)
	assert.Equal(t, "0.9", stats.Lowest.String())
	assert.Equal(t, "2025-05-02", stats.LowestDate)
	assert.Equal(t, "1.05", stats.Average.String())

	trend, err := insights.GetRecentTrend(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, trend, 3)
}

func TestInsights_TrendUsesWriteOrderAndDefaultWindow(t *testing.T) {
	svc, _ := newLedger(t)
	for i := 0; i < 10; i++ {
		// effective months go backwards while writes go forwards
		record(t, svc, fmt.Sprint(i+1), time.Date(2025, 12-time.Month(i), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}

	insights := services.NewRateInsightsService(svc, services.WithDefaultTrendWindow(3))
	trend, err := insights.GetRecentTrend(context.Background(), 0)
	require.NoError(t, err)

	var got []string
	for _, p := range trend {
		got = append(got, p.Rate.String())
	}
	assert.Equal(t, []string{"8", "9", "10"}, got)
}

func TestInsights_Dashboard(t *testing.T) {
	svc, _ := newLedger(t)
	insights := services.NewRateInsightsService(svc)

	empty, err := insights.GetDashboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, empty.Current)
	assert.True(t, empty.Stats.Highest.IsZero())
	assert.Empty(t, empty.Trend)

	latest := record(t, svc, "120", "2025-06-01")
	record(t, svc, "118", "2025-04-01")

	dashboard, err := insights.GetDashboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, latest.RateID, dashboard.Current.RateID)
	assert.Equal(t, 2, dashboard.Stats.Days)
	assert.Len(t, dashboard.Trend, 2)
}

func TestInsights_StoreFailureSurfaces(t *testing.T) {
	repo := new(MockRateRepository)
	storeErr := apperrors.NewPersistenceError("failed to list conversion rates", errors.New("timeout"))
	repo.On("ListRates", context.Background(), domain.OrderEffectiveDesc).
		Return(seqOf(storeErr, domain.RateRecord{Rate: *decimalPtr("1")}))

	insights := services.NewRateInsightsService(services.NewConversionRateService(repo))
	stats, err := insights.GetDailyStats(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Zero(t, stats.Days)
}

func TestInsights_ConcurrentReadersAndWriters(t *testing.T) {
	svc, repo := newLedger(t)
	insights := services.NewRateInsightsService(svc)
	done := make(chan struct{})
	rates := []string{"1", "2", "3", "4", "5", "6", "7", "8"}

	go func() {
		defer close(done)
		for _, r := range rates {
			_, err := svc.RecordRate(context.Background(), dto.RecordRateRequest{Rate: decimalPtr(r), EffectiveMonth: "2025-01-01"}, ana)
			assert.NoError(t, err)
		}
	}()
	for i := 0; i < 20; i++ {
		_, err := insights.GetDashboard(context.Background(), 5)
		assert.NoError(t, err)
	}
	<-done

	n, err := repo.CountRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(rates)), n)
	assert.True(t, slices.IsSortedFunc(history(t, svc), func(a, b domain.RateRecord) int {
		return b.EffectiveMonth.Compare(a.EffectiveMonth)
	}))
}
