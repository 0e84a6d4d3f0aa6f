package analytics_test

import (
	"errors"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/analytics"
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func rec(day int, rate string) domain.RateRecord {
	return domain.RateRecord{
		Rate:           decimal.RequireFromString(rate),
		EffectiveMonth: base.AddDate(0, 0, day-1),
		RecordedAt:     base.AddDate(0, 0, day-1),
	}
}

// written builds records in write order with one write per hour.
func written(rates ...string) []domain.RateRecord {
	out := make([]domain.RateRecord, len(rates))
	for i, r := range rates {
		out[i] = domain.RateRecord{
			Sequence:       int64(i + 1),
			Rate:           decimal.RequireFromString(r),
			EffectiveMonth: base,
			RecordedAt:     base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func rates(points []domain.TrendPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Rate.String()
	}
	return out
}

func TestDailyExtremaStats_Empty(t *testing.T) {
	stats := analytics.DailyExtremaStats(slices.Values([]domain.RateRecord{}))

	assert.True(t, stats.Highest.IsZero())
	assert.True(t, stats.Lowest.IsZero())
	assert.True(t, stats.Average.IsZero())
	assert.Empty(t, stats.HighestDate)
	assert.Empty(t, stats.LowestDate)
	assert.Zero(t, stats.Days)
}

func TestDailyExtremaStats_CollapsesIntraDay(t *testing.T) {
	records := []domain.RateRecord{rec(1, "1.0"), rec(1, "1.2"), rec(2, "0.9")}

	stats := analytics.DailyExtremaStats(slices.Values(records))

	assert.True(t, stats.Highest.Equal(decimal.RequireFromString("1.2")), "highest: %s", stats.Highest)
	assert.Equal(t, "2025-05-01", stats.HighestDate)
	assert.True(t, stats.Lowest.Equal(decimal.RequireFromString("0.9")), "lowest: %s", stats.Lowest)
	assert.Equal(t, "2025-05-02", stats.LowestDate)
	assert.True(t, stats.Average.Equal(decimal.RequireFromString("1.05")), "average: %s", stats.Average)
	assert.Equal(t, 2, stats.Days)
}

func TestDailyExtremaStats_FirstDayWinsTies(t *testing.T) {
	// days are visited in first-appearance order: 3, 1, 2
	records := []domain.RateRecord{rec(3, "110"), rec(1, "100"), rec(2, "110"), rec(1, "90"), rec(4, "100")}

	stats := analytics.DailyExtremaStats(slices.Values(records))

	assert.Equal(t, "2025-05-03", stats.HighestDate)
	assert.Equal(t, "2025-05-01", stats.LowestDate)
	assert.True(t, stats.Lowest.Equal(decimal.NewFromInt(100)))
}

func TestDailyExtremaStats_AverageRounding(t *testing.T) {
	records := []domain.RateRecord{rec(1, "1"), rec(2, "1"), rec(3, "2")}

	stats := analytics.DailyExtremaStats(slices.Values(records))

	assert.Equal(t, "1.333", stats.Average.String())
}

func TestDailyExtremaStats_BucketsByUTCDay(t *testing.T) {
	late := time.Date(2025, 5, 1, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)) // 2025-05-02 04:30 UTC
	records := []domain.RateRecord{
		{Rate: decimal.NewFromInt(5), EffectiveMonth: late},
		{Rate: decimal.NewFromInt(7), EffectiveMonth: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)},
	}

	stats := analytics.DailyExtremaStats(slices.Values(records))

	assert.Equal(t, 1, stats.Days)
	assert.Equal(t, "2025-05-02", stats.HighestDate)
	assert.True(t, stats.Average.Equal(decimal.NewFromInt(7)))
}

func TestRecentTrend_CollapsesConsecutiveDuplicates(t *testing.T) {
	points := analytics.RecentTrend(slices.Values(written("1.0", "1.0", "1.1", "1.1", "1.0")), 5)

	assert.Equal(t, []string{"1", "1.1", "1"}, rates(points))
	assert.Equal(t, "2025-05-01", points[0].Date)
}

func TestRecentTrend_OnlyConsidersWindowTail(t *testing.T) {
	all := make([]string, 100)
	for i := range all {
		all[i] = decimal.NewFromInt(int64(i)).String()
	}
	records := written(all...)
	// effective months run backwards so that any sorting by them would be visible
	for i := range records {
		records[i].EffectiveMonth = base.AddDate(0, -i, 0)
	}

	points := analytics.RecentTrend(slices.Values(records), analytics.DefaultTrendWindow)

	require.Len(t, points, 25)
	assert.Equal(t, "75", points[0].Rate.String())
	assert.Equal(t, "99", points[24].Rate.String())
}

func TestRecentTrend_DefaultsAndShortInput(t *testing.T) {
	assert.Empty(t, analytics.RecentTrend(slices.Values([]domain.RateRecord{}), 0))

	points := analytics.RecentTrend(slices.Values(written("2", "3")), 0)
	assert.Equal(t, []string{"2", "3"}, rates(points))

	// window smaller than the input, collapse applies inside the window only
	points = analytics.RecentTrend(slices.Values(written("1", "2", "2", "2")), 2)
	assert.Equal(t, []string{"2"}, rates(points))
}

func TestUntilError(t *testing.T) {
	boom := errors.New("store unavailable")
	seq := iter.Seq2[domain.RateRecord, error](func(yield func(domain.RateRecord, error) bool) {
		if !yield(rec(1, "1"), nil) {
			return
		}
		if !yield(domain.RateRecord{}, boom) {
			return
		}
		yield(rec(2, "2"), nil)
	})

	var err error
	got := slices.Collect(analytics.UntilError(seq, &err))

	assert.Len(t, got, 1)
	assert.ErrorIs(t, err, boom)
}
