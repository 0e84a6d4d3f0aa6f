// Package analytics derives chart and summary statistics from an already
// resolved slice of the rate ledger. Nothing here performs I/O; every function
// depends only on the sequence it is given and is safe for concurrent use.
package analytics

import (
	"iter"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DayLayout is the calendar-day key used for buckets and chart points.
const DayLayout = "2006-01-02"

// DefaultTrendWindow is the number of most recent writes the trend chart considers.
const DefaultTrendWindow = 25

// AveragePrecision is the number of decimal places the daily average is rounded to.
const AveragePrecision = 3

type dailyRepresentative struct {
	day  string
	rate decimal.Decimal
}

// DailyExtremaStats buckets records by the UTC calendar day of their effective month,
// keeps only the highest rate of each day and computes highest, lowest and average
// over those daily representatives.
//
// Days are visited in the order they first appear in records. When several days share
// the extreme value the first one visited is reported. An empty input yields the zero
// state with empty dates.
func DailyExtremaStats(records iter.Seq[domain.RateRecord]) domain.DailyStats {
	var days []dailyRepresentative
	index := make(map[string]int)

	for r := range records {
		day := r.EffectiveMonth.UTC().Format(DayLayout)
		i, seen := index[day]
		if !seen {
			index[day] = len(days)
			days = append(days, dailyRepresentative{day: day, rate: r.Rate})
			continue
		}
		if r.Rate.GreaterThan(days[i].rate) {
			days[i].rate = r.Rate
		}
	}

	if len(days) == 0 {
		return domain.DailyStats{
			Highest: decimal.Zero,
			Lowest:  decimal.Zero,
			Average: decimal.Zero,
		}
	}

	stats := domain.DailyStats{
		Highest:     days[0].rate,
		Lowest:      days[0].rate,
		HighestDate: days[0].day,
		LowestDate:  days[0].day,
		Days:        len(days),
	}
	sum := decimal.Zero
	for _, d := range days {
		// strict comparisons keep the first day that reached the extreme
		if d.rate.GreaterThan(stats.Highest) {
			stats.Highest = d.rate
			stats.HighestDate = d.day
		}
		if d.rate.LessThan(stats.Lowest) {
			stats.Lowest = d.rate
			stats.LowestDate = d.day
		}
		sum = sum.Add(d.rate)
	}
	stats.Average = sum.Div(decimal.NewFromInt(int64(len(days)))).Round(AveragePrecision)
	return stats
}

// RecentTrend takes the last window records of the sequence, in the order they are
// yielded, and emits a point only when the rate differs from the previously emitted
// point. A value that returns after a change is emitted again.
// A non-positive window falls back to DefaultTrendWindow.
func RecentTrend(records iter.Seq[domain.RateRecord], window int) []domain.TrendPoint {
	if window <= 0 {
		window = DefaultTrendWindow
	}

	// ring buffer holding the tail of the sequence
	tail := make([]domain.RateRecord, 0, window)
	next := 0
	for r := range records {
		if len(tail) < window {
			tail = append(tail, r)
			continue
		}
		tail[next] = r
		next = (next + 1) % window
	}

	points := make([]domain.TrendPoint, 0, len(tail))
	for i := range tail {
		r := tail[(next+i)%len(tail)]
		if n := len(points); n > 0 && points[n-1].Rate.Equal(r.Rate) {
			continue
		}
		points = append(points, domain.TrendPoint{
			Date: r.RecordedAt.UTC().Format(DayLayout),
			Rate: r.Rate,
		})
	}
	return points
}

// UntilError adapts a fallible record stream into a plain one. Iteration stops at the
// first error, which is stored in errp so the caller can inspect it once the consumer
// has finished.
func UntilError(seq iter.Seq2[domain.RateRecord, error], errp *error) iter.Seq[domain.RateRecord] {
	return func(yield func(domain.RateRecord) bool) {
		for r, err := range seq {
			if err != nil {
				*errp = err
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}
