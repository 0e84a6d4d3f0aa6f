package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateRecord is one immutable observation of the conversion rate for an effective period.
// Corrections are recorded as new records; nothing is ever updated in place.
type RateRecord struct {
	RateID         string          `json:"rateID"`         // Primary Key (UUID)
	Sequence       int64           `json:"sequence"`       // Write position, assigned by the store
	Rate           decimal.Decimal `json:"rate"`           // Always positive
	EffectiveMonth time.Time       `json:"effectiveMonth"` // Full date precision, queried by month
	RecordedAt     time.Time       `json:"recordedAt"`     // Assigned by the store
	RecordedBy     Actor           `json:"recordedBy"`
}

// RateOrder selects the ordering of a full ledger scan.
type RateOrder int

const (
	// OrderEffectiveDesc is history order: latest effective month first,
	// ties broken by latest write.
	OrderEffectiveDesc RateOrder = iota
	// OrderWriteAsc is insertion order: RecordedAt then Sequence ascending.
	OrderWriteAsc
)

func (o RateOrder) String() string {
	switch o {
	case OrderEffectiveDesc:
		return "effective_desc"
	case OrderWriteAsc:
		return "write_asc"
	default:
		return "unknown"
	}
}

// SupersedesRate reports whether a should be preferred over b as the rate in effect:
// greater effective month, then greater RecordedAt, then greater Sequence.
func SupersedesRate(a, b RateRecord) bool {
	if !a.EffectiveMonth.Equal(b.EffectiveMonth) {
		return a.EffectiveMonth.After(b.EffectiveMonth)
	}
	if !a.RecordedAt.Equal(b.RecordedAt) {
		return a.RecordedAt.After(b.RecordedAt)
	}
	return a.Sequence > b.Sequence
}

// WrittenBefore reports whether a precedes b in write order.
func WrittenBefore(a, b RateRecord) bool {
	if !a.RecordedAt.Equal(b.RecordedAt) {
		return a.RecordedAt.Before(b.RecordedAt)
	}
	return a.Sequence < b.Sequence
}

// MonthBounds returns the half-open UTC window [start, end) covering the given calendar month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
