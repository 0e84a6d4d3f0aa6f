package domain

import (
	"github.com/shopspring/decimal"
)

// DailyStats summarises the ledger over one representative (maximum) rate per day.
type DailyStats struct {
	Highest     decimal.Decimal `json:"highest" swaggertype:"string"`
	Lowest      decimal.Decimal `json:"lowest" swaggertype:"string"`
	Average     decimal.Decimal `json:"average" swaggertype:"string"` // Rounded to 3 decimal places
	HighestDate string          `json:"highestDate"`                  // YYYY-MM-DD, empty for an empty ledger
	LowestDate  string          `json:"lowestDate"`                   // YYYY-MM-DD, empty for an empty ledger
	Days        int             `json:"days"`                         // Number of daily representatives
}

// TrendPoint is one step of the recent-trend chart.
type TrendPoint struct {
	Date string          `json:"date"` // YYYY-MM-DD of RecordedAt
	Rate decimal.Decimal `json:"rate" swaggertype:"string"`
}

// RateDashboard bundles everything the conversion page renders.
type RateDashboard struct {
	Current *RateRecord  `json:"current"`
	Stats   DailyStats   `json:"stats"`
	Trend   []TrendPoint `json:"trend"`
}
