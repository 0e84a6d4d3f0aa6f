package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRate is the persisted row of the conversion_rates table.
type ConversionRate struct {
	RateID         string          `json:"rateID"` // Primary Key (UUID)
	Seq            int64           `json:"seq"`    // Identity column, write order
	Rate           decimal.Decimal `json:"rate"`
	EffectiveMonth time.Time       `json:"effectiveMonth"`
	RecordedAt     time.Time       `json:"recordedAt"`
	RecordedByID   string          `json:"recordedByID"`
	RecordedByName string          `json:"recordedByName"`
}
