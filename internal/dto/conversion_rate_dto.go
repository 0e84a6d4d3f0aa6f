package dto

import (
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordRateRequest defines the structure for recording a new conversion rate.
type RecordRateRequest struct {
	Rate           *decimal.Decimal `json:"rate" binding:"required" swaggertype:"string"`
	EffectiveMonth string           `json:"effectiveMonth" binding:"required"` // YYYY-MM-DD, YYYY-MM or RFC3339
}

// ListConversionRatesParams holds the query parameters of the conversion rate listing.
type ListConversionRatesParams struct {
	Current   bool   `form:"current"`
	YearMonth string `form:"yearmonth" binding:"omitempty,yearmonth"` // YYYYMM
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	PageToken string `form:"pageToken"`
}

// TrendParams holds the query parameters of the trend endpoint.
type TrendParams struct {
	Window int `form:"window" binding:"omitempty,min=1,max=500"`
}

// RecordedByResponse identifies who recorded a rate.
type RecordedByResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConversionRateResponse defines the structure for API responses containing a rate record.
type ConversionRateResponse struct {
	ID             string             `json:"id"`
	Rate           decimal.Decimal    `json:"rate" swaggertype:"string"`
	EffectiveMonth time.Time          `json:"effectiveMonth"`
	RecordedAt     time.Time          `json:"recordedAt"`
	RecordedBy     RecordedByResponse `json:"recordedBy"`
}

// DashboardResponse is everything the conversion page needs in one payload.
type DashboardResponse struct {
	Current *ConversionRateResponse `json:"current"`
	Stats   domain.DailyStats       `json:"stats"`
	Trend   []domain.TrendPoint     `json:"trend"`
}

// ToConversionRateResponse converts a domain.RateRecord to ConversionRateResponse DTO.
// A nil record maps to nil so that absence serialises as JSON null.
func ToConversionRateResponse(rate *domain.RateRecord) *ConversionRateResponse {
	if rate == nil {
		return nil
	}
	return &ConversionRateResponse{
		ID:             rate.RateID,
		Rate:           rate.Rate,
		EffectiveMonth: rate.EffectiveMonth,
		RecordedAt:     rate.RecordedAt,
		RecordedBy: RecordedByResponse{
			ID:   rate.RecordedBy.ID,
			Name: rate.RecordedBy.Name,
		},
	}
}

// ToDashboardResponse converts a domain.RateDashboard to its DTO.
func ToDashboardResponse(d *domain.RateDashboard) DashboardResponse {
	trend := d.Trend
	if trend == nil {
		trend = []domain.TrendPoint{}
	}
	return DashboardResponse{
		Current: ToConversionRateResponse(d.Current),
		Stats:   d.Stats,
		Trend:   trend,
	}
}
