package mapping

import (
	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/SscSPs/rate_ledger/internal/models"
)

// ToModelConversionRate converts a domain RateRecord to a model ConversionRate
func ToModelConversionRate(d domain.RateRecord) models.ConversionRate {
	return models.ConversionRate{
		RateID:         d.RateID,
		Seq:            d.Sequence,
		Rate:           d.Rate,
		EffectiveMonth: d.EffectiveMonth,
		RecordedAt:     d.RecordedAt,
		RecordedByID:   d.RecordedBy.ID,
		RecordedByName: d.RecordedBy.Name,
	}
}

// ToDomainRateRecord converts a model ConversionRate to a domain RateRecord.
// Timestamps are normalised to UTC.
func ToDomainRateRecord(m models.ConversionRate) domain.RateRecord {
	return domain.RateRecord{
		RateID:         m.RateID,
		Sequence:       m.Seq,
		Rate:           m.Rate,
		EffectiveMonth: m.EffectiveMonth.UTC(),
		RecordedAt:     m.RecordedAt.UTC(),
		RecordedBy: domain.Actor{
			ID:   m.RecordedByID,
			Name: m.RecordedByName,
		},
	}
}
