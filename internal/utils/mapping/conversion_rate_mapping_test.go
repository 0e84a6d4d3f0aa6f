package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/SscSPs/rate_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainRateRecord_NormalisesToUTC(t *testing.T) {
	dhaka := time.FixedZone("BDT", 6*3600)
	m := models.ConversionRate{
		RateID:         "r1",
		Seq:            7,
		Rate:           decimal.RequireFromString("121.75"),
		EffectiveMonth: time.Date(2025, 6, 1, 0, 0, 0, 0, dhaka),
		RecordedAt:     time.Date(2025, 6, 1, 5, 0, 0, 0, dhaka),
		RecordedByID:   "u1",
		RecordedByName: "Ana",
	}

	d := ToDomainRateRecord(m)

	assert.Equal(t, time.UTC, d.EffectiveMonth.Location())
	assert.Equal(t, 31, d.EffectiveMonth.Day())
	assert.Equal(t, domain.Actor{ID: "u1", Name: "Ana"}, d.RecordedBy)
	assert.Equal(t, int64(7), d.Sequence)
	assert.Equal(t, m.RecordedByName, ToModelConversionRate(d).RecordedByName)
}
