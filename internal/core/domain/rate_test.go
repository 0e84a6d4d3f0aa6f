package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSupersedesRate(t *testing.T) {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	tests := []struct {
		name string
		a, b domain.RateRecord
		want bool
	}{
		{
			name: "later effective month wins even if written earlier",
			a:    domain.RateRecord{EffectiveMonth: feb, RecordedAt: t0, Sequence: 1},
			b:    domain.RateRecord{EffectiveMonth: jan, RecordedAt: t1, Sequence: 2},
			want: true,
		},
		{
			name: "same effective month, later write wins",
			a:    domain.RateRecord{EffectiveMonth: jan, RecordedAt: t1, Sequence: 2},
			b:    domain.RateRecord{EffectiveMonth: jan, RecordedAt: t0, Sequence: 1},
			want: true,
		},
		{
			name: "same effective month and timestamp, higher sequence wins",
			a:    domain.RateRecord{EffectiveMonth: jan, RecordedAt: t0, Sequence: 1},
			b:    domain.RateRecord{EffectiveMonth: jan, RecordedAt: t0, Sequence: 2},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SupersedesRate(tt.a, tt.b))
		})
	}
}

func TestWrittenBefore(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := domain.RateRecord{RecordedAt: t0, Sequence: 1, Rate: decimal.NewFromInt(1)}
	b := domain.RateRecord{RecordedAt: t0, Sequence: 2, Rate: decimal.NewFromInt(1)}

	assert.True(t, domain.WrittenBefore(a, b))
	assert.False(t, domain.WrittenBefore(b, a))
}

func TestMonthBounds(t *testing.T) {
	start, end := domain.MonthBounds(2024, 2)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = domain.MonthBounds(2024, 12)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestRoleWritePolicy(t *testing.T) {
	policy := domain.RoleWritePolicy("admin", "finance")

	assert.True(t, policy(domain.Actor{ID: "u1", Name: "Ana", Role: "finance"}))
	assert.False(t, policy(domain.Actor{ID: "u2", Name: "Bo", Role: "viewer"}))
	assert.False(t, policy(domain.Actor{Role: "admin"}), "anonymous actor must never write")

	open := domain.RoleWritePolicy()
	assert.True(t, open(domain.Actor{ID: "u3", Name: "Cy"}))
	assert.False(t, open(domain.Actor{}))
}
