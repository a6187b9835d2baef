package analytics

import (
	"fmt"
	"testing"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ind(year, month int, target, actual float64) domain.Indicator {
	return domain.Indicator{
		ID:       fmt.Sprintf("%d-%d-%v", year, month, actual),
		Name:     "Ramak kala bildirimi",
		Category: "safety",
		Unit:     "count",
		Year:     year,
		Month:    month,
		Target:   target,
		Actual:   actual,
	}
}

func TestAggregate_QuarterlyScenario(t *testing.T) {
	records := []domain.Indicator{ind(2024, 1, 10, 9), ind(2024, 2, 10, 11)}

	buckets := Aggregate(records, domain.GranularityQuarterly)

	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-Q1", buckets[0].Period)
	assert.Equal(t, 10.0, buckets[0].AverageTarget)
	assert.Equal(t, 10.0, buckets[0].AverageActual)
	assert.Equal(t, 2, buckets[0].ItemCount)
	assert.Equal(t, "count", buckets[0].Unit)
	assert.False(t, buckets[0].MixedUnits)

	summary := AnalyzeTrend(buckets)
	assert.Equal(t, domain.TrendNoData, summary.OverallTrend)
	assert.Equal(t, 10.0, summary.MinValue)
	assert.Equal(t, 10.0, summary.MaxValue)
	assert.Zero(t, summary.PercentageChange)
	assert.Zero(t, summary.AverageChange)
}

func TestAggregate_PeriodKeys(t *testing.T) {
	records := []domain.Indicator{
		ind(2025, 1, 1, 1),
		ind(2023, 12, 1, 1),
		ind(2024, 7, 1, 1),
		ind(2024, 3, 1, 1),
		ind(2024, 4, 1, 1),
	}

	tests := []struct {
		granularity domain.Granularity
		want        []string
	}{
		{domain.GranularityMonthly, []string{"2023-12", "2024-03", "2024-04", "2024-07", "2025-01"}},
		{domain.GranularityQuarterly, []string{"2023-Q4", "2024-Q1", "2024-Q2", "2024-Q3", "2025-Q1"}},
		{domain.GranularityYearly, []string{"2023", "2024", "2025"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			var got []string
			for _, b := range Aggregate(records, tt.granularity) {
				got = append(got, b.Period)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_ItemCountMatchesInput(t *testing.T) {
	var records []domain.Indicator
	for i := 0; i < 37; i++ {
		records = append(records, ind(2022+i%3, 1+(i*5)%12, 10, float64(i)))
	}

	for _, g := range []domain.Granularity{domain.GranularityMonthly, domain.GranularityQuarterly, domain.GranularityYearly} {
		total := 0
		for _, b := range Aggregate(records, g) {
			total += b.ItemCount
		}
		assert.Equal(t, len(records), total, string(g))
	}
}

func TestAggregate_MonthlyRoundTrip(t *testing.T) {
	records := []domain.Indicator{
		ind(2024, 1, 10, 1.1),
		ind(2024, 1, 10, 2.2),
		ind(2024, 1, 10, 3.3),
		ind(2024, 2, 20, 0.7),
		ind(2024, 11, 5, 4),
		ind(2024, 11, 5, 6),
	}

	counts := map[domain.YearMonth]int{}
	sums := map[domain.YearMonth]float64{}
	for _, r := range records {
		counts[r.Period()]++
		sums[r.Period()] += r.Actual
	}

	buckets := Aggregate(records, domain.GranularityMonthly)
	require.Len(t, buckets, len(counts))
	for _, b := range buckets {
		ym := domain.YearMonth{Year: b.Key.Year, Month: b.Key.Sub}
		assert.Equal(t, counts[ym], b.ItemCount, b.Period)
		assert.InDelta(t, sums[ym]/float64(counts[ym]), b.AverageActual, 1e-9, b.Period)
	}
}

func TestAggregate_Empty(t *testing.T) {
	buckets := Aggregate(nil, domain.GranularityYearly)
	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestAggregate_FlagsMixedShape(t *testing.T) {
	a := ind(2024, 1, 10, 5)
	b := ind(2024, 2, 10, 5)
	b.Unit = "%"
	b.Category = "health"

	buckets := Aggregate([]domain.Indicator{a, b}, domain.GranularityYearly)

	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].MixedUnits)
	assert.True(t, buckets[0].MixedCategories)
	assert.Empty(t, buckets[0].Unit)
	assert.Empty(t, buckets[0].Category)
}
