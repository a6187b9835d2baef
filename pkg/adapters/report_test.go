package adapters

import (
	"fmt"
	"testing"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapTrendAnalysisToReport(t *testing.T) {
	a := domain.TrendAnalysis{
		Query: domain.IndicatorQuery{
			Name:        "Kaza oranı",
			Category:    "safety",
			Range:       domain.MonthRange{Start: domain.YearMonth{Year: 2023, Month: 1}, End: domain.YearMonth{Year: 2024, Month: 12}},
			Granularity: domain.GranularityYearly,
		},
		Buckets: []domain.PeriodBucket{
			{Period: "2023", AverageTarget: 2, AverageActual: 3, ItemCount: 12, Unit: "%"},
			{Period: "2024", AverageTarget: 2, AverageActual: 2, ItemCount: 12, Unit: "%"},
		},
		Trend: domain.TrendSummary{OverallTrend: domain.TrendDeclining, PercentageChange: -33.333, AverageChange: -1, MinValue: 2, MaxValue: 3},
	}

	r := MapTrendAnalysisToReport(a)

	assert.Equal(t, "Indicator trend: Kaza oranı (safety)", r.Title)
	assert.Equal(t, 24, r.Period.Months)
	require.Len(t, r.Sections, 2)
	assert.Equal(t, "declining", r.Sections[0].Summary["overall_trend"])
	assert.Equal(t, "-33.33", r.Sections[0].Details[0].Value)
	require.Len(t, r.Sections[1].Details, 2)
	assert.Equal(t, "2023", r.Sections[1].Details[0].Name)
	assert.Equal(t, "3.00", r.Sections[1].Details[0].Value)
}

func TestMapBatchResultToReport(t *testing.T) {
	r := MapBatchResultToReport(domain.BatchResult{
		Results: []domain.Indicator{{ID: "A", Name: "n", Category: "c", Year: 2024, Month: 2, Target: 10, Actual: 5, Status: domain.StatusOffTrack}},
		Errors:  []domain.UpdateFailure{{ID: "missing", Err: fmt.Errorf("indicator missing: %w", domain.ErrNotFound)}},
	})

	require.Len(t, r.Sections, 2)
	assert.Equal(t, "Updated", r.Sections[0].Title)
	assert.Equal(t, "c / n 2024-02", r.Sections[0].Details[0].Name)
	assert.Equal(t, "Failed", r.Sections[1].Title)
	assert.Equal(t, "not_found", r.Sections[1].Details[0].Value)
}

func TestErrorReason(t *testing.T) {
	assert.Equal(t, "invalid_input", ErrorReason(fmt.Errorf("x: %w", domain.ErrInvalidInput)))
	assert.Equal(t, "not_found", ErrorReason(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, "invalid_target", ErrorReason(fmt.Errorf("%w: %w", domain.ErrInvalidTarget, domain.ErrDivisionByZero)))
	assert.Equal(t, "internal", ErrorReason(fmt.Errorf("disk full")))
}
