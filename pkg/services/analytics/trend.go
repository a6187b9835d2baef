package analytics

import (
	"fmt"
	"math"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const trendThreshold = 5.0

// PercentageChange returns (last - first) / first * 100.
func PercentageChange(first, last float64) (float64, error) {
	if first == 0 {
		return 0, fmt.Errorf("percentage change from %v: %w", first, domain.ErrDivisionByZero)
	}
	return (last - first) / first * 100, nil
}

func classify(pct float64) domain.TrendDirection {
	switch {
	case pct > trendThreshold:
		return domain.TrendImproving
	case pct < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// AnalyzeTrend summarises the average actual values of chronologically ordered buckets.
// A trend direction needs at least two buckets and a non-zero first value;
// otherwise it stays no_data.
func AnalyzeTrend(buckets []domain.PeriodBucket) domain.TrendSummary {
	summary := domain.TrendSummary{
		OverallTrend: domain.TrendNoData,
		DataPoints:   make([]domain.TrendPoint, 0, len(buckets)),
	}
	if len(buckets) == 0 {
		return summary
	}

	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.AverageActual
		p := domain.TrendPoint{Period: b.Period, Value: b.AverageActual}
		if i > 0 {
			p.Change = b.AverageActual - buckets[i-1].AverageActual
		}
		summary.DataPoints = append(summary.DataPoints, p)
	}
	summary.MinValue = floats.Min(values)
	summary.MaxValue = floats.Max(values)

	if len(values) < 2 {
		return summary
	}

	deltas := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		deltas[i-1] = values[i] - values[i-1]
	}
	summary.AverageChange = stat.Mean(deltas, nil)

	pct, err := PercentageChange(values[0], values[len(values)-1])
	if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return summary
	}
	summary.PercentageChange = pct
	summary.OverallTrend = classify(pct)
	return summary
}
