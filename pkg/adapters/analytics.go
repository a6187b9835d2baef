package adapters

import (
	"github.com/de-tools/isg-atlas/pkg/models/api"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

func MapPeriodBucketDomainToApi(b domain.PeriodBucket) api.PeriodBucket {
	return api.PeriodBucket{
		Period:          b.Period,
		AverageTarget:   b.AverageTarget,
		AverageActual:   b.AverageActual,
		ItemCount:       b.ItemCount,
		Unit:            b.Unit,
		Category:        b.Category,
		MixedUnits:      b.MixedUnits,
		MixedCategories: b.MixedCategories,
	}
}

func MapPeriodBucketsDomainToApi(buckets []domain.PeriodBucket) []api.PeriodBucket {
	res := make([]api.PeriodBucket, 0, len(buckets))
	for _, b := range buckets {
		res = append(res, MapPeriodBucketDomainToApi(b))
	}
	return res
}

func MapTrendSummaryDomainToApi(s domain.TrendSummary) api.TrendSummary {
	res := api.TrendSummary{
		OverallTrend:     string(s.OverallTrend),
		PercentageChange: s.PercentageChange,
		AverageChange:    s.AverageChange,
		MinValue:         s.MinValue,
		MaxValue:         s.MaxValue,
		DataPoints:       make([]api.TrendPoint, 0, len(s.DataPoints)),
	}
	for _, p := range s.DataPoints {
		res.DataPoints = append(res.DataPoints, api.TrendPoint{
			Period: p.Period,
			Value:  p.Value,
			Change: p.Change,
		})
	}
	return res
}

func MapTrendAnalysisDomainToApi(a domain.TrendAnalysis) api.TrendResponse {
	return api.TrendResponse{
		Buckets: MapPeriodBucketsDomainToApi(a.Buckets),
		Trend:   MapTrendSummaryDomainToApi(a.Trend),
	}
}
