package analytics

import (
	"context"
	"fmt"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/metrics"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

type RangeStore interface {
	ListInRange(ctx context.Context, filter store.RangeFilter) ([]store.IndicatorRecord, error)
}

type Service interface {
	CompareIndicators(ctx context.Context, q domain.IndicatorQuery) ([]domain.PeriodBucket, error)
	AnalyzeIndicatorTrend(ctx context.Context, q domain.IndicatorQuery) (domain.TrendAnalysis, error)
}

type service struct {
	store RangeStore
}

func NewService(s RangeStore) (Service, error) {
	if s == nil {
		return nil, fmt.Errorf("range store is nil")
	}
	return &service{store: s}, nil
}

func (s *service) CompareIndicators(ctx context.Context, q domain.IndicatorQuery) ([]domain.PeriodBucket, error) {
	records, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	buckets := Aggregate(records, q.Granularity)
	warnMixed(ctx, buckets)
	return buckets, nil
}

func (s *service) AnalyzeIndicatorTrend(ctx context.Context, q domain.IndicatorQuery) (domain.TrendAnalysis, error) {
	records, err := s.load(ctx, q)
	if err != nil {
		return domain.TrendAnalysis{}, err
	}
	buckets := Aggregate(records, q.Granularity)
	warnMixed(ctx, buckets)

	summary := AnalyzeTrend(buckets)
	if len(buckets) >= 2 && summary.OverallTrend == domain.TrendNoData {
		zerolog.Ctx(ctx).Warn().
			Str("period", buckets[0].Period).
			Msg("first bucket average is zero; percentage change is undefined")
	}
	metrics.TrendAnalyses.WithLabelValues(string(summary.OverallTrend)).Inc()

	return domain.TrendAnalysis{Query: q, Buckets: buckets, Trend: summary}, nil
}

func (s *service) load(ctx context.Context, q domain.IndicatorQuery) ([]domain.Indicator, error) {
	if q.Granularity == "" {
		q.Granularity = domain.GranularityMonthly
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	records, err := s.store.ListInRange(ctx, adapters.MapIndicatorQueryDomainToStore(q))
	if err != nil {
		return nil, fmt.Errorf("list indicators in %s: %w", q.Range, err)
	}

	items := make([]domain.Indicator, 0, len(records))
	for _, r := range adapters.MapStoreIndicatorsToDomain(records) {
		if q.Range.Contains(r.Period()) {
			items = append(items, r)
		}
	}
	zerolog.Ctx(ctx).Debug().
		Str("name", q.Name).
		Str("category", q.Category).
		Str("range", q.Range.String()).
		Int("records", len(items)).
		Msg("loaded indicators")
	return items, nil
}

func warnMixed(ctx context.Context, buckets []domain.PeriodBucket) {
	for _, b := range buckets {
		if b.MixedUnits || b.MixedCategories {
			zerolog.Ctx(ctx).Warn().
				Str("period", b.Period).
				Bool("mixed_units", b.MixedUnits).
				Bool("mixed_categories", b.MixedCategories).
				Msg("bucket averages indicators of different shape")
		}
	}
}
