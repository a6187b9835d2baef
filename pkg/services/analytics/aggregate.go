package analytics

import (
	"sort"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

// accumulator keeps running sums; the mean is only taken when the bucket is flattened.
type accumulator struct {
	key             domain.PeriodKey
	targetSum       float64
	actualSum       float64
	count           int
	unit            string
	category        string
	mixedUnits      bool
	mixedCategories bool
}

func (a *accumulator) add(r domain.Indicator) {
	if a.count == 0 {
		a.unit = r.Unit
		a.category = r.Category
	} else {
		if r.Unit != a.unit {
			a.mixedUnits = true
		}
		if r.Category != a.category {
			a.mixedCategories = true
		}
	}
	a.targetSum += r.Target
	a.actualSum += r.Actual
	a.count++
}

func (a *accumulator) bucket() domain.PeriodBucket {
	b := domain.PeriodBucket{
		Key:             a.key,
		Period:          a.key.String(),
		AverageTarget:   a.targetSum / float64(a.count),
		AverageActual:   a.actualSum / float64(a.count),
		ItemCount:       a.count,
		MixedUnits:      a.mixedUnits,
		MixedCategories: a.mixedCategories,
	}
	if !a.mixedUnits {
		b.Unit = a.unit
	}
	if !a.mixedCategories {
		b.Category = a.category
	}
	return b
}

// Aggregate groups records into buckets of the given granularity, ordered
// chronologically. Empty input gives an empty, non-nil slice.
func Aggregate(records []domain.Indicator, granularity domain.Granularity) []domain.PeriodBucket {
	acc := make(map[domain.PeriodKey]*accumulator)
	for _, r := range records {
		key := domain.NewPeriodKey(granularity, r.Period())
		a, ok := acc[key]
		if !ok {
			a = &accumulator{key: key}
			acc[key] = a
		}
		a.add(r)
	}

	buckets := make([]domain.PeriodBucket, 0, len(acc))
	for _, a := range acc {
		buckets = append(buckets, a.bucket())
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key.Less(buckets[j].Key)
	})
	return buckets
}
