package domain

import (
	"fmt"
	"strings"
)

type Granularity string

const (
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

func ParseGranularity(value string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(value))); g {
	case GranularityMonthly, GranularityQuarterly, GranularityYearly:
		return g, nil
	case "":
		return GranularityMonthly, nil
	default:
		return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidInput, value)
	}
}

type YearMonth struct {
	Year  int
	Month int
}

// Index is a monotonic month counter: consecutive months differ by exactly one,
// including across a year boundary.
func (ym YearMonth) Index() int {
	return ym.Year*12 + ym.Month - 1
}

func (ym YearMonth) Valid() bool {
	return ym.Year > 0 && ym.Month >= 1 && ym.Month <= 12
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// MonthRange is an inclusive (year, month) range that may span year boundaries.
type MonthRange struct {
	Start YearMonth
	End   YearMonth
}

func NewMonthRange(startYear, startMonth, endYear, endMonth int) (MonthRange, error) {
	r := MonthRange{
		Start: YearMonth{Year: startYear, Month: startMonth},
		End:   YearMonth{Year: endYear, Month: endMonth},
	}
	if !r.Start.Valid() {
		return MonthRange{}, fmt.Errorf("%w: invalid range start %d-%d", ErrInvalidInput, startYear, startMonth)
	}
	if !r.End.Valid() {
		return MonthRange{}, fmt.Errorf("%w: invalid range end %d-%d", ErrInvalidInput, endYear, endMonth)
	}
	if r.Start.Index() > r.End.Index() {
		return MonthRange{}, fmt.Errorf("%w: range start %s is after end %s", ErrInvalidInput, r.Start, r.End)
	}
	return r, nil
}

// YearsRange covers January of startYear through December of endYear.
func YearsRange(startYear, endYear int) (MonthRange, error) {
	return NewMonthRange(startYear, 1, endYear, 12)
}

func (r MonthRange) Contains(ym YearMonth) bool {
	idx := ym.Index()
	return idx >= r.Start.Index() && idx <= r.End.Index()
}

// Months is the number of calendar months covered by the range.
func (r MonthRange) Months() int {
	return r.End.Index() - r.Start.Index() + 1
}

func (r MonthRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// PeriodKey identifies an aggregation bucket. Sub is the month for monthly
// keys, the quarter for quarterly keys and 0 for yearly keys.
type PeriodKey struct {
	Granularity Granularity
	Year        int
	Sub         int
}

func NewPeriodKey(g Granularity, ym YearMonth) PeriodKey {
	switch g {
	case GranularityQuarterly:
		return PeriodKey{Granularity: g, Year: ym.Year, Sub: QuarterOf(ym.Month)}
	case GranularityYearly:
		return PeriodKey{Granularity: g, Year: ym.Year}
	default:
		return PeriodKey{Granularity: GranularityMonthly, Year: ym.Year, Sub: ym.Month}
	}
}

// QuarterOf returns ceil(month / 3).
func QuarterOf(month int) int {
	return (month + 2) / 3
}

func (k PeriodKey) String() string {
	switch k.Granularity {
	case GranularityQuarterly:
		return fmt.Sprintf("%d-Q%d", k.Year, k.Sub)
	case GranularityYearly:
		return fmt.Sprintf("%d", k.Year)
	default:
		return fmt.Sprintf("%d-%02d", k.Year, k.Sub)
	}
}

func (k PeriodKey) Less(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Sub < other.Sub
}

type PeriodBucket struct {
	Key             PeriodKey
	Period          string
	AverageTarget   float64
	AverageActual   float64
	ItemCount       int
	Unit            string
	Category        string
	MixedUnits      bool
	MixedCategories bool
}

// IndicatorQuery selects the indicators of one name and/or category over a month range.
type IndicatorQuery struct {
	Name        string
	Category    string
	Range       MonthRange
	Granularity Granularity
}

func (q IndicatorQuery) Validate() error {
	if q.Name == "" && q.Category == "" {
		return fmt.Errorf("%w: either name or category is required", ErrInvalidInput)
	}
	if !q.Range.Start.Valid() || !q.Range.End.Valid() {
		return fmt.Errorf("%w: start and end year are required", ErrInvalidInput)
	}
	if q.Range.Start.Index() > q.Range.End.Index() {
		return fmt.Errorf("%w: range start %s is after end %s", ErrInvalidInput, q.Range.Start, q.Range.End)
	}
	return nil
}
