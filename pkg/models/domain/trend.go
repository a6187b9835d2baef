package domain

type TrendDirection string

const (
	TrendNoData    TrendDirection = "no_data"
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

type TrendPoint struct {
	Period string
	Value  float64
	// Change is the delta from the previous point; 0 for the first one.
	Change float64
}

type TrendSummary struct {
	OverallTrend     TrendDirection
	PercentageChange float64
	AverageChange    float64
	MinValue         float64
	MaxValue         float64
	DataPoints       []TrendPoint
}

type TrendAnalysis struct {
	Query   IndicatorQuery
	Buckets []PeriodBucket
	Trend   TrendSummary
}
