package api

type PeriodBucket struct {
	Period          string  `json:"period"`
	AverageTarget   float64 `json:"average_target"`
	AverageActual   float64 `json:"average_actual"`
	ItemCount       int     `json:"item_count"`
	Unit            string  `json:"unit,omitempty"`
	Category        string  `json:"category,omitempty"`
	MixedUnits      bool    `json:"mixed_units,omitempty"`
	MixedCategories bool    `json:"mixed_categories,omitempty"`
}

type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

type TrendSummary struct {
	OverallTrend     string       `json:"overall_trend"`
	PercentageChange float64      `json:"percentage_change"`
	AverageChange    float64      `json:"average_change"`
	MinValue         float64      `json:"min_value"`
	MaxValue         float64      `json:"max_value"`
	DataPoints       []TrendPoint `json:"data_points"`
}

type TrendResponse struct {
	Buckets []PeriodBucket `json:"buckets"`
	Trend   TrendSummary   `json:"trend"`
}
