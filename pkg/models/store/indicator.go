package store

import "time"

type IndicatorRecord struct {
	ID        string
	Name      string
	Category  string
	Unit      string
	Year      int
	Month     int
	Target    float64
	Actual    float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TargetFilter struct {
	Year     int
	Month    *int
	Category string
	Name     string
}

// RangeFilter selects records whose month index (year*12 + month - 1)
// falls within [StartIndex, EndIndex].
type RangeFilter struct {
	Name       string
	Category   string
	StartIndex int
	EndIndex   int
}
