package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusOffTrack  Status = "off_track"
	StatusAtRisk    Status = "at_risk"
	StatusOnTrack   Status = "on_track"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s can be assigned as an explicit override.
// pending is only ever a creation default.
func (s Status) IsValid() bool {
	switch s {
	case StatusOffTrack, StatusAtRisk, StatusOnTrack, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, value)
	}
	return s, nil
}

type Indicator struct {
	ID        string
	Name      string
	Category  string
	Unit      string
	Year      int
	Month     int
	Target    float64
	Actual    float64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i Indicator) Period() YearMonth {
	return YearMonth{Year: i.Year, Month: i.Month}
}

// TargetDefinition defines the planned value of an indicator for one period.
type TargetDefinition struct {
	Name     string
	Category string
	Unit     string
	Year     int
	Month    int
	Target   float64
}

// IndicatorUpdate is a new observation for an existing indicator.
// Actual is a pointer so that a missing value can be told apart from 0.
type IndicatorUpdate struct {
	ID     string
	Actual *float64
	Status *Status
}

type UpdateFailure struct {
	ID  string
	Err error
}

type BatchResult struct {
	Results []Indicator
	Errors  []UpdateFailure
}

type TargetFilter struct {
	Year     int
	Month    *int
	Category string
	Name     string
}
