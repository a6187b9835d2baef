package api

import "time"

type Indicator struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit,omitempty"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Target    float64   `json:"target"`
	Actual    float64   `json:"actual"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SetTargetRequest struct {
	Name     string   `json:"name" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Unit     string   `json:"unit"`
	Year     int      `json:"year" validate:"required,gte=1"`
	Month    int      `json:"month" validate:"required,min=1,max=12"`
	Target   *float64 `json:"target" validate:"required"`
}

// UpdateActualRequest carries one observation. Actual is a pointer so that
// an explicit 0 is accepted while an absent value is rejected.
type UpdateActualRequest struct {
	ID     string   `json:"id" yaml:"id" validate:"required"`
	Actual *float64 `json:"actual" yaml:"actual" validate:"required"`
	Status *string  `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=off_track at_risk on_track completed"`
}

// BatchUpdateRequest items are not validated as a whole: every item is
// checked on its own so that one bad item never rejects the batch.
type BatchUpdateRequest struct {
	Updates []UpdateActualRequest `json:"updates" yaml:"updates" validate:"required"`
}

type BatchError struct {
	ID      string `json:"id"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type BatchUpdateResponse struct {
	Updated int          `json:"updated"`
	Failed  int          `json:"failed"`
	Results []Indicator  `json:"results"`
	Errors  []BatchError `json:"errors"`
}
