package response

import (
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// Indicator is one pre-formatted dashboard figure. Value is already a
// display string so bot consumers never re-format numbers.
type Indicator struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type ChartPoint struct {
	Label        string `json:"label"`
	Documents    int    `json:"documents"`
	Pendencies   int    `json:"pendencies"`
	RunningTotal int    `json:"running_total"`
}

type Report struct {
	Period      string                `json:"period"`
	Range       string                `json:"range"`
	GeneratedAt time.Time             `json:"generated_at"`
	Indicators  []Indicator           `json:"indicators"`
	Chart       []ChartPoint          `json:"chart"`
	Quality     []entity.QualityScore `json:"quality,omitempty"`
}
