package model

import "fmt"

// EstimateKind tags which view of the additive accumulation a fitted
// estimate holds.
type EstimateKind int

const (
	SurvivalFunction  EstimateKind = 1
	CumulativeDensity EstimateKind = 2
)

func (k EstimateKind) String() string {
	switch k {
	case SurvivalFunction:
		return "survival_function"
	case CumulativeDensity:
		return "cumulative_density"
	}
	return fmt.Sprintf("estimate_kind_%d", int(k))
}

// Series is a named sequence of values over a timeline.
type Series struct {
	Label  string
	Times  []float64
	Values []float64
}

func (s *Series) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Values) == 0
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

func (s *Series) DebugString() string {
	return fmt.Sprintf("label: %v, valueCount: %v", s.Label, len(s.Values))
}

// ConfidenceBand holds the upper and lower bound series around a point
// estimate, over the same timeline.
type ConfidenceBand struct {
	UpperLabel string
	LowerLabel string
	Times      []float64
	Upper      []float64
	Lower      []float64
}

func (b *ConfidenceBand) IsEmpty() bool {
	if b == nil {
		return true
	}
	return len(b.Upper) == 0
}

// DurationRecord is one weighted observation of a time to event.
type DurationRecord struct {
	Duration float64 `json:"d"`
	// Observed is 1 if the event occurred at Duration, 0 if the subject
	// was censored.
	Observed float64 `json:"e"`
	// Entry is the time the subject entered observation, for
	// left-truncated data. Zero means observed from the origin.
	Entry  float64 `json:"s,omitempty"`
	Weight float64 `json:"w,omitempty"`
}

// SurvivalEstimate is the transport form of a fitted estimate.
type SurvivalEstimate struct {
	Label         string    `json:"label,omitempty"`
	Times         []float64 `json:"times,omitempty"`
	Probabilities []float64 `json:"probs,omitempty"`
	Upper         []float64 `json:"upper,omitempty"`
	Lower         []float64 `json:"lower,omitempty"`
	Median        float64   `json:"median,omitempty"`
}

// ProbabilityAt returns the estimate at the i-th timeline point.
func (e *SurvivalEstimate) ProbabilityAt(i int) (float64, bool) {
	if e == nil || i < 0 || i >= len(e.Probabilities) {
		return 0, false
	}
	return e.Probabilities[i], true
}
