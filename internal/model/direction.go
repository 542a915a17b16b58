package model

import "time"

// Bias is a directional market call.
type Bias string

const (
	BiasBullish Bias = "Bullish"
	BiasBearish Bias = "Bearish"
	BiasNeutral Bias = "Neutral"
)

// DirectionOutcome records whether a bias call played out. It is the only
// field of any ledger record that is updated in place.
type DirectionOutcome string

const (
	OutcomePending   DirectionOutcome = "Pending"
	OutcomeCorrect   DirectionOutcome = "Correct"
	OutcomeIncorrect DirectionOutcome = "Incorrect"
)

// BiasAnalysis is what the chart analysis service returns for one chart.
type BiasAnalysis struct {
	Bias       Bias     `json:"bias"`
	Confidence float64  `json:"confidence"` // 1-10
	Reasoning  string   `json:"reasoning"`
	KeyLevels  []string `json:"keyLevels"`
}

// DailyDirection is a persisted bias call for one day.
type DailyDirection struct {
	ID         string           `json:"id"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Instrument string           `json:"instrument,omitempty"`
	Bias       Bias             `json:"bias"`
	Confidence float64          `json:"confidence"`
	Reasoning  string           `json:"reasoning"`
	KeyLevels  []string         `json:"keyLevels"`
	Outcome    DirectionOutcome `json:"outcome"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ValidOutcome reports whether o is one of the known outcomes.
func ValidOutcome(o DirectionOutcome) bool {
	switch o {
	case OutcomePending, OutcomeCorrect, OutcomeIncorrect:
		return true
	}
	return false
}
