package models

// MatchupRequest describes one estimation: two teams, a market line, and a
// venue from team A's perspective. Transient; built either from a structured
// tool call or by the workflow's free-text parser.
type MatchupRequest struct {
	Sport Sport   `json:"sport" validate:"required"`
	TeamA string  `json:"team_a" validate:"required"`
	TeamB string  `json:"team_b" validate:"required"`
	Line  float64 `json:"line" validate:"gte=-100,lte=100"`
	Venue Venue   `json:"venue"`
}

// Confidence is a categorical judgment of how far the model inputs sit from
// typical league ranges. The bucket thresholds are tunable policy.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ProbabilityEstimate is the deterministic output of the margin model plus
// probability engine for one matchup. Never mutated after creation.
type ProbabilityEstimate struct {
	Sport            Sport      `json:"sport"`
	PredictedMargin  float64    `json:"predicted_margin,omitempty"`
	PredictedTotal   float64    `json:"predicted_total,omitempty"`
	Line             float64    `json:"line"`
	Sigma            float64    `json:"sigma"`
	CoverProbability float64    `json:"cover_probability"`
	Confidence       Confidence `json:"model_confidence"`
}
