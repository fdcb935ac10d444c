package models

import "time"

// KellyStake is the staking engine's full output for one bet sizing.
// When HasValue is false the stake fields are forced to zero; a negative
// stake is never reported.
type KellyStake struct {
	Bankroll           float64   `json:"bankroll"`
	AmericanOdds       float64   `json:"american_odds"`
	DecimalOdds        float64   `json:"decimal_odds"`
	Probability        float64   `json:"probability"`
	KellyFraction      float64   `json:"kelly_fraction"`
	Stake              float64   `json:"stake"`
	StakePct           float64   `json:"stake_percentage"`
	HasValue           bool      `json:"has_value"`
	ImpliedProbability float64   `json:"implied_probability"`
	Edge               float64   `json:"edge"`
	LastCalculated     time.Time `json:"last_calculated"`
}
