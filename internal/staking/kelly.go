package staking

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ceddto100/edgeline/internal/models"
)

// DefaultKellyFraction is the half-Kelly risk dial applied when a caller
// supplies none
const DefaultKellyFraction = 0.5

// Calculate sizes a bet with the Kelly criterion.
//
//	f = (b*p - q) / b, b = decimalOdds - 1, p = probability/100, q = 1-p
//
// A non-positive Kelly fraction means the market already prices the edge
// away; the stake is floored at zero and HasValue reports false. Otherwise
// the full Kelly stake is scaled by the caller's fraction multiplier
// (1, 0.5, and 0.25 are the conventional full/half/quarter dials).
func Calculate(bankroll, americanOdds, probability, fraction float64) (*models.KellyStake, *models.DomainError) {
	if err := ValidateBankroll(bankroll); err != nil {
		return nil, err
	}
	if err := ValidateOdds(americanOdds); err != nil {
		return nil, err
	}
	if math.IsNaN(probability) || math.IsInf(probability, 0) || probability < 0 || probability > 100 {
		return nil, models.NewDomainError(models.ErrCodeInvalidInput,
			"probability must be a finite percentage in [0,100] (got %g)", probability)
	}
	if fraction <= 0 || fraction > 1 {
		return nil, models.NewDomainError(models.ErrCodeInvalidInput,
			"kelly fraction must be in (0,1] (got %g)", fraction)
	}

	decimalOdds := AmericanToDecimal(americanOdds)
	implied := ImpliedProbability(americanOdds)

	b := decimalOdds - 1.0
	p := probability / 100.0
	q := 1.0 - p
	kelly := (b*p - q) / b

	stake := &models.KellyStake{
		Bankroll:           bankroll,
		AmericanOdds:       americanOdds,
		DecimalOdds:        decimalOdds,
		Probability:        probability,
		KellyFraction:      fraction,
		ImpliedProbability: implied,
		Edge:               probability - implied,
		LastCalculated:     time.Now().UTC(),
	}

	if kelly <= 0 {
		// Negative edge: never recommend a stake
		return stake, nil
	}

	stake.HasValue = true
	stake.Stake = roundCents(bankroll * kelly * fraction)
	stake.StakePct = kelly * 100.0 * fraction
	return stake, nil
}

// roundCents rounds a currency amount to two decimal places
func roundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
