// Package staking sizes bets with the fractional Kelly criterion and
// exposes the American-odds conversions it depends on. Validation always
// runs before any derived computation; failures are structured domain
// errors, never silent coercions.
package staking

import (
	"math"

	"github.com/ceddto100/edgeline/internal/models"
)

// Bankroll bounds
const (
	MinBankroll = 0.0
	MaxBankroll = 1e9
)

// StandardJuice is the default American odds when a caller supplies none
const StandardJuice = -110.0

// ValidateOdds rejects the American odds dead zone. Odds strictly between
// -100 and +100 have no meaning in American notation; exactly -100 and
// +100 (even money) are accepted.
func ValidateOdds(american float64) *models.DomainError {
	if math.IsNaN(american) || math.IsInf(american, 0) {
		return models.NewDomainError(models.ErrCodeInvalidOdds, "odds must be a finite number")
	}
	if american > -100 && american < 100 {
		return models.NewDomainError(models.ErrCodeInvalidOdds,
			"American odds cannot fall between -100 and +100 (got %g)", american)
	}
	return nil
}

// ValidateBankroll rejects non-positive or implausibly large bankrolls
func ValidateBankroll(bankroll float64) *models.DomainError {
	if math.IsNaN(bankroll) || math.IsInf(bankroll, 0) || bankroll <= MinBankroll {
		return models.NewDomainError(models.ErrCodeInvalidBankroll,
			"bankroll must be a positive amount (got %g)", bankroll)
	}
	if bankroll > MaxBankroll {
		return models.NewDomainError(models.ErrCodeInvalidBankroll,
			"bankroll exceeds the supported maximum of %g", MaxBankroll)
	}
	return nil
}

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.667.
func AmericanToDecimal(american float64) float64 {
	if american > 0 {
		return 1.0 + american/100.0
	}
	return 1.0 + 100.0/math.Abs(american)
}

// ImpliedProbability returns the market-implied win percentage for the
// given American odds. -110 -> 52.38, +150 -> 40.0.
func ImpliedProbability(american float64) float64 {
	if american < 0 {
		return math.Abs(american) / (math.Abs(american) + 100.0) * 100.0
	}
	return 100.0 / (american + 100.0) * 100.0
}
