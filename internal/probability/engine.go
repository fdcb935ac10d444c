// Package probability converts a predicted margin or total and a market
// line into a cover/over probability via a Gaussian tail approximation.
// Outputs are always clamped away from 0% and 100%: the model is an
// approximation, not ground truth.
package probability

import (
	"math"

	"github.com/ceddto100/edgeline/internal/models"
)

// Sport-specific standard deviations of final margins, in points
const (
	SigmaFootball   = 13.5
	SigmaBasketball = 12.0
)

// Output clamps, in percent
const (
	spreadFloor   = 0.1
	spreadCeiling = 99.9
	totalFloor    = 1.0
	totalCeiling  = 99.0
)

// Sigma returns the margin standard deviation for a spread sport
func Sigma(sport models.Sport) float64 {
	if sport == models.SportBasketball {
		return SigmaBasketball
	}
	return SigmaFootball
}

// CoverProbability returns the percent chance that a team with the given
// predicted margin covers the quoted spread. The line is quoted from the
// backed team's perspective (negative when laying points), so the cover
// condition is actualMargin + line > 0.
func CoverProbability(predictedMargin, line, sigma float64) float64 {
	z := (predictedMargin + line) / sigma
	p := NormalCDF(z) * 100.0
	return clampPct(p, spreadFloor, spreadCeiling)
}

// OverProbability returns the percent chance a game's total exceeds the
// quoted line, assuming Poisson-like variance around the projected total.
func OverProbability(projectedTotal, line float64) float64 {
	if projectedTotal <= 0 {
		return totalFloor
	}
	sigma := math.Sqrt(projectedTotal)
	z := (projectedTotal - line) / sigma
	p := NormalCDF(z) * 100.0
	return clampPct(p, totalFloor, totalCeiling)
}

// TotalSigma returns the Poisson-like deviation used by the total variant
func TotalSigma(projectedTotal float64) float64 {
	if projectedTotal <= 0 {
		return 0
	}
	return math.Sqrt(projectedTotal)
}

// CoverPair produces favorite and underdog cover probabilities as fractions
// that sum to exactly 1.00 after independent rounding to 2 decimals. Any
// rounding drift is absorbed by the underdog figure.
func CoverPair(favoriteMargin, spread, sigma float64) (favorite, underdog float64) {
	favPct := CoverProbability(favoriteMargin, spread, sigma)
	favorite = round2(favPct / 100.0)
	underdog = round2(1.0 - favorite)
	if diff := 1.0 - favorite - underdog; diff != 0 {
		underdog = round2(underdog + diff)
	}
	return favorite, underdog
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPct(p, floor, ceiling float64) float64 {
	if p < floor {
		return floor
	}
	if p > ceiling {
		return ceiling
	}
	return p
}
