package probability

import (
	"math"

	"github.com/ceddto100/edgeline/internal/models"
)

// League-average reference values used to judge how typical a team's inputs
// are. Deviation thresholds and bucket boundaries are heuristic policy, not
// a contract; the only guarantees are determinism and monotonicity (more
// extreme inputs never raise confidence).
const (
	footballAvgPoints   = 22.0
	footballAvgYards    = 340.0
	basketballAvgPoints = 112.0
	basketballAvgFGPct  = 0.47
	hockeyAvgXG         = 3.0

	deviationMedium = 1.0
	deviationLow    = 2.0
)

// FootballConfidence buckets model confidence from how far both teams'
// inputs deviate from league-typical ranges.
func FootballConfidence(team, opp models.FootballTeamStats) models.Confidence {
	if !team.Complete() || !opp.Complete() {
		return models.ConfidenceLow
	}
	score := (footballDeviation(team) + footballDeviation(opp)) / 2.0
	return bucket(score)
}

// BasketballConfidence buckets model confidence for the basketball model
func BasketballConfidence(team, opp models.BasketballTeamStats) models.Confidence {
	if !team.Complete() || !opp.Complete() {
		return models.ConfidenceLow
	}
	score := (basketballDeviation(team) + basketballDeviation(opp)) / 2.0
	return bucket(score)
}

// HockeyConfidence buckets model confidence for the total-goals model
func HockeyConfidence(home, away models.HockeyTeamStats) models.Confidence {
	if !home.Complete() || !away.Complete() {
		return models.ConfidenceLow
	}
	score := (hockeyDeviation(home) + hockeyDeviation(away)) / 2.0
	return bucket(score)
}

func footballDeviation(s models.FootballTeamStats) float64 {
	return (math.Abs(s.PointsFor-footballAvgPoints)/10.0 +
		math.Abs(s.PointsAgainst-footballAvgPoints)/10.0 +
		math.Abs(s.OffYards-footballAvgYards)/100.0 +
		math.Abs(s.TurnoverDiff)/10.0) / 4.0
}

func basketballDeviation(s models.BasketballTeamStats) float64 {
	return (math.Abs(s.PointsFor-basketballAvgPoints)/10.0 +
		math.Abs(s.PointsAgainst-basketballAvgPoints)/10.0 +
		math.Abs(s.FieldGoalPct-basketballAvgFGPct)/0.03) / 3.0
}

func hockeyDeviation(s models.HockeyTeamStats) float64 {
	return (math.Abs(s.XGFor-hockeyAvgXG)/1.0 +
		math.Abs(s.XGAgainst-hockeyAvgXG)/1.0 +
		math.Abs(s.GoalieGSAx)/0.5) / 3.0
}

func bucket(score float64) models.Confidence {
	switch {
	case score < deviationMedium:
		return models.ConfidenceHigh
	case score < deviationLow:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
