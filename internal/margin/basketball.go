package margin

import "github.com/ceddto100/edgeline/internal/models"

// Basketball model weights. Shooting percentages arrive in [0,1] and are
// converted to percentage points before weighting.
const (
	basketballNetPointsWeight = 0.35
	basketballShootingWeight  = 1.5
	basketballReboundWeight   = 0.25
	basketballTurnoverWeight  = 0.3
	basketballThreePtWeight   = 0.5
	basketballLeaguePace      = 100.0
	basketballHomeCourt       = 3.0
)

// Basketball predicts team A's scoring margin over team B. The core terms
// are scaled by the matchup's pace relative to league average; the home
// court adjustment is applied after pace scaling.
func Basketball(team, opp models.BasketballTeamStats, venue models.Venue) float64 {
	pointsTerm := basketballNetPointsWeight * (team.NetPoints() - opp.NetPoints())
	shootingTerm := basketballShootingWeight * 100.0 * (team.FieldGoalPct - opp.FieldGoalPct)
	reboundTerm := basketballReboundWeight * (team.ReboundMargin - opp.ReboundMargin)
	turnoverTerm := basketballTurnoverWeight * (team.TurnoverMargin - opp.TurnoverMargin)
	threeTerm := basketballThreePtWeight * 100.0 * (team.ThreePtPct - opp.ThreePtPct)

	raw := pointsTerm + shootingTerm + reboundTerm + turnoverTerm + threeTerm

	if team.Pace > 0 && opp.Pace > 0 {
		avgPace := (team.Pace + opp.Pace) / 2.0
		raw *= avgPace / basketballLeaguePace
	}

	return raw + venueAdjustment(venue, basketballHomeCourt)
}
