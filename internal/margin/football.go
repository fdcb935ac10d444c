package margin

import "github.com/ceddto100/edgeline/internal/models"

// Football model weights. Fixed constants; no fitting occurs at runtime.
const (
	footballNetPointsWeight = 0.4
	footballYardsWeight     = 0.25
	footballYardsPerPoint   = 25.0
	footballTurnoverWeight  = 0.2
	footballTurnoverValue   = 4.0 // points per net turnover
	footballTurnoverShare   = 0.5
	footballTurnoverClamp   = 10.0
	footballHomeField       = 2.5
)

// Football predicts team A's scoring margin over team B from season
// averages. Positive means A is expected to win by that many points.
func Football(team, opp models.FootballTeamStats, venue models.Venue) float64 {
	pointsTerm := footballNetPointsWeight * (team.NetPoints() - opp.NetPoints())

	yardsTerm := footballYardsWeight * ((team.NetYards() - opp.NetYards()) / footballYardsPerPoint)

	toTeam := clamp(team.TurnoverDiff, -footballTurnoverClamp, footballTurnoverClamp)
	toOpp := clamp(opp.TurnoverDiff, -footballTurnoverClamp, footballTurnoverClamp)
	turnoverTerm := footballTurnoverWeight * footballTurnoverValue * footballTurnoverShare * (toTeam - toOpp)

	return pointsTerm + yardsTerm + turnoverTerm + venueAdjustment(venue, footballHomeField)
}
