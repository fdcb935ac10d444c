package margin

import "github.com/ceddto100/edgeline/internal/models"

// Hockey total-goals model constants
const (
	hockeyPaceBonus          = 0.25
	hockeyPaceThreshold      = 25.0 // combined high-danger chances per game
	hockeySpecialTeamsBonus  = 0.35
	hockeySpecialTeamsScore  = 150.0
	hockeySpecialTeamsFactor = 100.0
)

// HockeyBreakdown exposes the intermediate steps of the total-goals model
// so callers can render the reasoning behind a projection.
type HockeyBreakdown struct {
	ProjectedHomeGoals  float64 `json:"projected_home_goals"`
	ProjectedAwayGoals  float64 `json:"projected_away_goals"`
	PaceAdjustment      float64 `json:"pace_adjustment"`
	HomeSpecialTeamsAdj float64 `json:"home_special_teams_adj"`
	AwaySpecialTeamsAdj float64 `json:"away_special_teams_adj"`
}

// HockeyTotal projects the combined goal total for a game. Four steps:
// per-side projected goals from expected goals less opposing goaltending,
// a pace bump for high-event matchups, and a special-teams bump per side
// with a favorable power-play vs penalty-kill profile. The total is floored
// at zero.
func HockeyTotal(home, away models.HockeyTeamStats) (float64, HockeyBreakdown) {
	b := HockeyBreakdown{}

	b.ProjectedHomeGoals = (home.XGFor+away.XGAgainst)/2.0 - away.GoalieGSAx
	b.ProjectedAwayGoals = (away.XGFor+home.XGAgainst)/2.0 - home.GoalieGSAx

	if home.HighDangerFor+away.HighDangerFor > hockeyPaceThreshold {
		b.PaceAdjustment = hockeyPaceBonus
	}

	if specialTeamsScore(home, away) > hockeySpecialTeamsScore {
		b.HomeSpecialTeamsAdj = hockeySpecialTeamsBonus
	}
	if specialTeamsScore(away, home) > hockeySpecialTeamsScore {
		b.AwaySpecialTeamsAdj = hockeySpecialTeamsBonus
	}

	total := b.ProjectedHomeGoals + b.ProjectedAwayGoals +
		b.PaceAdjustment + b.HomeSpecialTeamsAdj + b.AwaySpecialTeamsAdj
	if total < 0 {
		total = 0
	}
	return total, b
}

// specialTeamsScore combines a side's power play with the opponent's
// penalty kill weakness, weighted by how often the opponent is shorthanded
func specialTeamsScore(side, opp models.HockeyTeamStats) float64 {
	return (side.PowerPlayPct + (hockeySpecialTeamsFactor - opp.PenaltyKillPct)) * opp.TimesShorthanded
}
