package models

// FootballTeamStats holds per-game season averages for a football team
type FootballTeamStats struct {
	PointsFor     float64 `json:"points_for" validate:"gte=0,lte=100"`
	PointsAgainst float64 `json:"points_against" validate:"gte=0,lte=100"`
	OffYards      float64 `json:"off_yards" validate:"gte=0,lte=1000"`
	DefYards      float64 `json:"def_yards" validate:"gte=0,lte=1000"`
	TurnoverDiff  float64 `json:"turnover_diff" validate:"gte=-50,lte=50"`
}

// NetPoints returns average scoring margin per game
func (s FootballTeamStats) NetPoints() float64 {
	return s.PointsFor - s.PointsAgainst
}

// NetYards returns average yardage margin per game
func (s FootballTeamStats) NetYards() float64 {
	return s.OffYards - s.DefYards
}

// Complete reports whether enough fields are populated to run the margin model
func (s FootballTeamStats) Complete() bool {
	return s.PointsFor > 0 && s.PointsAgainst > 0 && s.OffYards > 0 && s.DefYards > 0
}

// BasketballTeamStats holds per-game season averages for a basketball team
type BasketballTeamStats struct {
	PointsFor      float64 `json:"points_for" validate:"gte=0,lte=200"`
	PointsAgainst  float64 `json:"points_against" validate:"gte=0,lte=200"`
	FieldGoalPct   float64 `json:"field_goal_pct" validate:"gte=0,lte=1"`
	ReboundMargin  float64 `json:"rebound_margin" validate:"gte=-30,lte=30"`
	TurnoverMargin float64 `json:"turnover_margin" validate:"gte=-30,lte=30"`
	ThreePtPct     float64 `json:"three_pt_pct" validate:"gte=0,lte=1"`
	Pace           float64 `json:"pace" validate:"gte=0,lte=130"`
}

// NetPoints returns average scoring margin per game
func (s BasketballTeamStats) NetPoints() float64 {
	return s.PointsFor - s.PointsAgainst
}

// Complete reports whether enough fields are populated to run the margin model
func (s BasketballTeamStats) Complete() bool {
	return s.PointsFor > 0 && s.PointsAgainst > 0 && s.FieldGoalPct > 0
}

// HockeyTeamStats holds per-game season averages for a hockey team,
// including goaltending and special-teams rates used by the total-goals model
type HockeyTeamStats struct {
	XGFor            float64 `json:"xg_for" validate:"gte=0,lte=10"`
	XGAgainst        float64 `json:"xg_against" validate:"gte=0,lte=10"`
	GoalieGSAx       float64 `json:"goalie_gsax" validate:"gte=-3,lte=3"`
	HighDangerFor    float64 `json:"high_danger_for" validate:"gte=0,lte=40"`
	PowerPlayPct     float64 `json:"power_play_pct" validate:"gte=0,lte=100"`
	PenaltyKillPct   float64 `json:"penalty_kill_pct" validate:"gte=0,lte=100"`
	TimesShorthanded float64 `json:"times_shorthanded" validate:"gte=0,lte=10"`
}

// Complete reports whether enough fields are populated to run the total model
func (s HockeyTeamStats) Complete() bool {
	return s.XGFor > 0 && s.XGAgainst > 0
}

// TeamSnapshot is one team's immutable season statistics for one sport.
// Exactly one of the sport-specific stat pointers is set, matching Sport.
type TeamSnapshot struct {
	Name         string               `json:"name"`
	Abbreviation string               `json:"abbreviation"`
	Sport        Sport                `json:"sport"`
	Football     *FootballTeamStats   `json:"football,omitempty"`
	Basketball   *BasketballTeamStats `json:"basketball,omitempty"`
	Hockey       *HockeyTeamStats     `json:"hockey,omitempty"`
}

// Complete reports whether the snapshot carries usable stats for its sport
func (t *TeamSnapshot) Complete() bool {
	switch t.Sport {
	case SportFootball:
		return t.Football != nil && t.Football.Complete()
	case SportBasketball:
		return t.Basketball != nil && t.Basketball.Complete()
	case SportHockey:
		return t.Hockey != nil && t.Hockey.Complete()
	}
	return false
}
