package models

import (
	"time"

	"github.com/google/uuid"
)

// BetOutcome represents the settled state of a logged bet
type BetOutcome string

const (
	BetOutcomePending BetOutcome = "pending"
	BetOutcomeWin     BetOutcome = "win"
	BetOutcomeLoss    BetOutcome = "loss"
	BetOutcomePush    BetOutcome = "push"
)

// Valid reports whether the outcome is one of the supported values
func (o BetOutcome) Valid() bool {
	switch o {
	case BetOutcomePending, BetOutcomeWin, BetOutcomeLoss, BetOutcomePush:
		return true
	}
	return false
}

// BetRecord snapshots a matchup, its probability estimate, and its Kelly
// sizing at the moment a bet was logged. Created once per logged bet and
// mutated only by an outcome update; never deleted by this core.
type BetRecord struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	SessionID          string     `db:"session_id" json:"session_id"`
	Sport              Sport      `db:"sport" json:"sport" validate:"required"`
	TeamA              string     `db:"team_a" json:"team_a" validate:"required"`
	TeamB              string     `db:"team_b" json:"team_b" validate:"required"`
	Pick               string     `db:"pick" json:"pick"`
	Spread             float64    `db:"spread" json:"spread"`
	Probability        float64    `db:"probability" json:"probability"`
	Odds               float64    `db:"odds" json:"odds"`
	Bankroll           float64    `db:"bankroll" json:"bankroll"`
	RecommendedStake   float64    `db:"recommended_stake" json:"recommended_stake"`
	ActualWager        float64    `db:"actual_wager" json:"actual_wager"`
	Edge               float64    `db:"edge" json:"edge"`
	ImpliedProbability float64    `db:"implied_probability" json:"implied_probability"`
	Outcome            BetOutcome `db:"outcome" json:"outcome"`
	Notes              string     `db:"notes" json:"notes"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	SettledAt          *time.Time `db:"settled_at" json:"settled_at,omitempty"`
}

// IsSettled checks if the bet has a terminal outcome
func (b *BetRecord) IsSettled() bool {
	return b.Outcome != BetOutcomePending && b.SettledAt != nil
}

// ProfitLoss returns realized P&L for a settled bet at its logged odds
func (b *BetRecord) ProfitLoss() float64 {
	switch b.Outcome {
	case BetOutcomeWin:
		return b.ActualWager * (b.DecimalOdds() - 1.0)
	case BetOutcomeLoss:
		return -b.ActualWager
	default:
		return 0
	}
}

// DecimalOdds converts the logged American odds to decimal odds
func (b *BetRecord) DecimalOdds() float64 {
	if b.Odds > 0 {
		return 1.0 + b.Odds/100.0
	}
	if b.Odds < 0 {
		return 1.0 + 100.0/(-b.Odds)
	}
	return 0
}
