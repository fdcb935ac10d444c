// Package logger provides bet audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// BetLogger provides a dedicated audit trail for bet records.
type BetLogger struct {
	*logrus.Entry
}

// NewBetLogger creates a new bet audit logger.
func NewBetLogger(baseLogger *logrus.Logger) *BetLogger {
	return &BetLogger{
		Entry: baseLogger.WithField("component", "bets"),
	}
}

// LogBetRecorded logs a bet being written to the store.
func (bl *BetLogger) LogBetRecorded(betID, sessionID, sport, teamA, teamB string, line, odds, stake float64, timestamp time.Time) {
	bl.WithFields(logrus.Fields{
		"bet_id":     betID,
		"session_id": sessionID,
		"sport":      sport,
		"team_a":     teamA,
		"team_b":     teamB,
		"line":       line,
		"odds":       odds,
		"stake":      stake,
		"timestamp":  timestamp.Unix(),
	}).Info("Bet recorded")
}

// LogBetSettled logs a bet outcome update.
func (bl *BetLogger) LogBetSettled(betID, outcome string, profitLoss float64) {
	bl.WithFields(logrus.Fields{
		"bet_id":      betID,
		"outcome":     outcome,
		"profit_loss": profitLoss,
	}).Info("Bet settled")
}

// LogStakeRecommendation logs a Kelly staking recommendation.
func (bl *BetLogger) LogStakeRecommendation(sessionID string, bankroll, odds, probability, stake, stakePct float64, hasValue bool) {
	bl.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"bankroll":    bankroll,
		"odds":        odds,
		"probability": probability,
		"stake":       stake,
		"stake_pct":   stakePct,
		"has_value":   hasValue,
	}).Info("Stake recommendation produced")
}
