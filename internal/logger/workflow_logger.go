// Package logger provides workflow-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// WorkflowLogger provides dedicated logging for orchestration runs.
type WorkflowLogger struct {
	*logrus.Entry
}

// NewWorkflowLogger creates a new workflow logger.
func NewWorkflowLogger(baseLogger *logrus.Logger) *WorkflowLogger {
	return &WorkflowLogger{
		Entry: baseLogger.WithField("component", "workflow"),
	}
}

// LogParse logs the result of parsing a matchup description.
func (wl *WorkflowLogger) LogParse(rawInput, sport, teamA, teamB, pick string, spread float64) {
	wl.WithFields(logrus.Fields{
		"raw_input": rawInput,
		"sport":     sport,
		"team_a":    teamA,
		"team_b":    teamB,
		"pick":      pick,
		"spread":    spread,
	}).Debug("Matchup parsed")
}

// LogEstimation logs a completed probability estimation.
func (wl *WorkflowLogger) LogEstimation(sport, teamA, teamB string, margin, coverProbability float64, confidence string) {
	wl.WithFields(logrus.Fields{
		"sport":             sport,
		"team_a":            teamA,
		"team_b":            teamB,
		"predicted_margin":  margin,
		"cover_probability": coverProbability,
		"confidence":        confidence,
	}).Info("Probability estimated")
}

// LogRunCompleted logs the end of an orchestration run.
func (wl *WorkflowLogger) LogRunCompleted(sessionID string, assumptions []string, durationMs float64) {
	wl.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"assumptions": assumptions,
		"duration_ms": durationMs,
	}).Info("Orchestration run completed")
}

// LogStepFailure logs a failed workflow step.
func (wl *WorkflowLogger) LogStepFailure(sessionID, step, reason string) {
	wl.WithFields(logrus.Fields{
		"session_id": sessionID,
		"step":       step,
		"reason":     reason,
	}).Warn("Workflow step failed")
}
