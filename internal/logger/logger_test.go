package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionFormatter(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production logger should use JSON formatter")
}

func TestBetLoggerRecorded(t *testing.T) {
	log, buf := setupTestLogger()
	betLogger := NewBetLogger(log)

	betLogger.LogBetRecorded(
		"bet_001",
		"session_abc",
		"basketball",
		"Heat",
		"Hawks",
		-3.5,
		-110,
		25.50,
		time.Now(),
	)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "bets", entry["component"])
	assert.Equal(t, "bet_001", entry["bet_id"])
	assert.Equal(t, "session_abc", entry["session_id"])
	assert.Equal(t, -3.5, entry["line"])
	assert.Equal(t, "Bet recorded", entry["msg"])
}

func TestBetLoggerSettled(t *testing.T) {
	log, buf := setupTestLogger()
	betLogger := NewBetLogger(log)

	betLogger.LogBetSettled("bet_001", "win", 23.18)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "win", entry["outcome"])
	assert.Equal(t, 23.18, entry["profit_loss"])
}

func TestWorkflowLoggerEstimation(t *testing.T) {
	log, buf := setupTestLogger()
	workflowLogger := NewWorkflowLogger(log)

	workflowLogger.LogEstimation("football", "Chiefs", "Raiders", 6.2, 58.3, "high")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "workflow", entry["component"])
	assert.Equal(t, 6.2, entry["predicted_margin"])
	assert.Equal(t, 58.3, entry["cover_probability"])
	assert.Equal(t, "high", entry["confidence"])
}

func TestWorkflowLoggerStepFailure(t *testing.T) {
	log, buf := setupTestLogger()
	workflowLogger := NewWorkflowLogger(log)

	workflowLogger.LogStepFailure("session_abc", "step5_logging", "store unavailable")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "step5_logging", entry["step"])
}
