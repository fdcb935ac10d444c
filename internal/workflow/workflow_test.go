package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceddto100/edgeline/internal/estimator"
	"github.com/ceddto100/edgeline/internal/models"
	"github.com/ceddto100/edgeline/internal/repository"
	"github.com/ceddto100/edgeline/internal/teams"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func seededEstimator(t *testing.T) *estimator.Estimator {
	t.Helper()
	log := quietLogger()

	provider := teams.NewTableProvider(log)
	provider.Put(&models.TeamSnapshot{
		Name: "Miami Heat", Abbreviation: "MIA", Sport: models.SportBasketball,
		Basketball: &models.BasketballTeamStats{
			PointsFor: 110, PointsAgainst: 108, FieldGoalPct: 0.47,
			ReboundMargin: 1.5, TurnoverMargin: 0.5, ThreePtPct: 0.36, Pace: 98,
		},
	})
	provider.Put(&models.TeamSnapshot{
		Name: "Atlanta Hawks", Abbreviation: "ATL", Sport: models.SportBasketball,
		Basketball: &models.BasketballTeamStats{
			PointsFor: 118, PointsAgainst: 112, FieldGoalPct: 0.48,
			ReboundMargin: 2.0, TurnoverMargin: 1.0, ThreePtPct: 0.37, Pace: 101,
		},
	})

	resolver := teams.NewResolver(provider, teams.ResolverConfig{}, log)
	return estimator.New(resolver, log)
}

func TestRunFullPipeline(t *testing.T) {
	orch := NewOrchestrator(seededEstimator(t), repository.NewMemoryBetStore(), Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(),
		"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks", Options{})
	require.NoError(t, err)
	require.True(t, result.Success)

	require.NotNil(t, result.Parsing)
	assert.Equal(t, "Hawks", result.Parsing.Parsed.Pick)
	assert.Equal(t, -3.5, result.Parsing.Parsed.Spread)

	require.NotNil(t, result.Probability)
	assert.True(t, result.Probability.Success)
	assert.True(t, result.Probability.VenueAssumed)
	assert.Equal(t, "provider", result.Probability.StatsSource)

	require.NotNil(t, result.Odds)
	assert.True(t, result.Odds.OddsAssumed)
	assert.Equal(t, -110.0, result.Odds.AmericanOdds)

	require.NotNil(t, result.Kelly)
	assert.True(t, result.Kelly.Success)
	require.NotNil(t, result.Kelly.Stake)
	assert.Equal(t, 1000.0, result.Kelly.Stake.Bankroll)
	assert.Equal(t, 0.5, result.Kelly.Stake.KellyFraction)

	assert.Contains(t, result.Assumptions, "Odds assumed as -110 (standard juice)")
	assert.Contains(t, result.Assumptions, "Venue assumed neutral (not stated)")
	assert.Contains(t, result.Assumptions, "Bankroll defaulted to 1000")
	assert.Contains(t, result.Assumptions, "Kelly fraction defaulted to 0.5 (half Kelly)")

	// no logging was requested
	assert.Nil(t, result.Logging)
	assert.NotEmpty(t, result.Summary.Human)
}

func TestRunParseFailureAborts(t *testing.T) {
	orch := NewOrchestrator(seededEstimator(t), nil, Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(), "not a matchup at all", Options{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRunSportDefaultAssumption(t *testing.T) {
	log := quietLogger()
	provider := teams.NewTableProvider(log)
	provider.Put(&models.TeamSnapshot{
		Name: "Kansas City Chiefs", Sport: models.SportFootball,
		Football: &models.FootballTeamStats{PointsFor: 27, PointsAgainst: 19, OffYards: 370, DefYards: 310, TurnoverDiff: 5},
	})
	provider.Put(&models.TeamSnapshot{
		Name: "Buffalo Bills", Sport: models.SportFootball,
		Football: &models.FootballTeamStats{PointsFor: 28, PointsAgainst: 18, OffYards: 380, DefYards: 305, TurnoverDiff: 6},
	})
	resolver := teams.NewResolver(provider, teams.ResolverConfig{}, log)
	orch := NewOrchestrator(estimator.New(resolver, log), nil, Defaults{}, log)

	result, err := orch.Run(context.Background(), "Chiefs at Bills -6.5", Options{})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, models.SportFootball, result.Parsing.Parsed.Sport)
	assert.Contains(t, result.Assumptions, "Sport assumed as football (no league detected)")
}

func TestRunTeamNotFoundCapturedInStep2(t *testing.T) {
	orch := NewOrchestrator(seededEstimator(t), nil, Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(),
		"NBA: Monstars vs Tune Squad, Tune Squad -3.5", Options{})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotNil(t, result.Probability)
	assert.False(t, result.Probability.Success)
	require.NotNil(t, result.Probability.Error)
	assert.Equal(t, models.ErrCodeTeamNotFound, result.Probability.Error.Code)

	// the pipeline stops before odds and staking
	assert.Nil(t, result.Kelly)
}

func TestRunWithOverrideStats(t *testing.T) {
	orch := NewOrchestrator(seededEstimator(t), nil, Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(), "NFL: Sharks vs Jets, Sharks -3.5", Options{
		TeamAStats: &models.TeamSnapshot{
			Name: "Sharks", Sport: models.SportFootball,
			Football: &models.FootballTeamStats{PointsFor: 30, PointsAgainst: 15, OffYards: 400, DefYards: 290, TurnoverDiff: 7},
		},
		TeamBStats: &models.TeamSnapshot{
			Name: "Jets", Sport: models.SportFootball,
			Football: &models.FootballTeamStats{PointsFor: 15, PointsAgainst: 28, OffYards: 300, DefYards: 390, TurnoverDiff: -6},
		},
		Bankroll:      2000,
		AmericanOdds:  -105,
		KellyFraction: 0.25,
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, "override", result.Probability.StatsSource)
	assert.False(t, result.Odds.OddsAssumed)
	assert.Equal(t, 2000.0, result.Kelly.Stake.Bankroll)
	assert.Equal(t, 0.25, result.Kelly.Stake.KellyFraction)

	// explicit odds, bankroll, and fraction leave only the venue assumption
	assert.Equal(t, []string{"Venue assumed neutral (not stated)"}, result.Assumptions)
}

func TestRunLogsBet(t *testing.T) {
	store := repository.NewMemoryBetStore()
	orch := NewOrchestrator(seededEstimator(t), store, Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(),
		"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks",
		Options{SessionID: "sess-42", LogBet: true, ActualWager: 20, Notes: "test wager"})
	require.NoError(t, err)
	require.True(t, result.Success)

	require.NotNil(t, result.Logging)
	assert.True(t, result.Logging.Success)

	records, err := store.Get(context.Background(), "sess-42")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hawks", records[0].Pick)
	assert.Equal(t, 20.0, records[0].ActualWager)
	assert.Equal(t, models.BetOutcomePending, records[0].Outcome)
	assert.Equal(t, "test wager", records[0].Notes)
}

func TestRunLoggingFailureDoesNotFailRun(t *testing.T) {
	// nil store with LogBet requested: step 5 records the failure, the
	// run still succeeds
	orch := NewOrchestrator(seededEstimator(t), nil, Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(),
		"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks",
		Options{LogBet: true})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.Logging)
	assert.False(t, result.Logging.Success)
	assert.NotEmpty(t, result.Logging.Error)
}

func TestRunUsesConfiguredDefaults(t *testing.T) {
	orch := NewOrchestrator(seededEstimator(t), nil,
		Defaults{Bankroll: 2500, KellyFraction: 0.25}, quietLogger())

	result, err := orch.Run(context.Background(),
		"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks", Options{})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 2500.0, result.Kelly.Stake.Bankroll)
	assert.Equal(t, 0.25, result.Kelly.Stake.KellyFraction)
	assert.Contains(t, result.Assumptions, "Bankroll defaulted to 2500")
	assert.Contains(t, result.Assumptions, "Kelly fraction defaulted to 0.25")
	assert.NotContains(t, result.Assumptions, "Kelly fraction defaulted to 0.25 (half Kelly)")
}

func TestRunEmitsComponentLogs(t *testing.T) {
	log := logrus.New()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)

	orch := NewOrchestrator(seededEstimator(t), nil, Defaults{}, log)

	_, err := orch.Run(context.Background(),
		"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks", Options{SessionID: "sess-log"})
	require.NoError(t, err)

	var messages []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "workflow", entry["component"])
		messages = append(messages, entry["msg"].(string))
	}
	assert.Contains(t, messages, "Matchup parsed")
	assert.Contains(t, messages, "Probability estimated")
	assert.Contains(t, messages, "Orchestration run completed")
}

type failingStore struct{}

func (failingStore) Append(ctx context.Context, sessionID string, record *models.BetRecord) error {
	return errors.New("disk on fire")
}
func (failingStore) Get(ctx context.Context, sessionID string) ([]*models.BetRecord, error) {
	return nil, errors.New("disk on fire")
}
func (failingStore) GetByID(ctx context.Context, id uuid.UUID) (*models.BetRecord, error) {
	return nil, errors.New("disk on fire")
}
func (failingStore) UpdateOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error {
	return errors.New("disk on fire")
}

func TestRunStoreErrorSwallowed(t *testing.T) {
	orch := NewOrchestrator(seededEstimator(t), failingStore{}, Defaults{}, quietLogger())

	result, err := orch.Run(context.Background(),
		"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks",
		Options{LogBet: true})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.Logging)
	assert.False(t, result.Logging.Success)
	assert.Contains(t, result.Logging.Error, "disk on fire")
}

func TestRecommendationText(t *testing.T) {
	noValue := &models.KellyStake{Probability: 45, ImpliedProbability: 52.4}
	assert.Contains(t, recommendation(noValue), "Recommended stake is 0")

	withValue := &models.KellyStake{
		HasValue: true, Stake: 27.50, StakePct: 2.75,
		AmericanOdds: -110, Edge: 2.9,
	}
	assert.Contains(t, recommendation(withValue), "27.50")
}

func TestFlipVenue(t *testing.T) {
	assert.Equal(t, models.VenueAway, flipVenue(models.VenueHome))
	assert.Equal(t, models.VenueHome, flipVenue(models.VenueAway))
	assert.Equal(t, models.VenueNeutral, flipVenue(models.VenueNeutral))
}
