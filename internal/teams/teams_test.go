package teams

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceddto100/edgeline/internal/models"
)

func nbaProvider(t *testing.T) *TableProvider {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	p := NewTableProvider(log)
	for _, team := range []struct {
		name, abbrev string
	}{
		{"Los Angeles Lakers", "LAL"},
		{"Miami Heat", "MIA"},
		{"Atlanta Hawks", "ATL"},
		{"Boston Celtics", "BOS"},
		{"Montréal Canadiens Test", "MTL"},
	} {
		p.Put(&models.TeamSnapshot{
			Name:         team.name,
			Abbreviation: team.abbrev,
			Sport:        models.SportBasketball,
			Basketball: &models.BasketballTeamStats{
				PointsFor: 112, PointsAgainst: 110, FieldGoalPct: 0.47,
				ThreePtPct: 0.36, Pace: 99,
			},
		})
	}
	return p
}

func testResolver(t *testing.T) *Resolver {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return NewResolver(nbaProvider(t), ResolverConfig{}, log)
}

func TestResolveExactName(t *testing.T) {
	r := testResolver(t)
	snap, err := r.Resolve(context.Background(), models.SportBasketball, "Miami Heat")
	require.NoError(t, err)
	assert.Equal(t, "Miami Heat", snap.Name)
}

func TestResolveExactAbbreviation(t *testing.T) {
	r := testResolver(t)
	snap, err := r.Resolve(context.Background(), models.SportBasketball, "lal")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles Lakers", snap.Name)
}

func TestResolveLastWord(t *testing.T) {
	r := testResolver(t)
	snap, err := r.Resolve(context.Background(), models.SportBasketball, "Lakers")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles Lakers", snap.Name)
}

func TestResolveFuzzyTypo(t *testing.T) {
	r := testResolver(t)
	snap, err := r.Resolve(context.Background(), models.SportBasketball, "Celtcs")
	require.NoError(t, err)
	assert.Equal(t, "Boston Celtics", snap.Name)
}

func TestResolveCaseAndWhitespace(t *testing.T) {
	r := testResolver(t)
	snap, err := r.Resolve(context.Background(), models.SportBasketball, "  atlanta   HAWKS ")
	require.NoError(t, err)
	assert.Equal(t, "Atlanta Hawks", snap.Name)
}

func TestResolveStripsDiacritics(t *testing.T) {
	r := testResolver(t)
	snap, err := r.Resolve(context.Background(), models.SportBasketball, "Montreal Canadiens Test")
	require.NoError(t, err)
	assert.Equal(t, "Montréal Canadiens Test", snap.Name)
}

func TestResolveNotFoundCarriesSuggestions(t *testing.T) {
	r := testResolver(t)
	_, err := r.Resolve(context.Background(), models.SportBasketball, "Zzyzx Quasars")
	require.Error(t, err)

	derr, ok := models.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, models.ErrCodeTeamNotFound, derr.Code)

	suggestions, ok := derr.Details["suggestions"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 5)
}

func TestResolveEmptyQuery(t *testing.T) {
	r := testResolver(t)
	_, err := r.Resolve(context.Background(), models.SportBasketball, "   ")
	require.Error(t, err)
}

func TestDiceCoefficient(t *testing.T) {
	assert.Equal(t, 1.0, diceCoefficient("hawks", "hawks"))
	assert.Equal(t, 0.0, diceCoefficient("a", "hawks"))
	assert.Greater(t, diceCoefficient("celtics", "celtcs"), 0.6)
	assert.Less(t, diceCoefficient("lakers", "heat"), 0.3)
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "miami heat", keyFor("  Miami   HEAT "))
	assert.Equal(t, "montreal", keyFor("Montréal"))
}

func TestNormalizeMatchupArgsAliases(t *testing.T) {
	req, derr := NormalizeMatchupArgs(ArgBag{
		"sport":     "nba",
		"favorite":  "Hawks",
		"underdog":  "Heat",
		"spread":    -3.5,
		"venue":     "home",
	})
	require.Nil(t, derr)
	assert.Equal(t, models.SportBasketball, req.Sport)
	assert.Equal(t, "Hawks", req.TeamA)
	assert.Equal(t, "Heat", req.TeamB)
	assert.Equal(t, -3.5, req.Line)
	assert.Equal(t, models.VenueHome, req.Venue)
}

func TestNormalizeMatchupArgsDefaultsVenueNeutral(t *testing.T) {
	req, derr := NormalizeMatchupArgs(ArgBag{
		"team_a": "Hawks",
		"team_b": "Heat",
		"line":   "-3.5",
	})
	require.Nil(t, derr)
	assert.Equal(t, models.VenueNeutral, req.Venue)
	assert.Equal(t, -3.5, req.Line)
}

func TestNormalizeMatchupArgsRequiresBothTeams(t *testing.T) {
	_, derr := NormalizeMatchupArgs(ArgBag{"team_a": "Hawks"})
	require.NotNil(t, derr)
	assert.Equal(t, models.ErrCodeInvalidInput, derr.Code)
}

func TestNormalizeMatchupArgsRejectsUnknownVenue(t *testing.T) {
	_, derr := NormalizeMatchupArgs(ArgBag{
		"team_a": "Hawks", "team_b": "Heat", "venue": "moon",
	})
	require.NotNil(t, derr)
}

func TestTableProviderLookupIsCaseInsensitive(t *testing.T) {
	p := nbaProvider(t)
	snap, err := p.Lookup(context.Background(), models.SportBasketball, "MIAMI HEAT")
	require.NoError(t, err)
	assert.Equal(t, "Miami Heat", snap.Name)
}

func TestTableProviderAllFiltersBySport(t *testing.T) {
	p := nbaProvider(t)
	p.Put(&models.TeamSnapshot{
		Name: "Kansas City Chiefs", Sport: models.SportFootball,
		Football: &models.FootballTeamStats{PointsFor: 27, PointsAgainst: 19, OffYards: 370, DefYards: 310},
	})

	nba, err := p.All(context.Background(), models.SportBasketball)
	require.NoError(t, err)
	assert.Len(t, nba, 5)

	nfl, err := p.All(context.Background(), models.SportFootball)
	require.NoError(t, err)
	assert.Len(t, nfl, 1)
}
