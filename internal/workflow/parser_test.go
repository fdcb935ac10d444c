package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceddto100/edgeline/internal/models"
)

func TestParseMatchupTextFull(t *testing.T) {
	parsed, err := ParseMatchupText("NBA: Heat vs Hawks, Hawks -3.5, taking Hawks")
	require.NoError(t, err)

	assert.Equal(t, models.SportBasketball, parsed.Sport)
	assert.True(t, parsed.SportExplicit)
	assert.Equal(t, "Heat", parsed.TeamA)
	assert.Equal(t, "Hawks", parsed.TeamB)
	assert.Equal(t, "Hawks", parsed.Pick)
	assert.Equal(t, -3.5, parsed.Spread)
	assert.Equal(t, models.VenueNeutral, parsed.Venue)
	assert.False(t, parsed.VenueExplicit)
}

func TestParseMatchupTextSpreadFlipsForOtherPick(t *testing.T) {
	parsed, err := ParseMatchupText("NBA: Heat vs Hawks, Hawks -3.5, taking Heat")
	require.NoError(t, err)

	// the line was quoted for the Hawks; backing the Heat takes the points
	assert.Equal(t, "Heat", parsed.Pick)
	assert.Equal(t, 3.5, parsed.Spread)
}

func TestParseMatchupTextAtSeparator(t *testing.T) {
	parsed, err := ParseMatchupText("Chiefs at Bills -6.5")
	require.NoError(t, err)

	assert.Equal(t, "Chiefs", parsed.TeamA)
	assert.Equal(t, "Bills", parsed.TeamB)
	assert.Equal(t, models.VenueAway, parsed.Venue)
	assert.True(t, parsed.VenueExplicit)

	// no pick clause: defaults to the side the line was quoted against
	assert.Equal(t, "Bills", parsed.Pick)
	assert.Equal(t, -6.5, parsed.Spread)

	// no league tag or keyword anywhere
	assert.Equal(t, models.Sport(""), parsed.Sport)
	assert.False(t, parsed.SportExplicit)
}

func TestParseMatchupTextHockeyTotal(t *testing.T) {
	parsed, err := ParseMatchupText("NHL: Rangers vs Bruins over 6.5")
	require.NoError(t, err)

	assert.Equal(t, models.SportHockey, parsed.Sport)
	assert.Equal(t, "Rangers", parsed.TeamA)
	assert.Equal(t, "Bruins", parsed.TeamB)
	assert.Equal(t, 6.5, parsed.Spread)
	assert.Equal(t, "Rangers", parsed.Pick)
}

func TestParseMatchupTextVenueKeyword(t *testing.T) {
	parsed, err := ParseMatchupText("NBA: Heat vs Hawks, Hawks -3.5, home game")
	require.NoError(t, err)

	assert.Equal(t, "Hawks", parsed.TeamB)
	assert.Equal(t, models.VenueHome, parsed.Venue)
	assert.True(t, parsed.VenueExplicit)
}

func TestParseMatchupTextNeutralKeyword(t *testing.T) {
	parsed, err := ParseMatchupText("NFL: Chiefs vs Eagles -1.5, neutral site")
	require.NoError(t, err)

	assert.Equal(t, models.VenueNeutral, parsed.Venue)
	assert.True(t, parsed.VenueExplicit)
}

func TestParseMatchupTextErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no separator", "Hawks -3.5 all day"},
		{"no spread", "Heat vs Hawks tonight"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMatchupText(tc.text)
			assert.Error(t, err)
		})
	}
}

func TestParseMatchupTextPickThe(t *testing.T) {
	parsed, err := ParseMatchupText("NBA: Heat vs Hawks, Hawks -3.5, backing the Hawks")
	require.NoError(t, err)
	assert.Equal(t, "Hawks", parsed.Pick)
	assert.Equal(t, -3.5, parsed.Spread)
}

func TestSameTeamToken(t *testing.T) {
	assert.True(t, sameTeamToken("Hawks", "hawks"))
	assert.True(t, sameTeamToken("Atlanta Hawks", "Hawks"))
	assert.False(t, sameTeamToken("Hawks", "Heat"))
	assert.False(t, sameTeamToken("", "Hawks"))
}
