package staking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceddto100/edgeline/internal/models"
)

func TestAmericanToDecimal(t *testing.T) {
	assert.InDelta(t, 2.50, AmericanToDecimal(150), 1e-9)
	assert.InDelta(t, 1.6666666667, AmericanToDecimal(-150), 1e-9)
	assert.InDelta(t, 1.9090909091, AmericanToDecimal(-110), 1e-9)
	assert.InDelta(t, 2.0, AmericanToDecimal(100), 1e-9)
	assert.InDelta(t, 2.0, AmericanToDecimal(-100), 1e-9)
}

func TestImpliedProbability(t *testing.T) {
	assert.InDelta(t, 52.380952, ImpliedProbability(-110), 1e-4)
	assert.InDelta(t, 40.0, ImpliedProbability(150), 1e-9)
	assert.InDelta(t, 50.0, ImpliedProbability(100), 1e-9)
	assert.InDelta(t, 50.0, ImpliedProbability(-100), 1e-9)
}

func TestValidateOddsDeadZone(t *testing.T) {
	for _, odds := range []float64{0, 50, -50, 99.9, -99.9} {
		err := ValidateOdds(odds)
		require.NotNil(t, err, "odds=%v", odds)
		assert.Equal(t, models.ErrCodeInvalidOdds, err.Code)
	}

	// even money endpoints are legitimate quotes
	assert.Nil(t, ValidateOdds(100))
	assert.Nil(t, ValidateOdds(-100))
	assert.Nil(t, ValidateOdds(-110))
	assert.Nil(t, ValidateOdds(250))
}

func TestValidateOddsNonFinite(t *testing.T) {
	assert.NotNil(t, ValidateOdds(math.NaN()))
	assert.NotNil(t, ValidateOdds(math.Inf(1)))
}

func TestValidateBankroll(t *testing.T) {
	assert.Nil(t, ValidateBankroll(1000))
	assert.Nil(t, ValidateBankroll(0.01))

	for _, br := range []float64{0, -5, math.NaN(), math.Inf(1), 2e9} {
		err := ValidateBankroll(br)
		require.NotNil(t, err, "bankroll=%v", br)
		assert.Equal(t, models.ErrCodeInvalidBankroll, err.Code)
	}
}

func TestCalculateNoEdge(t *testing.T) {
	// 45% true probability cannot beat the 52.38% the juice implies
	stake, derr := Calculate(1000, -110, 45, 1.0)
	require.Nil(t, derr)

	assert.False(t, stake.HasValue)
	assert.Equal(t, 0.0, stake.Stake)
	assert.Equal(t, 0.0, stake.StakePct)
	assert.Less(t, stake.Edge, 0.0)
}

func TestCalculatePositiveEdge(t *testing.T) {
	// full Kelly at 55% against -110: b = 10/11, f = (b*0.55 - 0.45)/b = 0.055
	stake, derr := Calculate(1000, -110, 55, 1.0)
	require.Nil(t, derr)

	require.True(t, stake.HasValue)
	assert.InDelta(t, 55.0, stake.Stake, 0.01)
	assert.InDelta(t, 5.5, stake.StakePct, 0.001)
	assert.InDelta(t, 55.0-52.380952, stake.Edge, 1e-4)
	assert.False(t, stake.LastCalculated.IsZero())
}

func TestCalculateLinearInFraction(t *testing.T) {
	full, derr := Calculate(1000, -110, 55, 1.0)
	require.Nil(t, derr)
	half, derr := Calculate(1000, -110, 55, 0.5)
	require.Nil(t, derr)
	quarter, derr := Calculate(1000, -110, 55, 0.25)
	require.Nil(t, derr)

	assert.InDelta(t, full.Stake/2, half.Stake, 0.01)
	assert.InDelta(t, full.Stake/4, quarter.Stake, 0.01)
	assert.InDelta(t, full.StakePct/2, half.StakePct, 1e-9)
}

func TestCalculateMonotoneInProbability(t *testing.T) {
	prev := -1.0
	for _, p := range []float64{53, 55, 58, 62, 70} {
		stake, derr := Calculate(1000, -110, p, 0.5)
		require.Nil(t, derr)
		assert.Greater(t, stake.Stake, prev, "p=%v", p)
		prev = stake.Stake
	}
}

func TestCalculateCertaintyCap(t *testing.T) {
	// 100% probability is full Kelly on the whole bankroll
	stake, derr := Calculate(1000, 150, 100, 1.0)
	require.Nil(t, derr)
	assert.InDelta(t, 1000.0, stake.Stake, 0.01)
	assert.InDelta(t, 100.0, stake.StakePct, 1e-9)
}

func TestCalculateValidationOrder(t *testing.T) {
	// bankroll is checked before odds, odds before probability
	_, derr := Calculate(-1, 0, 200, 5)
	require.NotNil(t, derr)
	assert.Equal(t, models.ErrCodeInvalidBankroll, derr.Code)

	_, derr = Calculate(1000, 0, 200, 5)
	require.NotNil(t, derr)
	assert.Equal(t, models.ErrCodeInvalidOdds, derr.Code)

	_, derr = Calculate(1000, -110, 200, 5)
	require.NotNil(t, derr)
	assert.Equal(t, models.ErrCodeInvalidInput, derr.Code)

	_, derr = Calculate(1000, -110, 55, 5)
	require.NotNil(t, derr)
	assert.Equal(t, models.ErrCodeInvalidInput, derr.Code)
}

func TestCalculateRejectsBadFraction(t *testing.T) {
	for _, f := range []float64{0, -0.5, 1.5} {
		_, derr := Calculate(1000, -110, 55, f)
		assert.NotNil(t, derr, "fraction=%v", f)
	}
}

func TestCalculateStakeRoundedToCents(t *testing.T) {
	stake, derr := Calculate(777.77, -105, 56.3, 0.5)
	require.Nil(t, derr)
	require.True(t, stake.HasValue)
	assert.InDelta(t, stake.Stake, math.Round(stake.Stake*100)/100, 1e-9)
}
