package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivots(t *testing.T) {
	// Most-recent-first ordering: index is "periods ago".
	lows := []float64{10.5, 9.8, 11.2, 9.1, 12.0}
	highs := []float64{12.0, 13.5, 12.8, 14.1, 13.0}

	low, high, err := Pivots(lows, highs, 4)
	require.NoError(t, err)

	assert.Equal(t, 9.1, low.Value)
	assert.Equal(t, 3, low.PeriodsAgo)
	assert.Equal(t, 14.1, high.Value)
	assert.Equal(t, 3, high.PeriodsAgo)
}

func TestPivots_WindowExcludesLaterExtrema(t *testing.T) {
	lows := []float64{10, 9, 8, 1, 1}
	highs := []float64{10, 11, 12, 99, 99}

	low, high, err := Pivots(lows, highs, 3)
	require.NoError(t, err)

	assert.Equal(t, 8.0, low.Value)
	assert.Equal(t, 2, low.PeriodsAgo)
	assert.Equal(t, 12.0, high.Value)
	assert.Equal(t, 2, high.PeriodsAgo)
}

func TestPivots_TieKeepsMostRecent(t *testing.T) {
	lows := []float64{5, 3, 3, 4}
	highs := []float64{7, 9, 9, 8}

	low, high, err := Pivots(lows, highs, 4)
	require.NoError(t, err)

	assert.Equal(t, 1, low.PeriodsAgo)
	assert.Equal(t, 1, high.PeriodsAgo)
}

func TestPivots_InsufficientData(t *testing.T) {
	lows := []float64{1, 2}
	highs := []float64{3, 4}

	_, _, err := Pivots(lows, highs, 3)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPivots_InvalidLookback(t *testing.T) {
	_, _, err := Pivots([]float64{1}, []float64{2}, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientData)
}

func TestAverageVolume(t *testing.T) {
	volumes := []float64{100, 200, 300, 400}

	avg, err := AverageVolume(volumes, 3)
	require.NoError(t, err)
	assert.InDelta(t, 200, avg, 1e-9)

	avg, err = AverageVolume(volumes, 4)
	require.NoError(t, err)
	assert.InDelta(t, 250, avg, 1e-9)
}

func TestAverageVolume_InsufficientData(t *testing.T) {
	_, err := AverageVolume([]float64{100, 200}, 5)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestRollingMean(t *testing.T) {
	got := rollingMean([]float64{10, 20, 30, 40}, 3)
	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 20, got[2], 1e-9)
	assert.InDelta(t, 30, got[3], 1e-9)
}
