package calculator

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeFrame(closes []float64) dataframe.DataFrame {
	return dataframe.New(series.New(closes, series.Float, "close"))
}

func TestAddMovingAverageColumns(t *testing.T) {
	df := closeFrame([]float64{10, 20, 30, 40})

	out, err := AddMovingAverageColumns(df, "close", 3)
	require.NoError(t, err)
	require.NoError(t, out.Error())

	require.Contains(t, out.Names(), "close_SMA_3")
	vals := out.Col("close_SMA_3").Float()
	require.Len(t, vals, 4)
	assert.True(t, math.IsNaN(vals[0]))
	assert.True(t, math.IsNaN(vals[1]))
	assert.InDelta(t, 20, vals[2], 1e-9)
	assert.InDelta(t, 30, vals[3], 1e-9)
}

func TestAddMovingAverageColumns_MultipleWindows(t *testing.T) {
	df := closeFrame([]float64{1, 2, 3, 4, 5, 6})

	out, err := AddMovingAverageColumns(df, "close", 2, 4)
	require.NoError(t, err)

	assert.Contains(t, out.Names(), "close_SMA_2")
	assert.Contains(t, out.Names(), "close_SMA_4")

	sma2 := out.Col("close_SMA_2").Float()
	assert.InDelta(t, 1.5, sma2[1], 1e-9)
	assert.InDelta(t, 5.5, sma2[5], 1e-9)

	sma4 := out.Col("close_SMA_4").Float()
	assert.True(t, math.IsNaN(sma4[2]))
	assert.InDelta(t, 2.5, sma4[3], 1e-9)
	assert.InDelta(t, 4.5, sma4[5], 1e-9)
}

func TestAddMovingAverageColumns_DoesNotMutateInput(t *testing.T) {
	df := closeFrame([]float64{10, 20, 30, 40})

	_, err := AddMovingAverageColumns(df, "close", 3)
	require.NoError(t, err)

	assert.NotContains(t, df.Names(), "close_SMA_3")
	assert.Equal(t, 1, df.Ncol())
}

func TestAddMovingAverageColumns_UnknownColumn(t *testing.T) {
	df := closeFrame([]float64{10, 20})

	_, err := AddMovingAverageColumns(df, "volume", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume")
}

func TestAddMovingAverageColumns_InvalidWindow(t *testing.T) {
	df := closeFrame([]float64{10, 20})

	_, err := AddMovingAverageColumns(df, "close", 0)
	require.Error(t, err)
}
