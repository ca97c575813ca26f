package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GapScanner/internal/model"
)

func TestCandlesFrame(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	candles := []model.Candle{
		{
			Start:  time.Date(2020, 3, 23, 9, 30, 0, 0, loc),
			End:    time.Date(2020, 3, 23, 16, 0, 0, 0, loc),
			Open:   100.5, Close: 101.2, Low: 99.8, High: 102.0,
			Volume: 1500000, VWAP: 100.9,
		},
		{
			Start:  time.Date(2020, 3, 24, 9, 30, 0, 0, loc),
			End:    time.Date(2020, 3, 24, 16, 0, 0, 0, loc),
			Open:   101.0, Close: 103.4, Low: 100.7, High: 103.9,
			Volume: 1800000, VWAP: 102.3,
		},
	}

	df := CandlesFrame(candles)
	require.NoError(t, df.Error())
	require.Equal(t, 2, df.Nrow())

	assert.Equal(t, []string{
		"start", "end", "open", "close", "low", "high", "volume", "VWAP", "date", "time",
	}, df.Names())

	// Input order preserved; date and time derived from end.
	assert.Equal(t, []string{"2020-03-23", "2020-03-24"}, df.Col("date").Records())
	assert.Equal(t, []string{"16:00:00", "16:00:00"}, df.Col("time").Records())
	assert.InDelta(t, 101.2, df.Col("close").Elem(0).Float(), 1e-9)
	assert.InDelta(t, 103.4, df.Col("close").Elem(1).Float(), 1e-9)
}

func TestCandlesFrame_WithMovingAverages(t *testing.T) {
	candles := make([]model.Candle, 5)
	end := time.Date(2020, 3, 20, 16, 0, 0, 0, time.UTC)
	for i := range candles {
		candles[i] = model.Candle{
			Start: end.Add(-7 * time.Hour), End: end,
			Open: 10, Close: float64(10 * (i + 1)), Low: 9, High: 11,
			Volume: 1000, VWAP: 10,
		}
		end = end.AddDate(0, 0, 1)
	}

	df := CandlesFrame(candles)
	out, err := AddMovingAverageColumns(df, "close", 2)
	require.NoError(t, err)

	vals := out.Col("close_SMA_2").Float()
	assert.InDelta(t, 15, vals[1], 1e-9)
	assert.InDelta(t, 45, vals[4], 1e-9)
}
