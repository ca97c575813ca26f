package calculator

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"GapScanner/internal/model"
)

// CandlesFrame tabulates raw candles into a frame with one row per period,
// preserving input order. The date and time columns are split out of each
// candle's end timestamp.
func CandlesFrame(candles []model.Candle) dataframe.DataFrame {
	n := len(candles)
	starts := make([]string, n)
	ends := make([]string, n)
	opens := make([]float64, n)
	closes := make([]float64, n)
	lows := make([]float64, n)
	highs := make([]float64, n)
	volumes := make([]int, n)
	vwaps := make([]float64, n)
	dates := make([]string, n)
	times := make([]string, n)

	for i, c := range candles {
		starts[i] = c.Start.Format(time.RFC3339)
		ends[i] = c.End.Format(time.RFC3339)
		opens[i] = c.Open
		closes[i] = c.Close
		lows[i] = c.Low
		highs[i] = c.High
		volumes[i] = int(c.Volume)
		vwaps[i] = c.VWAP
		dates[i] = c.End.Format("2006-01-02")
		times[i] = c.End.Format("15:04:05")
	}

	return dataframe.New(
		series.New(starts, series.String, "start"),
		series.New(ends, series.String, "end"),
		series.New(opens, series.Float, "open"),
		series.New(closes, series.Float, "close"),
		series.New(lows, series.Float, "low"),
		series.New(highs, series.Float, "high"),
		series.New(volumes, series.Int, "volume"),
		series.New(vwaps, series.Float, "VWAP"),
		series.New(dates, series.String, "date"),
		series.New(times, series.String, "time"),
	)
}
