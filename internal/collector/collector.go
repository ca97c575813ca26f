package collector

import (
	"context"
	"fmt"
	"time"

	"GapScanner/internal/calculator"
	"GapScanner/internal/calendar"
	"GapScanner/internal/model"
)

// BrokerageSource is the slice of the brokerage client the screen needs.
type BrokerageSource interface {
	SymbolID(ctx context.Context, ticker string) (int, error)
	Candles(ctx context.Context, symbolID int, startDate, endDate string, granularity Granularity) ([]model.Candle, error)
	Quote(ctx context.Context, symbolID int) (*model.Quote, error)
	Name() string
}

// IndicatorSource supplies externally computed indicator series.
type IndicatorSource interface {
	SMA(ctx context.Context, ticker string, interval Interval, timePeriod int, seriesType SeriesType) (model.SMASeries, error)
	Name() string
}

// Collector runs one screen pass over a ticker: resolve the symbol, pull a
// year of daily candles and a quote, tabulate them, and attach pivots,
// average volume, and moving-average tables.
type Collector struct {
	Brokerage  BrokerageSource
	Indicators IndicatorSource

	// SMAPeriods are the moving-average window sizes, used both for the
	// local close-price columns and the provider-computed series.
	SMAPeriods []int
	// PivotLookback and VolumeLookback are in trading days.
	PivotLookback  int
	VolumeLookback int

	// Now is an injectable clock; nil means time.Now.
	Now func() time.Time
}

// NewCollector creates a Collector with the given lookback settings.
func NewCollector(brokerage BrokerageSource, indicators IndicatorSource, smaPeriods []int, pivotLookback, volumeLookback int) *Collector {
	return &Collector{
		Brokerage:      brokerage,
		Indicators:     indicators,
		SMAPeriods:     smaPeriods,
		PivotLookback:  pivotLookback,
		VolumeLookback: volumeLookback,
	}
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Screen collects and normalizes everything the daily screen needs for one
// ticker. Today is the gapping date: it is excluded from the historical
// moving-average tables.
func (c *Collector) Screen(ctx context.Context, ticker string) (*model.Snapshot, error) {
	yearAgo, today, tomorrow := calendar.TradingDateRange(c.now())

	symbolID, err := c.Brokerage.SymbolID(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ticker, err)
	}
	candles, err := c.Brokerage.Candles(ctx, symbolID, yearAgo, tomorrow, GranularityOneDay)
	if err != nil {
		return nil, fmt.Errorf("candles for %s: %w", ticker, err)
	}
	quote, err := c.Brokerage.Quote(ctx, symbolID)
	if err != nil {
		return nil, fmt.Errorf("quote for %s: %w", ticker, err)
	}

	frame := calculator.CandlesFrame(candles)
	frame, err = calculator.AddMovingAverageColumns(frame, "close", c.SMAPeriods...)
	if err != nil {
		return nil, fmt.Errorf("moving averages for %s: %w", ticker, err)
	}

	// Pivots and volume look back from the most recent candle.
	lows, highs, volumes := recentFirst(candles)
	pivotLow, pivotHigh, err := calculator.Pivots(lows, highs, c.PivotLookback)
	if err != nil {
		return nil, fmt.Errorf("pivots for %s: %w", ticker, err)
	}
	avgVolume, err := calculator.AverageVolume(volumes, c.VolumeLookback)
	if err != nil {
		return nil, fmt.Errorf("average volume for %s: %w", ticker, err)
	}

	snap := &model.Snapshot{
		Ticker:    ticker,
		SymbolID:  symbolID,
		GapDate:   today,
		Quote:     quote,
		Candles:   frame,
		PivotLow:  pivotLow,
		PivotHigh: pivotHigh,
		AvgVolume: avgVolume,
	}
	for _, period := range c.SMAPeriods {
		series, err := c.Indicators.SMA(ctx, ticker, IntervalDaily, period, SeriesClose)
		if err != nil {
			return nil, fmt.Errorf("SMA %d for %s: %w", period, ticker, err)
		}
		sf, err := calculator.SMAFrame(series, period, ticker, today)
		if err != nil {
			return nil, fmt.Errorf("SMA table %d for %s: %w", period, ticker, err)
		}
		snap.SMA = append(snap.SMA, sf)
	}
	return snap, nil
}

// recentFirst extracts low, high, and volume series ordered most-recent-
// first, the ordering Pivots and AverageVolume expect.
func recentFirst(candles []model.Candle) (lows, highs, volumes []float64) {
	n := len(candles)
	lows = make([]float64, n)
	highs = make([]float64, n)
	volumes = make([]float64, n)
	for i, c := range candles {
		lows[n-1-i] = c.Low
		highs[n-1-i] = c.High
		volumes[n-1-i] = float64(c.Volume)
	}
	return lows, highs, volumes
}
