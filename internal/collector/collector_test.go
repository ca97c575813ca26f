package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GapScanner/internal/model"
)

func screenFixture() (*Collector, time.Time) {
	// Tuesday 2020-03-24, a regular trading day.
	now := time.Date(2020, 3, 24, 10, 0, 0, 0, time.UTC)

	candles := make([]model.Candle, 30)
	for i := range candles {
		end := now.AddDate(0, 0, -(len(candles) - 1 - i))
		price := 100 + float64(i)
		candles[i] = model.Candle{
			Start:  end.Add(-24 * time.Hour),
			End:    end,
			Open:   price,
			Close:  price + 0.5,
			Low:    price - 1,
			High:   price + 1,
			Volume: int64(1000 * (i + 1)),
		}
	}

	brokerage := &MockBrokerage{
		SymbolIDs:  map[string]int{"AAPL": 8049},
		CandleData: candles,
		QuoteData:  &model.Quote{Symbol: "AAPL", SymbolID: 8049, LastTradePrice: 130.5},
	}
	indicators := &MockIndicators{Series: model.SMASeries{
		"2020-03-24": "128.5000", // the gapping date itself
		"2020-03-23": "127.9000",
		"2020-03-20": "127.1000",
	}}

	c := NewCollector(brokerage, indicators, []int{20}, 10, 10)
	c.Now = func() time.Time { return now }
	return c, now
}

func TestScreen(t *testing.T) {
	c, now := screenFixture()

	snap, err := c.Screen(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", snap.Ticker)
	assert.Equal(t, 8049, snap.SymbolID)
	assert.Equal(t, now.Format("2006-01-02"), snap.GapDate)
	assert.InDelta(t, 130.5, snap.Quote.LastTradePrice, 1e-9)

	// Candles are ascending by date, so the lowest low and highest high
	// of the last 10 candles belong to the two endpoints of that window.
	assert.InDelta(t, 119, snap.PivotLow.Value, 1e-9)
	assert.Equal(t, 9, snap.PivotLow.PeriodsAgo)
	assert.InDelta(t, 130, snap.PivotHigh.Value, 1e-9)
	assert.Equal(t, 0, snap.PivotHigh.PeriodsAgo)

	// Volumes 21000..30000 most recent first.
	assert.InDelta(t, 25500, snap.AvgVolume, 1e-9)

	assert.Equal(t, 30, snap.Candles.Nrow())
	assert.Contains(t, snap.Candles.Names(), "close_SMA_20")
}

func TestScreen_SMATablesExcludeGapDate(t *testing.T) {
	c, now := screenFixture()

	snap, err := c.Screen(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, snap.SMA, 1)

	sf := snap.SMA[0]
	assert.Equal(t, 2, sf.Nrow())
	dates := sf.Col("date").Records()
	assert.NotContains(t, dates, now.Format("2006-01-02"))
	assert.Equal(t, []string{"2020-03-23", "2020-03-20"}, dates)
}

func TestScreen_UnknownTicker(t *testing.T) {
	c, _ := screenFixture()

	_, err := c.Screen(context.Background(), "ZZZZ")
	require.ErrorIs(t, err, ErrNoExactMatch)
}

func TestScreen_InsufficientHistory(t *testing.T) {
	c, _ := screenFixture()
	c.PivotLookback = 500

	_, err := c.Screen(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pivots for AAPL")
}
