package model

import "github.com/go-gota/gota/dataframe"

// SMASeries maps a date string ("2006-01-02") to the indicator value for
// that date, as returned by the market-data provider.
type SMASeries map[string]string

// PivotPoint is an extremum over a lookback window together with how many
// periods ago it occurred (0 = most recent period).
type PivotPoint struct {
	Value      float64
	PeriodsAgo int
}

// Snapshot is the result of screening one ticker on one gapping date.
type Snapshot struct {
	Ticker   string
	SymbolID int
	GapDate  string

	Quote     *Quote
	Candles   dataframe.DataFrame
	SMA       []dataframe.DataFrame
	PivotLow  PivotPoint
	PivotHigh PivotPoint
	AvgVolume float64
}
