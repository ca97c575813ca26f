package calculator

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"GapScanner/internal/model"
)

// SMAFrame tabulates a moving-average series into rows of
// (ticker, date, gapping_date, SMA_{period}), ordered most-recent-first.
// The row for the gapping date itself is dropped: that period is still in
// progress and keeping it would leak look-ahead data into the analysis.
func SMAFrame(sma model.SMASeries, period int, ticker, gapDate string) (dataframe.DataFrame, error) {
	dates := make([]string, 0, len(sma))
	for d := range sma {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	vals := make([]float64, len(dates))
	tickers := make([]string, len(dates))
	gaps := make([]string, len(dates))
	for i, d := range dates {
		v, err := strconv.ParseFloat(sma[d], 64)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("parse SMA value for %s: %w", d, err)
		}
		vals[i] = v
		tickers[i] = ticker
		gaps[i] = gapDate
	}

	df := dataframe.New(
		series.New(tickers, series.String, "ticker"),
		series.New(dates, series.String, "date"),
		series.New(gaps, series.String, "gapping_date"),
		series.New(vals, series.Float, fmt.Sprintf("SMA_%d", period)),
	)
	if df.Error() != nil {
		return df, fmt.Errorf("build SMA frame: %w", df.Error())
	}
	if df.Nrow() == 0 {
		return df, nil
	}

	out := df.Filter(dataframe.F{Colname: "date", Comparator: series.Neq, Comparando: gapDate})
	if out.Error() != nil {
		return out, fmt.Errorf("drop gapping date: %w", out.Error())
	}
	return out, nil
}
