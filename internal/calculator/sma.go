package calculator

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// AddMovingAverageColumns returns a copy of df with one extra column per
// window, named "{column}_SMA_{w}" and holding the trailing simple moving
// average of that column. The first w-1 rows of each new column are NaN,
// since a trailing window is undefined there. The input frame is not
// modified.
func AddMovingAverageColumns(df dataframe.DataFrame, column string, windows ...int) (dataframe.DataFrame, error) {
	if df.Error() != nil {
		return df, fmt.Errorf("invalid frame: %w", df.Error())
	}
	if !hasColumn(df, column) {
		return df, fmt.Errorf("column %q not found in frame", column)
	}

	vals := df.Col(column).Float()
	out := df
	for _, w := range windows {
		if w <= 0 {
			return df, fmt.Errorf("window must be positive, got %d", w)
		}
		name := fmt.Sprintf("%s_SMA_%d", column, w)
		out = out.Mutate(series.New(rollingMean(vals, w), series.Float, name))
		if out.Error() != nil {
			return df, fmt.Errorf("add column %s: %w", name, out.Error())
		}
	}
	return out, nil
}

func hasColumn(df dataframe.DataFrame, column string) bool {
	for _, name := range df.Names() {
		if name == column {
			return true
		}
	}
	return false
}

func rollingMean(vals []float64, w int) []float64 {
	out := make([]float64, len(vals))
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= w {
			sum -= vals[i-w]
		}
		if i >= w-1 {
			out[i] = sum / float64(w)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
