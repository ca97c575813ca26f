package calculator

import (
	"errors"
	"fmt"

	"GapScanner/internal/model"
)

// ErrInsufficientData is returned when a calculation is asked to look back
// over more periods than the input provides.
var ErrInsufficientData = errors.New("not enough data points")

// Pivots scans the first n elements of the low and high series and returns
// the support (lowest low) and resistance (highest high) together with
// their lag in periods. Inputs are ordered most-recent-first, so a lag of
// 0 means the extremum sits in the current period. Ties resolve to the
// most recent occurrence.
func Pivots(lows, highs []float64, n int) (low, high model.PivotPoint, err error) {
	if n <= 0 {
		return low, high, fmt.Errorf("lookback must be positive, got %d", n)
	}
	if len(lows) < n || len(highs) < n {
		return low, high, fmt.Errorf("%w: need %d periods, have %d lows and %d highs",
			ErrInsufficientData, n, len(lows), len(highs))
	}

	low = model.PivotPoint{Value: lows[0]}
	high = model.PivotPoint{Value: highs[0]}
	for i := 1; i < n; i++ {
		if lows[i] < low.Value {
			low = model.PivotPoint{Value: lows[i], PeriodsAgo: i}
		}
		if highs[i] > high.Value {
			high = model.PivotPoint{Value: highs[i], PeriodsAgo: i}
		}
	}
	return low, high, nil
}

// AverageVolume returns the arithmetic mean of the first n elements of the
// volume series.
func AverageVolume(volumes []float64, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("lookback must be positive, got %d", n)
	}
	if len(volumes) < n {
		return 0, fmt.Errorf("%w: need %d periods, have %d", ErrInsufficientData, n, len(volumes))
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += volumes[i]
	}
	return sum / float64(n), nil
}
