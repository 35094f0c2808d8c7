package calculator

import (
	"errors"
	"math"
)

// CalculateRollingMean computes the trailing arithmetic mean over the given
// window. The result has len(values)-window+1 entries: entry i corresponds
// to values[i+window-1], the first index with a full window of history.
func CalculateRollingMean(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(values) < window {
		return nil, errors.New("not enough data for rolling mean")
	}
	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// CalculateRollingStdDev computes the trailing sample standard deviation
// (N-1 denominator) over the given window, aligned like CalculateRollingMean.
// A window of 1 has no measurable variance and yields 0 for every entry.
func CalculateRollingStdDev(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(values) < window {
		return nil, errors.New("not enough data for rolling std")
	}
	out := make([]float64, 0, len(values)-window+1)
	for i := window - 1; i < len(values); i++ {
		out = append(out, sampleStdDev(values[i-window+1:i+1]))
	}
	return out, nil
}

func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
