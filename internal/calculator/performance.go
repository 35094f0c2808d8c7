package calculator

import "math"

// tradingDaysPerYear is the fixed annualization base for the Sharpe ratio.
// Kept constant regardless of the actual sampling frequency of the input
// so historical results stay comparable.
const tradingDaysPerYear = 252

// CalculateSharpeRatio returns the annualized Sharpe ratio of a daily PnL
// series: mean/stddev * sqrt(252). When the series is empty or has zero
// variance the ratio is undefined and NaN is returned; this is an expected
// outcome (e.g. no signals ever fired), not an error.
func CalculateSharpeRatio(dailyPnL []float64) float64 {
	if len(dailyPnL) == 0 {
		return math.NaN()
	}
	mean := 0.0
	for _, v := range dailyPnL {
		mean += v
	}
	mean /= float64(len(dailyPnL))

	std := sampleStdDev(dailyPnL)
	if std == 0 {
		return math.NaN()
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}
