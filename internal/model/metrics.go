package model

import "time"

// MetricsSummary holds the aggregate performance metrics for one run.
type MetricsSummary struct {
	// YearlyYield is the final cumulative PnL. The name follows the
	// default one-year input window; no annualization is applied.
	YearlyYield    float64
	NumBuySignals  int
	NumSellSignals int
	// SharpeRatio is NaN when the daily PnL series has no variance.
	SharpeRatio float64
	// HoldingPeriods are the gaps between consecutive non-hold signal
	// dates. The first entry is always zero.
	HoldingPeriods []time.Duration
}
