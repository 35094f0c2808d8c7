package strategy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"MeanSentinel/internal/calculator"
	"MeanSentinel/internal/model"
)

// ErrNoData indicates the input series was empty. Callers should treat it
// as "nothing to show", not as a fault.
var ErrNoData = errors.New("no price data")

// Compute derives the annotated mean-reversion series and its metrics
// summary from a daily price series. It is a pure function: no I/O, no
// logging, no shared state, so results may be memoized on
// (symbol, window, threshold, date range).
//
// Rows without a full rolling window of history are dropped entirely
// rather than filled with placeholder statistics; filling would bias the
// early z-scores. A series shorter than the window therefore produces an
// empty result with a nil error.
func Compute(series *model.PriceSeries, window int, threshold float64) (rows []model.AnnotatedRow, summary *model.MetricsSummary, err error) {
	// Nothing here should panic, but the contract is that no fault
	// escapes to the caller as anything but an error.
	defer func() {
		if r := recover(); r != nil {
			rows, summary = nil, nil
			err = fmt.Errorf("signal computation failed: %v", r)
		}
	}()

	if window < 1 {
		return nil, nil, errors.New("window must be at least 1")
	}
	if threshold <= 0 {
		return nil, nil, errors.New("threshold must be positive")
	}
	if series == nil || len(series.Bars) == 0 {
		return nil, nil, ErrNoData
	}
	if err := validateBars(series.Bars); err != nil {
		return nil, nil, fmt.Errorf("malformed series for %s: %w", series.Symbol, err)
	}

	if len(series.Bars) < window {
		return nil, emptySummary(), nil
	}

	closes := make([]float64, len(series.Bars))
	for i, b := range series.Bars {
		closes[i] = b.Close
	}

	means, err := calculator.CalculateRollingMean(closes, window)
	if err != nil {
		return nil, nil, fmt.Errorf("rolling mean: %w", err)
	}
	stds, err := calculator.CalculateRollingStdDev(closes, window)
	if err != nil {
		return nil, nil, fmt.Errorf("rolling std: %w", err)
	}

	rows = annotate(series.Bars[window-1:], means, stds, threshold)
	return rows, summarize(rows), nil
}

func validateBars(bars []model.OHLCV) error {
	for i, b := range bars {
		if b.Close <= 0 {
			return fmt.Errorf("non-positive close %.4f at %s", b.Close, b.Time.Format("2006-01-02"))
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bars out of order or duplicated at %s", b.Time.Format("2006-01-02"))
		}
	}
	return nil
}

// annotate classifies each row and simulates the lagged position. bars,
// means, and stds are co-indexed: entry i is the i-th date with a full
// rolling window.
func annotate(bars []model.OHLCV, means, stds []float64, threshold float64) []model.AnnotatedRow {
	rows := make([]model.AnnotatedRow, len(bars))
	for i, b := range bars {
		z := math.NaN()
		sig := model.Hold
		if stds[i] > 0 {
			z = (b.Close - means[i]) / stds[i]
			switch {
			case z < -threshold:
				sig = model.Buy // abnormally low, expect reversion upward
			case z > threshold:
				sig = model.Sell // abnormally high, expect reversion downward
			}
		}
		rows[i] = model.AnnotatedRow{
			Time:        b.Time,
			Close:       b.Close,
			RollingMean: means[i],
			RollingStd:  stds[i],
			ZScore:      z,
			Signal:      sig,
		}
	}

	// The signal from day i-1's close is the position held during day i.
	// Trading on day i's own signal would be look-ahead bias.
	cum := 0.0
	for i := range rows {
		if i == 0 {
			rows[i].DailyReturn = math.NaN()
			rows[i].Position = model.Hold
			rows[i].DailyPnL = 0
		} else {
			r := rows[i].Close/rows[i-1].Close - 1
			rows[i].DailyReturn = r
			rows[i].Position = rows[i-1].Signal
			rows[i].DailyPnL = float64(rows[i].Position) * r
		}
		cum += rows[i].DailyPnL
		rows[i].CumulativePnL = cum
	}
	return rows
}

func summarize(rows []model.AnnotatedRow) *model.MetricsSummary {
	s := emptySummary()
	if len(rows) == 0 {
		return s
	}
	s.YearlyYield = rows[len(rows)-1].CumulativePnL

	// The first row's return is absent, so it is excluded from the
	// Sharpe computation rather than counted as a zero-PnL day.
	pnl := make([]float64, 0, len(rows)-1)
	var lastSignalAt time.Time
	for i, r := range rows {
		if i > 0 {
			pnl = append(pnl, r.DailyPnL)
		}
		switch r.Signal {
		case model.Buy:
			s.NumBuySignals++
		case model.Sell:
			s.NumSellSignals++
		}
		if r.Signal != model.Hold {
			if lastSignalAt.IsZero() {
				s.HoldingPeriods = append(s.HoldingPeriods, 0)
			} else {
				s.HoldingPeriods = append(s.HoldingPeriods, r.Time.Sub(lastSignalAt))
			}
			lastSignalAt = r.Time
		}
	}
	s.SharpeRatio = calculator.CalculateSharpeRatio(pnl)
	return s
}

func emptySummary() *model.MetricsSummary {
	return &model.MetricsSummary{SharpeRatio: math.NaN()}
}
