package collector

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"MeanSentinel/internal/cache"
	"MeanSentinel/internal/model"
	"MeanSentinel/internal/strategy"
	"MeanSentinel/internal/telemetry"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.OHLCV
	Err  error

	// LastStart/LastEnd record the most recent request bounds.
	LastStart time.Time
	LastEnd   time.Time
	Calls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, start, end time.Time) ([]model.OHLCV, error) {
	m.Calls++
	m.LastStart, m.LastEnd = start, end
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}

// GenerateMockBars produces count consecutive daily bars ending at end,
// drifting slightly around basePrice.
func GenerateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching and signal computation for one
// symbol, memoizing results by input parameters.
type Collector struct {
	Fetcher   Fetcher
	Symbol    string
	Window    int
	Threshold float64
	Memo      *cache.Memo
	log       zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, window int, threshold float64, memo *cache.Memo, logger zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:   fetcher,
		Symbol:    symbol,
		Window:    window,
		Threshold: threshold,
		Memo:      memo,
		log:       logger,
	}
}

// Analyze fetches the price series for [start, end] and runs the signal
// engine over it. The fetch is extended backwards by the window size so
// the first requested day already has rolling history; rows that still
// lack a full window are dropped by the engine.
func (c *Collector) Analyze(start, end time.Time) (*cache.Result, error) {
	key := cache.NewKey(c.Symbol, c.Window, c.Threshold, start, end)
	if res, ok := c.Memo.Get(key); ok {
		telemetry.MemoHits.Inc()
		c.log.Debug().Str("symbol", c.Symbol).Msg("analysis served from memo")
		return res, nil
	}

	fetchStart := start.AddDate(0, 0, -c.Window)
	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, fetchStart, end)
	if err != nil {
		telemetry.AnalysisRuns.WithLabelValues(c.Symbol, "fetch_error").Inc()
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	series := &model.PriceSeries{
		Symbol:    c.Symbol,
		Bars:      normalize(bars),
		FetchedAt: time.Now(),
	}

	rows, metrics, err := strategy.Compute(series, c.Window, c.Threshold)
	if err != nil {
		telemetry.AnalysisRuns.WithLabelValues(c.Symbol, "error").Inc()
		return nil, err
	}
	telemetry.AnalysisRuns.WithLabelValues(c.Symbol, "ok").Inc()
	telemetry.SignalsEmitted.WithLabelValues(c.Symbol, "buy").Add(float64(metrics.NumBuySignals))
	telemetry.SignalsEmitted.WithLabelValues(c.Symbol, "sell").Add(float64(metrics.NumSellSignals))

	res := &cache.Result{Rows: rows, Metrics: metrics, ComputedAt: time.Now()}
	c.Memo.Put(key, res)

	c.log.Info().
		Str("symbol", c.Symbol).
		Int("rows", len(rows)).
		Int("buys", metrics.NumBuySignals).
		Int("sells", metrics.NumSellSignals).
		Msg("analysis computed")
	return res, nil
}

// normalize sorts bars chronologically and keeps the last bar of any
// duplicated calendar day, so the series is strictly increasing by date.
func normalize(bars []model.OHLCV) []model.OHLCV {
	if len(bars) == 0 {
		return nil
	}
	sorted := make([]model.OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := sorted[:0]
	for _, b := range sorted {
		if len(out) > 0 && sameDay(out[len(out)-1].Time, b.Time) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
