package collector

import (
	"time"

	"github.com/rs/zerolog"

	"MeanSentinel/internal/model"
	"MeanSentinel/internal/store"
	"MeanSentinel/internal/telemetry"
)

// CachedFetcher wraps another Fetcher with the SQLite bar store. Cache
// failures degrade to a direct fetch; they never fail the analysis.
type CachedFetcher struct {
	inner Fetcher
	store *store.BarStore
	log   zerolog.Logger
}

func NewCachedFetcher(inner Fetcher, s *store.BarStore, logger zerolog.Logger) *CachedFetcher {
	return &CachedFetcher{inner: inner, store: s, log: logger}
}

func (f *CachedFetcher) Name() string { return f.inner.Name() + "+sqlite" }

func (f *CachedFetcher) FetchDailyBars(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	bars, ok, err := f.store.LoadBars(symbol, start, end)
	if err != nil {
		f.log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache read failed, fetching directly")
	} else if ok {
		telemetry.BarCacheHits.Inc()
		return bars, nil
	}

	bars, err = f.inner.FetchDailyBars(symbol, start, end)
	if err != nil {
		return nil, err
	}
	if err := f.store.SaveBars(symbol, start, end, bars); err != nil {
		f.log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache write failed")
	}
	return bars, nil
}
