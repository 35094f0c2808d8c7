package collector

import (
	"time"

	"MeanSentinel/internal/model"
)

// Fetcher defines the interface for fetching daily market data over a
// date range. An empty result means the symbol or range is invalid.
type Fetcher interface {
	FetchDailyBars(symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
