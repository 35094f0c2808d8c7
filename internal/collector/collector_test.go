package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"MeanSentinel/internal/cache"
	"MeanSentinel/internal/model"
	"MeanSentinel/internal/strategy"
)

func testCollector(fetcher Fetcher) *Collector {
	return NewCollector(fetcher, "TEST", 10, 2.0, cache.NewMemo(), zerolog.Nop())
}

func TestAnalyze_ComputesAndMemoizes(t *testing.T) {
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	mock := &MockFetcher{Bars: GenerateMockBars(100, 60, end)}
	c := testCollector(mock)

	start := end.AddDate(0, 0, -50)
	res, err := c.Analyze(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) == 0 {
		t.Fatal("expected annotated rows")
	}
	if mock.Calls != 1 {
		t.Fatalf("expected one fetch, got %d", mock.Calls)
	}

	// Second identical invocation must be served from the memo.
	res2, err := c.Analyze(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls != 1 {
		t.Errorf("expected memo hit, but fetcher was called %d times", mock.Calls)
	}
	if res2 != res {
		t.Error("expected the identical memoized result")
	}
}

func TestAnalyze_ExtendsFetchForWarmup(t *testing.T) {
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	mock := &MockFetcher{Bars: GenerateMockBars(100, 60, end)}
	c := testCollector(mock)

	start := end.AddDate(0, 0, -30)
	if _, err := c.Analyze(start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStart := start.AddDate(0, 0, -c.Window)
	if !mock.LastStart.Equal(wantStart) {
		t.Errorf("expected fetch start %v, got %v", wantStart, mock.LastStart)
	}
	if !mock.LastEnd.Equal(end) {
		t.Errorf("expected fetch end %v, got %v", end, mock.LastEnd)
	}
}

func TestAnalyze_FetchError(t *testing.T) {
	mock := &MockFetcher{Err: errors.New("upstream down")}
	c := testCollector(mock)
	if _, err := c.Analyze(time.Now().AddDate(0, 0, -30), time.Now()); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestAnalyze_NoData(t *testing.T) {
	mock := &MockFetcher{Bars: nil}
	c := testCollector(mock)
	_, err := c.Analyze(time.Now().AddDate(0, 0, -30), time.Now())
	if !errors.Is(err, strategy.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestNormalize_SortsAndDedupes(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	bars := []model.OHLCV{
		{Time: day(3), Close: 103},
		{Time: day(1), Close: 101},
		{Time: day(2), Close: 102},
		{Time: day(2).Add(6 * time.Hour), Close: 202}, // same day, later fetch wins
	}
	got := normalize(bars)
	if len(got) != 3 {
		t.Fatalf("expected 3 bars after dedupe, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Time.Before(got[i].Time) {
			t.Fatal("bars not strictly increasing by date")
		}
	}
	if got[1].Close != 202 {
		t.Errorf("expected the last bar of a duplicated day to win, got %v", got[1].Close)
	}
}
