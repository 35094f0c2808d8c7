// Package cache memoizes computed signal runs keyed by their input
// parameters. It is a pure side-table: the engine stays deterministic and
// unaware of it.
package cache

import (
	"sync"
	"time"

	"MeanSentinel/internal/model"
)

// Key identifies one computation. Two invocations with equal keys are
// guaranteed to produce identical output.
type Key struct {
	Symbol    string
	Window    int
	Threshold float64
	Start     string // 2006-01-02
	End       string
}

// NewKey builds a Key, normalizing the date bounds to calendar days.
func NewKey(symbol string, window int, threshold float64, start, end time.Time) Key {
	return Key{
		Symbol:    symbol,
		Window:    window,
		Threshold: threshold,
		Start:     start.Format("2006-01-02"),
		End:       end.Format("2006-01-02"),
	}
}

// Result is one memoized engine output.
type Result struct {
	Rows       []model.AnnotatedRow
	Metrics    *model.MetricsSummary
	ComputedAt time.Time
}

// Memo is a concurrency-safe in-memory result cache.
type Memo struct {
	mu      sync.Mutex
	entries map[Key]*Result
}

func NewMemo() *Memo {
	return &Memo{entries: make(map[Key]*Result)}
}

// Get returns the memoized result for k, if any.
func (m *Memo) Get(k Key) (*Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[k]
	return r, ok
}

// Put stores the result for k, replacing any previous entry.
func (m *Memo) Put(k Key, r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[k] = r
}

// Len reports the number of memoized runs.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
