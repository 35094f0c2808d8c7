package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "analysis_runs_total", Help: "Signal engine runs by outcome"},
		[]string{"symbol", "status"},
	)
	MemoHits = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "memo_cache_hits_total", Help: "Computations served from the in-memory memo"},
	)
	BarCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bar_cache_hits_total", Help: "Daily-bar fetches served from SQLite"},
	)
	SignalsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Non-hold signals in the latest run"},
		[]string{"symbol", "side"},
	)
)

func init() {
	prometheus.MustRegister(AnalysisRuns, MemoHits, BarCacheHits, SignalsEmitted)
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
