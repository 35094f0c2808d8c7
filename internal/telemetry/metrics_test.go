package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestServeRegistersMetrics(t *testing.T) {
	srv := Serve(":0")
	defer srv.Close()

	AnalysisRuns.WithLabelValues("AAPL", "ok").Inc()
	MemoHits.Inc()

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range mfs {
		found[mf.GetName()] = true
	}
	for _, name := range []string{"analysis_runs_total", "memo_cache_hits_total"} {
		if !found[name] {
			t.Errorf("%s metric not found", name)
		}
	}
}
