package notifier

import (
	"math"
	"strings"
	"testing"
	"time"

	"MeanSentinel/internal/model"
)

func TestFormatDailyReport(t *testing.T) {
	rows := []model.AnnotatedRow{
		{
			Time:        time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC),
			Close:       95.0,
			RollingMean: 100.0,
			RollingStd:  2.0,
			ZScore:      -2.5,
			Signal:      model.Buy,
		},
	}
	m := &model.MetricsSummary{
		YearlyYield:    0.1234,
		NumBuySignals:  3,
		NumSellSignals: 1,
		SharpeRatio:    1.87,
		HoldingPeriods: []time.Duration{0, 48 * time.Hour},
	}
	out := FormatDailyReport("AAPL", 10, 2.0, rows, m)

	for _, want := range []string{"AAPL", "BUY", "-2.50", "+12.34%", "1.87", "2.0 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDailyReport_EmptyRun(t *testing.T) {
	m := &model.MetricsSummary{SharpeRatio: math.NaN()}
	out := FormatDailyReport("AAPL", 10, 2.0, nil, m)
	if !strings.Contains(out, "Insufficient data") {
		t.Errorf("expected insufficient-data notice:\n%s", out)
	}
}

func TestFormatMetrics_UndefinedSharpe(t *testing.T) {
	m := &model.MetricsSummary{SharpeRatio: math.NaN()}
	out := FormatMetrics(m)
	if !strings.Contains(out, "Sharpe ratio: n/a") {
		t.Errorf("NaN sharpe should render as n/a:\n%s", out)
	}
	if strings.Contains(out, "NaN") {
		t.Errorf("raw NaN must never reach the user:\n%s", out)
	}
}
