package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"MeanSentinel/internal/model"
)

// FormatDailyReport formats the latest signal and run metrics into a
// Telegram message.
func FormatDailyReport(symbol string, window int, threshold float64, rows []model.AnnotatedRow, m *model.MetricsSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>MeanSentinel %s</b> | %s\n", symbol, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("window=%d threshold=±%.1f\n\n", window, threshold))

	if len(rows) == 0 {
		b.WriteString("Insufficient data: no rows with a full rolling window.\n")
		return b.String()
	}

	last := rows[len(rows)-1]
	b.WriteString(fmt.Sprintf("Close: %.2f (%s)\n", last.Close, last.Time.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Rolling mean: %.2f | std: %.2f\n", last.RollingMean, last.RollingStd))
	b.WriteString(fmt.Sprintf("Z-score: %s\n", formatFloat(last.ZScore, "%.2f")))
	b.WriteString(fmt.Sprintf("Signal: <b>%s</b>\n\n", last.Signal))

	b.WriteString("📈 <b>Run metrics:</b>\n")
	b.WriteString(FormatMetrics(m))
	return b.String()
}

// FormatMetrics formats the metrics summary for display.
func FormatMetrics(m *model.MetricsSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Yearly yield: %+.2f%%\n", m.YearlyYield*100))
	b.WriteString(fmt.Sprintf("  Buy signals: %d | Sell signals: %d\n", m.NumBuySignals, m.NumSellSignals))
	b.WriteString(fmt.Sprintf("  Sharpe ratio: %s\n", formatFloat(m.SharpeRatio, "%.2f")))
	if n := len(m.HoldingPeriods); n > 1 {
		var sum time.Duration
		for _, d := range m.HoldingPeriods[1:] {
			sum += d
		}
		avg := sum / time.Duration(n-1)
		b.WriteString(fmt.Sprintf("  Avg holding period: %.1f days (%d signals)\n", avg.Hours()/24, n))
	} else {
		b.WriteString(fmt.Sprintf("  Signals fired: %d\n", len(m.HoldingPeriods)))
	}
	return b.String()
}

// formatFloat renders NaN as "n/a" instead of the raw sentinel.
func formatFloat(v float64, format string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}
