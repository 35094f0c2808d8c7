package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"MeanSentinel/internal/cache"
	"MeanSentinel/internal/collector"
	"MeanSentinel/internal/notifier"
	"MeanSentinel/internal/strategy"
)

// Scheduler runs the daily analysis on a cron schedule and handles
// user commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  *notifier.TelegramNotifier
	Lookback  int // calendar days of history per run
	Ctx       context.Context
	log       zerolog.Logger

	mu   sync.Mutex
	last *cache.Result
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tn *notifier.TelegramNotifier, lookbackDays int, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  tn,
		Lookback:  lookbackDays,
		Ctx:       ctx,
		log:       logger,
	}
}

// RegisterAll registers the daily analysis task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.log.Info().Str("symbol", s.Collector.Symbol).Msg("running daily analysis")

	end := time.Now()
	start := end.AddDate(0, 0, -s.Lookback)

	res, err := s.Collector.Analyze(start, end)
	if err != nil {
		// Failures are reported to the user, never surfaced as a fault.
		s.log.Error().Err(err).Str("symbol", s.Collector.Symbol).
			Time("start", start).Time("end", end).Msg("daily analysis failed")
		if errors.Is(err, strategy.ErrNoData) {
			s.trySend(fmt.Sprintf("⚠️ No data found for %s. Check the symbol or date range.", s.Collector.Symbol))
		} else {
			s.trySend(fmt.Sprintf("❌ Analysis failed for %s: %v", s.Collector.Symbol, err))
		}
		return
	}

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	report := notifier.FormatDailyReport(s.Collector.Symbol, s.Collector.Window, s.Collector.Threshold, res.Rows, res.Metrics)
	s.trySend(report)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/signal":
		s.dailyTask()
		return ""
	case "/metrics":
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		if last == nil {
			return "No analysis has run yet. Use /signal to run one."
		}
		return fmt.Sprintf("📈 <b>Last run</b> (%s)\n%s",
			last.ComputedAt.Format("2006-01-02 15:04"), notifier.FormatMetrics(last.Metrics))
	default:
		return "Available commands:\n• /signal — run the analysis now\n• /metrics — show the last run's metrics"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
