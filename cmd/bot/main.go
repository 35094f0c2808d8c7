package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MeanSentinel/internal/cache"
	"MeanSentinel/internal/collector"
	"MeanSentinel/internal/config"
	"MeanSentinel/internal/notifier"
	"MeanSentinel/internal/scheduler"
	"MeanSentinel/internal/store"
	"MeanSentinel/internal/telemetry"
	"MeanSentinel/internal/util"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		lg := util.NewLogger("info")
		lg.Fatal().Err(err).Msg("load config")
	}

	logger := util.NewLogger(cfg.LogLevel)
	logger.Info().Msg("MeanSentinel starting")

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config validation")
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}

	// Wrap with the SQLite bar cache when configured
	if cfg.Database.SQLitePath != "" {
		bs, err := store.NewBarStore(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("init bar store failed, fetching without cache")
		} else {
			defer bs.Close()
			fetcher = collector.NewCachedFetcher(fetcher, bs, logger)
		}
	}
	logger.Info().Str("source", fetcher.Name()).Msg("data source ready")

	// Init collector with the in-memory memoizer
	memo := cache.NewMemo()
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol,
		cfg.Analysis.Window, cfg.Analysis.Threshold, memo, logger)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tn, cfg.Analysis.LookbackDays, logger)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		logger.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Prometheus metrics endpoint
	metricsSrv := telemetry.Serve(cfg.Metrics.Addr)
	defer metricsSrv.Close()
	logger.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint up")

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	logger.Info().Msg("telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info().Msg("RUN_ON_START enabled, executing daily analysis now")
		go sched.RunNow()
	}

	logger.Info().Msg("MeanSentinel is running, press Ctrl+C to stop")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutdown signal received, stopping")
	cancel()
	logger.Info().Msg("MeanSentinel stopped")
}
