package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GapScanner/internal/collector"
	"GapScanner/internal/config"
	"GapScanner/internal/notifier"
	"GapScanner/internal/recorder"
	"GapScanner/internal/scheduler"
	"GapScanner/internal/transport"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] GapScanner starting...")

	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Shared HTTP client with retry on transient failures
	policy := transport.Policy{
		MaxRetries:    cfg.HTTP.MaxRetries,
		Backoff:       time.Duration(cfg.HTTP.BackoffMS) * time.Millisecond,
		RetryStatuses: cfg.HTTP.RetryStatuses,
	}
	httpClient := transport.NewClient(policy, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init brokerage client: authenticates and fetches accounts up front
	questrade := collector.NewQuestrade(cfg.Questrade.LoginURL, httpClient)
	if err := questrade.Authenticate(ctx, cfg.Questrade.RefreshToken); err != nil {
		log.Fatalf("[FATAL] authenticate: %v", err)
	}
	log.Printf("[INFO] authenticated, %d account(s), token valid until %s",
		len(questrade.Accounts()), questrade.TokenExpiry().Format(time.RFC3339))

	// Init indicator client
	alphavantage := collector.NewAlphaVantage(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, httpClient)
	log.Printf("[INFO] sources: %s + %s", questrade.Name(), alphavantage.Name())

	// Init collector
	col := collector.NewCollector(questrade, alphavantage,
		cfg.Screen.SMAPeriods, cfg.Screen.PivotLookback, cfg.Screen.VolumeLookback)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, httpClient)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, questrade, tn, rec, cfg.Screen.Tickers)
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing screen now")
		go sched.RunScreenNow()
	}

	log.Println("[INFO] GapScanner is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] GapScanner stopped")
}
