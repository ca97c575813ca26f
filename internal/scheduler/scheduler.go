package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"GapScanner/internal/calendar"
	"GapScanner/internal/collector"
	"GapScanner/internal/notifier"
	"GapScanner/internal/recorder"

	"github.com/robfig/cron/v3"
)

// TokenRefresher is the token-lifecycle slice of the brokerage client.
// The screen refreshes proactively before each run; nothing downstream
// detects an expired token reactively.
type TokenRefresher interface {
	Refresh(ctx context.Context) error
	TokenExpiry() time.Time
}

// Scheduler runs the daily screen on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Refresher TokenRefresher
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Tickers   []string
	Ctx       context.Context
}

// NewScheduler creates a Scheduler screening the given tickers.
func NewScheduler(ctx context.Context, col *collector.Collector, refresher TokenRefresher, tn *notifier.TelegramNotifier, rec recorder.Recorder, tickers []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Refresher: refresher,
		Notifier:  tn,
		Recorder:  rec,
		Tickers:   tickers,
		Ctx:       ctx,
	}
}

// RegisterDaily registers the screen task.
func (s *Scheduler) RegisterDaily(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyScreen); err != nil {
		return fmt.Errorf("register daily screen: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScreenNow executes the screen immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunScreenNow() {
	s.dailyScreen()
}

func (s *Scheduler) dailyScreen() {
	now := time.Now()
	if !calendar.IsTradingDay(now) {
		log.Printf("[INFO] %s is not a trading day, skipping screen", now.Format("2006-01-02"))
		return
	}

	// Access tokens are short-lived; start every run with a fresh one.
	if s.Refresher != nil {
		if err := s.Refresher.Refresh(s.Ctx); err != nil {
			log.Printf("[ERROR] token refresh: %v", err)
			s.trySend(fmt.Sprintf("❌ screen aborted, token refresh failed: %v", err))
			return
		}
		log.Printf("[INFO] token refreshed, valid until %s", s.Refresher.TokenExpiry().Format(time.RFC3339))
	}

	for _, ticker := range s.Tickers {
		snap, err := s.Collector.Screen(s.Ctx, ticker)
		if err != nil {
			log.Printf("[ERROR] screen %s: %v", ticker, err)
			s.trySend(notifier.FormatScreenError(ticker, err))
			continue
		}

		if err := s.Recorder.RecordScreen(recorder.FromSnapshot(snap)); err != nil {
			log.Printf("[ERROR] record screen %s: %v", ticker, err)
		}
		s.trySend(notifier.FormatScreenReport(snap))
		log.Printf("[INFO] screened %s: support %.2f, resistance %.2f, avg volume %.0f",
			ticker, snap.PivotLow.Value, snap.PivotHigh.Value, snap.AvgVolume)
	}
}

func (s *Scheduler) trySend(msg string) {
	if s.Notifier == nil || s.Notifier.BotToken == "" {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
		log.Printf("[ERROR] notify: %v", err)
	}
}
