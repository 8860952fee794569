// Package scheduler runs the periodic analytics refresh of serve mode.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/abdulachik/reelsmith/internal/analytics"
	"github.com/abdulachik/reelsmith/internal/notify"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule refreshes analytics every hour.
const DefaultSchedule = "@every 1h"

// Refresher pulls fresh engagement metrics.
type Refresher interface {
	Refresh(ctx context.Context) (*analytics.Report, error)
}

// Config holds scheduler configuration.
type Config struct {
	Schedule  string
	Refresher Refresher
	Notifier  notify.Notifier
	Health    *Health
}

// Scheduler triggers analytics refreshes on a cron schedule.
type Scheduler struct {
	schedule  string
	refresher Refresher
	notifier  notify.Notifier
	health    *Health

	mu      sync.Mutex
	running bool
}

// New creates a scheduler. The schedule accepts standard cron expressions
// and descriptors such as "@every 30m".
func New(cfg Config) (*Scheduler, error) {
	if cfg.Refresher == nil {
		return nil, fmt.Errorf("scheduler: refresher is required")
	}

	schedule := strings.TrimSpace(cfg.Schedule)
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	health := cfg.Health
	if health == nil {
		health = NewHealth()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(nil)
	}

	return &Scheduler{
		schedule:  schedule,
		refresher: cfg.Refresher,
		notifier:  notifier,
		health:    health,
	}, nil
}

// Health returns the tracker the scheduler reports to.
func (s *Scheduler) Health() *Health {
	return s.health
}

// RunOnce performs a single refresh. Overlapping calls are skipped.
func (s *Scheduler) RunOnce(ctx context.Context) (*analytics.Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		slog.Warn("analytics refresh already running, skipping")
		return nil, nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.health.SetUnhealthy(ComponentAnalytics, err)
		s.notify(ctx, "analytics refresh failed", err.Error())
		return nil, err
	}

	if len(report.Errors) > 0 {
		summary := failureSummary(report.Errors)
		s.health.SetUnhealthy(ComponentAnalytics, fmt.Errorf("%d source(s) failed: %s", len(report.Errors), summary))
		s.notify(ctx, "analytics sources failed", summary)
	} else {
		s.health.SetHealthy(ComponentAnalytics, fmt.Sprintf("stored %d metrics", len(report.Metrics)))
	}

	slog.Info("analytics refreshed", "metrics", len(report.Metrics), "failed_sources", len(report.Errors))
	return report, nil
}

// Run refreshes on the schedule until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("scheduled analytics refresh failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule analytics refresh: %w", err)
	}

	slog.Info("scheduler started", "schedule", s.schedule)
	c.Start()

	<-ctx.Done()

	// Wait for a running job to finish.
	<-c.Stop().Done()
	slog.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) notify(ctx context.Context, subject, body string) {
	if err := s.notifier.Send(ctx, notify.Notification{Subject: subject, Body: body}); err != nil {
		slog.Error("failed to send notification", "error", err)
	}
}

func failureSummary(errs map[string]error) string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, errs[name]))
	}
	return strings.Join(parts, "; ")
}
