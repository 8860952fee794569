package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abdulachik/reelsmith/internal/analytics"
	"github.com/abdulachik/reelsmith/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRefresher struct {
	mu     sync.Mutex
	calls  int
	report *analytics.Report
	err    error
}

func (m *mockRefresher) Refresh(ctx context.Context) (*analytics.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.report, m.err
}

func (m *mockRefresher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (m *mockNotifier) Send(ctx context.Context, n notify.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

func TestNew(t *testing.T) {
	t.Run("requires refresher", func(t *testing.T) {
		_, err := New(Config{})
		assert.Error(t, err)
	})

	t.Run("default schedule", func(t *testing.T) {
		s, err := New(Config{Refresher: &mockRefresher{}})
		require.NoError(t, err)
		assert.Equal(t, DefaultSchedule, s.schedule)
		assert.NotNil(t, s.Health())
	})

	t.Run("cron expression", func(t *testing.T) {
		s, err := New(Config{Schedule: "*/15 * * * *", Refresher: &mockRefresher{}})
		require.NoError(t, err)
		assert.Equal(t, "*/15 * * * *", s.schedule)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		_, err := New(Config{Schedule: "every now and then", Refresher: &mockRefresher{}})
		assert.ErrorContains(t, err, "invalid schedule")
	})
}

func TestScheduler_RunOnce(t *testing.T) {
	t.Run("all sources ok", func(t *testing.T) {
		ref := &mockRefresher{report: &analytics.Report{
			Metrics: []analytics.Metric{{Platform: analytics.PlatformYouTube, PostID: "v1"}},
			Errors:  map[string]error{},
		}}
		notes := &mockNotifier{}
		s, err := New(Config{Refresher: ref, Notifier: notes})
		require.NoError(t, err)

		report, err := s.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Len(t, report.Metrics, 1)

		status := s.Health().GetStatus(ComponentAnalytics)
		require.NotNil(t, status)
		assert.True(t, status.Healthy)
		assert.Equal(t, "stored 1 metrics", status.Message)
		assert.Empty(t, notes.sent)
	})

	t.Run("partial failure notifies", func(t *testing.T) {
		ref := &mockRefresher{report: &analytics.Report{
			Errors: map[string]error{
				analytics.PlatformYouTube:  errors.New("quota"),
				analytics.PlatformFacebook: errors.New("token expired"),
			},
		}}
		notes := &mockNotifier{}
		s, err := New(Config{Refresher: ref, Notifier: notes})
		require.NoError(t, err)

		_, err = s.RunOnce(context.Background())
		require.NoError(t, err)

		assert.False(t, s.Health().GetStatus(ComponentAnalytics).Healthy)
		require.Len(t, notes.sent, 1)
		assert.Equal(t, "analytics sources failed", notes.sent[0].Subject)
		assert.Equal(t, "Facebook: token expired; YouTube: quota", notes.sent[0].Body)
	})

	t.Run("refresh error", func(t *testing.T) {
		ref := &mockRefresher{err: errors.New("database locked")}
		notes := &mockNotifier{}
		s, err := New(Config{Refresher: ref, Notifier: notes})
		require.NoError(t, err)

		_, err = s.RunOnce(context.Background())
		assert.ErrorContains(t, err, "database locked")
		assert.False(t, s.Health().IsOverallHealthy())
		require.Len(t, notes.sent, 1)
		assert.Equal(t, "analytics refresh failed", notes.sent[0].Subject)
	})
}

func TestScheduler_Run(t *testing.T) {
	ref := &mockRefresher{report: &analytics.Report{}}
	s, err := New(Config{Schedule: "@every 1s", Refresher: ref, Notifier: &mockNotifier{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return ref.Calls() > 0 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
