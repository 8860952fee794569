package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abdulachik/reelsmith/internal/config"
	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/abdulachik/reelsmith/internal/scheduler"
	"github.com/abdulachik/reelsmith/internal/storage"
	"github.com/abdulachik/reelsmith/internal/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		DatabasePath:      filepath.Join(dir, "reelsmith.db"),
		ReelsDir:          filepath.Join(dir, "reels"),
		LLMProvider:       "groq",
		AnalyticsSchedule: "@every 1h",
		HTTPAddr:          ":0",
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNew(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	assert.NotNil(t, a.Store)
	assert.Nil(t, a.Index)
	assert.IsType(t, &storage.Local{}, a.Backend)
	assert.True(t, a.Health.GetStatus(scheduler.ComponentDatabase).Healthy)
}

func TestApp_HistoryRoundTrip(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "render.mp4")
	require.NoError(t, os.WriteFile(src, []byte("mp4"), 0644))

	reel, err := a.History.SaveVideo(ctx, "Glow Mug Launch", src, history.Meta{Script: "Meet GlowMug."})
	require.NoError(t, err)
	assert.FileExists(t, reel.File)

	reels, err := a.History.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reels, 1)
	assert.Equal(t, reel.ID, reels[0].ID)

	require.NoError(t, a.RecordUploads(ctx, reel.ID, []uploader.Result{
		{Platform: uploader.TikTok, Status: uploader.StatusSuccess, URL: "https://tiktok.example/1"},
	}))
	uploads, err := a.Store.ListUploadsByReel(ctx, reel.ID)
	require.NoError(t, err)
	assert.Len(t, uploads, 1)
}

func TestApp_Server(t *testing.T) {
	t.Run("requires an LLM key", func(t *testing.T) {
		a := newTestApp(t, testConfig(t))
		_, err := a.Server(nil)
		assert.ErrorContains(t, err, "GROQ_API_KEY")
	})

	t.Run("serves healthz", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.GroqAPIKey = "gsk_test"
		cfg.GroqTimeout = time.Second
		a := newTestApp(t, cfg)

		sched, err := a.Scheduler()
		require.NoError(t, err)
		srv, err := a.Server(sched)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), scheduler.ComponentLLM)
	})
}

func TestApp_Clips_Unconfigured(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := a.Clips()
	assert.Error(t, err)
	_, err = a.Voice()
	assert.Error(t, err)
	assert.NotNil(t, a.Videos())
}
