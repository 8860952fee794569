package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "subdir", "test.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)

		var result int
		err = store.QueryRowContext(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer store.Close()

		var mode string
		err = store.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer store.Close()

		var fk int
		err = store.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk)
		assert.NoError(t, err)
		assert.Equal(t, 1, fk)
	})
}

func TestStore_Migrate(t *testing.T) {
	t.Run("creates tables", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()

		for _, table := range []string{"reels", "uploads", "analytics", "schema_migrations"} {
			var name string
			err := store.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			require.NoError(t, err, table)
			assert.Equal(t, table, name)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()

		require.NoError(t, store.Migrate(ctx))

		var applied int
		require.NoError(t, store.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
		assert.Equal(t, 1, applied)

		count, err := store.CountReels(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestQueries_Reels(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older, err := store.CreateReel(ctx, CreateReelParams{
		ID: "01A", Title: "GlowMug", File: "reels/a/video.mp4", CreatedAt: base,
	})
	require.NoError(t, err)
	assert.Equal(t, "GlowMug", older.Title)
	assert.False(t, older.Script.Valid)
	assert.True(t, older.CreatedAt.Equal(base))

	_, err = store.CreateReel(ctx, CreateReelParams{
		ID: "01B", Title: "DeskLamp", File: "reels/b/video.mp4",
		Script:    sql.NullString{String: "Light up.", Valid: true},
		CreatedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	reels, err := store.ListReels(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reels, 2)
	assert.Equal(t, "01B", reels[0].ID)
	assert.Equal(t, "Light up.", reels[0].Script.String)
	assert.Equal(t, "01A", reels[1].ID)

	reels, err = store.ListReels(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reels, 1)

	_, err = store.GetReel(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	count, err := store.CountReels(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestQueries_Uploads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateReel(ctx, CreateReelParams{ID: "r1", Title: "t", File: "f", CreatedAt: time.Now()})
	require.NoError(t, err)

	reelID := sql.NullString{String: "r1", Valid: true}
	u, err := store.CreateUpload(ctx, CreateUploadParams{
		ReelID: reelID, Platform: "tiktok", Status: "success",
		Url: sql.NullString{String: "https://www.tiktok.com/@x/video/1", Valid: true},
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "tiktok", u.Platform)

	_, err = store.CreateUpload(ctx, CreateUploadParams{
		ReelID: reelID, Platform: "youtube", Status: "error",
		Message: sql.NullString{String: "Missing YOUTUBE_API_KEY in environment", Valid: true},
	})
	require.NoError(t, err)

	uploads, err := store.ListUploadsByReel(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, "tiktok", uploads[0].Platform)
	assert.Equal(t, "error", uploads[1].Status)

	counts, err := store.CountUploadsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CountUploadsByStatusRow{
		{Platform: "tiktok", Status: "success", Count: 1},
		{Platform: "youtube", Status: "error", Count: 1},
	}, counts)

	t.Run("reel delete keeps upload", func(t *testing.T) {
		_, err := store.ExecContext(ctx, "DELETE FROM reels WHERE id = 'r1'")
		require.NoError(t, err)

		var orphaned int
		require.NoError(t, store.QueryRowContext(ctx, "SELECT COUNT(*) FROM uploads WHERE reel_id IS NULL").Scan(&orphaned))
		assert.Equal(t, 2, orphaned)
	})
}

func TestQueries_Metrics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.UpsertMetric(ctx, UpsertMetricParams{
		Platform: "youtube", PostID: "v1",
		Likes: sql.NullInt64{Int64: 5, Valid: true}, Views: sql.NullInt64{Int64: 100, Valid: true},
		FetchedAt: now,
	}))
	require.NoError(t, store.UpsertMetric(ctx, UpsertMetricParams{
		Platform: "youtube", PostID: "v1",
		Likes: sql.NullInt64{Int64: 7, Valid: true}, Views: sql.NullInt64{Int64: 150, Valid: true},
		FetchedAt: now.Add(time.Minute),
	}))
	require.NoError(t, store.UpsertMetric(ctx, UpsertMetricParams{
		Platform: "instagram", PostID: "p1",
		Likes: sql.NullInt64{Int64: 3, Valid: true}, Comments: sql.NullInt64{Int64: 1, Valid: true},
		FetchedAt: now,
	}))

	all, err := store.ListMetrics(ctx, ListMetricsParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)

	yt, err := store.ListMetrics(ctx, ListMetricsParams{Platform: "youtube", Limit: 10})
	require.NoError(t, err)
	require.Len(t, yt, 1)
	assert.Equal(t, int64(7), yt[0].Likes.Int64)
	assert.Equal(t, int64(150), yt[0].Views.Int64)
	assert.False(t, yt[0].Shares.Valid)

	summary, err := store.SummarizeMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []SummarizeMetricsRow{
		{Platform: "instagram", Posts: 1, Likes: 3, Comments: 1},
		{Platform: "youtube", Posts: 1, Likes: 7, Views: 150},
	}, summary)
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name: "extracts up section",
			content: `-- +migrate Up
CREATE TABLE test (id INTEGER);

-- +migrate Down
DROP TABLE test;`,
			expected: "CREATE TABLE test (id INTEGER);",
		},
		{
			name:     "no markers",
			content:  "CREATE TABLE test (id INTEGER);",
			expected: "CREATE TABLE test (id INTEGER);",
		},
		{
			name: "only up marker",
			content: `-- +migrate Up
CREATE TABLE test (id INTEGER);`,
			expected: "CREATE TABLE test (id INTEGER);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractUpMigration(tt.content))
		})
	}
}
