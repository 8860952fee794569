// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abdulachik/reelsmith/internal/db"
)

// New returns a migrated store in a temp dir that is closed with the test.
func New(t testing.TB) *db.Store {
	t.Helper()

	ctx := context.Background()
	store, err := db.NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}
