// Package history records rendered reels and the files they were saved to.
package history

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/abdulachik/reelsmith/internal/db"
	"github.com/abdulachik/reelsmith/internal/reelindex"
	"github.com/abdulachik/reelsmith/internal/storage"
	"github.com/oklog/ulid/v2"
)

const (
	// DefaultLimit is how many reels List returns when no limit is given.
	DefaultLimit = 20

	maxSlugLen = 60
	fileName   = "video.mp4"
	dirLayout  = "20060102-150405"
)

// ErrUnavailable is returned when no database is configured. Callers treat
// it as "no history" rather than a failure.
var ErrUnavailable = errors.New("history store not configured")

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Reel is one saved render.
type Reel struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	File      string    `json:"file"`
	Script    string    `json:"script,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Meta is optional context stored alongside a reel and fed to the index.
type Meta struct {
	Script      string
	ProductName string
	Platforms   []string
}

// Index is the subset of the reel index used by history.
type Index interface {
	Add(ctx context.Context, e reelindex.Entry) (uint64, error)
	Search(ctx context.Context, query string, k int) ([]reelindex.Hit, error)
}

// Store saves reels to a storage backend and records them in SQLite.
type Store struct {
	queries *db.Queries
	backend storage.Backend
	index   Index
	client  *http.Client
}

// Option configures a Store.
type Option func(*Store)

// WithIndex indexes every saved reel.
func WithIndex(idx Index) Option {
	return func(s *Store) { s.index = idx }
}

// WithHTTPClient sets the client used to download rendered videos.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// New creates a history store. queries may be nil, in which case saving
// returns ErrUnavailable and listing returns nothing.
func New(queries *db.Queries, backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		queries: queries,
		backend: backend,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slugify turns a title into a filesystem-safe name.
func Slugify(title string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "reel"
	}
	return slug
}

// Key is the storage key for a reel rendered at ts.
func Key(title string, ts time.Time) string {
	return ts.Format(dirLayout) + "-" + Slugify(title) + "/" + fileName
}

// Save records a reel that already lives at fileRef.
func (s *Store) Save(ctx context.Context, title, fileRef string, ts time.Time, meta Meta) (Reel, error) {
	if s == nil || s.queries == nil {
		return Reel{}, ErrUnavailable
	}

	id, err := ulid.New(ulid.Timestamp(ts), rand.Reader)
	if err != nil {
		return Reel{}, fmt.Errorf("generate id: %w", err)
	}

	row, err := s.queries.CreateReel(ctx, db.CreateReelParams{
		ID:        id.String(),
		Title:     title,
		File:      fileRef,
		Script:    sql.NullString{String: meta.Script, Valid: meta.Script != ""},
		CreatedAt: ts,
	})
	if err != nil {
		return Reel{}, fmt.Errorf("save reel: %w", err)
	}

	if s.index != nil {
		_, err := s.index.Add(ctx, reelindex.Entry{
			ReelID:      row.ID,
			Title:       title,
			Script:      meta.Script,
			ProductName: meta.ProductName,
			Platforms:   strings.Join(meta.Platforms, ", "),
		})
		if err != nil {
			slog.Warn("failed to index reel", "id", row.ID, "error", err)
		}
	}

	slog.Info("reel saved", "id", row.ID, "file", fileRef)
	return fromRow(row), nil
}

// SaveVideo fetches src (an http(s) URL or a local path), stores it under
// <YYYYMMDD-HHMMSS>-<slug>/video.mp4 and records it.
func (s *Store) SaveVideo(ctx context.Context, title, src string, meta Meta) (Reel, error) {
	if s == nil || s.queries == nil {
		return Reel{}, ErrUnavailable
	}
	if s.backend == nil {
		return Reel{}, fmt.Errorf("no storage backend configured")
	}

	ts := time.Now().UTC()
	local := src

	if isURL(src) {
		tmp, err := s.download(ctx, src)
		if err != nil {
			return Reel{}, err
		}
		defer os.Remove(tmp)
		local = tmp
	}

	ref, err := s.backend.Put(ctx, Key(title, ts), local)
	if err != nil {
		return Reel{}, fmt.Errorf("store video: %w", err)
	}

	return s.Save(ctx, title, ref, ts, meta)
}

// List returns saved reels, newest first. limit <= 0 means DefaultLimit.
func (s *Store) List(ctx context.Context, limit int) ([]Reel, error) {
	if s == nil || s.queries == nil {
		return []Reel{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.queries.ListReels(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list reels: %w", err)
	}

	out := make([]Reel, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// Search finds saved reels by meaning. Without an index it returns
// ErrUnavailable.
func (s *Store) Search(ctx context.Context, query string, k int) ([]reelindex.Hit, error) {
	if s == nil || s.index == nil {
		return nil, ErrUnavailable
	}
	if k <= 0 {
		k = 5
	}
	return s.index.Search(ctx, query, k)
}

func (s *Store) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download video: status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "reel-*.mp4")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write video: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close video: %w", err)
	}
	return f.Name(), nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fromRow(r db.Reel) Reel {
	return Reel{
		ID:        r.ID,
		Title:     r.Title,
		File:      r.File,
		Script:    r.Script.String,
		CreatedAt: r.CreatedAt,
	}
}
