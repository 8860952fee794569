package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulachik/reelsmith/internal/db"
	"golang.org/x/sync/errgroup"
)

// Aggregator combines metrics from every fetcher and stores them.
type Aggregator struct {
	fetchers []Fetcher
	queries  *db.Queries
	limit    int
}

// AggregatorConfig holds aggregator configuration.
type AggregatorConfig struct {
	Queries  *db.Queries
	Fetchers []Fetcher
	Limit    int
}

// Report is the outcome of a refresh.
type Report struct {
	Metrics []Metric
	Errors  map[string]error // per fetcher
}

// NewAggregator creates a new aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Aggregator{fetchers: cfg.Fetchers, queries: cfg.Queries, limit: limit}
}

// Refresh fetches from all sources concurrently, merges the rows in fetcher
// order, drops duplicate (platform, post_id) pairs keeping the last, and
// upserts the result. A failing source is logged and reported; the others
// are still stored.
func (a *Aggregator) Refresh(ctx context.Context) (*Report, error) {
	batches := make([][]Metric, len(a.fetchers))
	errs := make([]error, len(a.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range a.fetchers {
		g.Go(func() error {
			slog.Debug("fetching metrics", "source", f.Name())

			rows, err := f.FetchMetrics(gctx, a.limit)
			if err != nil {
				slog.Error("metrics fetch failed", "source", f.Name(), "error", err)
				errs[i] = err
				return nil
			}

			slog.Debug("fetched metrics", "source", f.Name(), "count", len(rows))
			batches[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Errors: make(map[string]error)}
	for i, err := range errs {
		if err != nil {
			report.Errors[a.fetchers[i].Name()] = err
		}
	}

	var all []Metric
	for _, b := range batches {
		all = append(all, b...)
	}
	report.Metrics = Dedup(all)

	if a.queries != nil {
		now := time.Now().UTC()
		for _, m := range report.Metrics {
			if err := a.queries.UpsertMetric(ctx, toParams(m, now)); err != nil {
				return report, fmt.Errorf("store metric %s/%s: %w", m.Platform, m.PostID, err)
			}
		}
	}

	slog.Info("analytics refresh complete",
		"sources", len(a.fetchers),
		"failed", len(report.Errors),
		"stored", len(report.Metrics),
	)

	return report, nil
}

// Latest returns stored metrics, optionally for one platform.
func (a *Aggregator) Latest(ctx context.Context, platform string, limit int) ([]Metric, error) {
	if a.queries == nil {
		return []Metric{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := a.queries.ListMetrics(ctx, db.ListMetricsParams{Platform: platform, Limit: int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}

	out := make([]Metric, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// Summary returns per-platform totals.
func (a *Aggregator) Summary(ctx context.Context) ([]db.SummarizeMetricsRow, error) {
	if a.queries == nil {
		return nil, nil
	}
	return a.queries.SummarizeMetrics(ctx)
}

// Dedup removes rows with a repeated (platform, post_id), keeping the last
// occurrence at the position of the first.
func Dedup(rows []Metric) []Metric {
	type key struct{ platform, postID string }

	index := make(map[key]int, len(rows))
	out := make([]Metric, 0, len(rows))
	for _, m := range rows {
		k := key{m.Platform, m.PostID}
		if i, ok := index[k]; ok {
			out[i] = m
			continue
		}
		index[k] = len(out)
		out = append(out, m)
	}
	return out
}

func toParams(m Metric, fetchedAt time.Time) db.UpsertMetricParams {
	return db.UpsertMetricParams{
		Platform:    m.Platform,
		PostID:      m.PostID,
		Permalink:   sql.NullString{String: m.Permalink, Valid: m.Permalink != ""},
		Likes:       nullInt(m.Likes),
		Comments:    nullInt(m.Comments),
		Views:       nullInt(m.Views),
		Shares:      nullInt(m.Shares),
		CreatedTime: sql.NullString{String: m.CreatedTime, Valid: m.CreatedTime != ""},
		FetchedAt:   fetchedAt,
	}
}

func fromRow(r db.Metric) Metric {
	return Metric{
		Platform:    r.Platform,
		PostID:      r.PostID,
		Permalink:   r.Permalink.String,
		Likes:       intPtr(r.Likes),
		Comments:    intPtr(r.Comments),
		Views:       intPtr(r.Views),
		Shares:      intPtr(r.Shares),
		CreatedTime: r.CreatedTime.String,
	}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
