package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the SQL statements used by the application.
type Queries struct {
	db DBTX
}

// New creates Queries over a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createReel = `INSERT INTO reels (id, title, file, script, created_at)
VALUES (?, ?, ?, ?, ?)`

// CreateReelParams are the columns of a new reel.
type CreateReelParams struct {
	ID        string
	Title     string
	File      string
	Script    sql.NullString
	CreatedAt time.Time
}

func (q *Queries) CreateReel(ctx context.Context, arg CreateReelParams) (Reel, error) {
	if _, err := q.db.ExecContext(ctx, createReel, arg.ID, arg.Title, arg.File, arg.Script, arg.CreatedAt.UTC()); err != nil {
		return Reel{}, err
	}
	return q.GetReel(ctx, arg.ID)
}

const getReel = `SELECT id, title, file, script, created_at FROM reels WHERE id = ?`

func (q *Queries) GetReel(ctx context.Context, id string) (Reel, error) {
	row := q.db.QueryRowContext(ctx, getReel, id)
	var r Reel
	err := row.Scan(&r.ID, &r.Title, &r.File, &r.Script, &r.CreatedAt)
	return r, err
}

const listReels = `SELECT id, title, file, script, created_at FROM reels
ORDER BY created_at DESC, id DESC
LIMIT ?`

func (q *Queries) ListReels(ctx context.Context, limit int64) ([]Reel, error) {
	rows, err := q.db.QueryContext(ctx, listReels, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Reel
	for rows.Next() {
		var r Reel
		if err := rows.Scan(&r.ID, &r.Title, &r.File, &r.Script, &r.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countReels = `SELECT COUNT(*) FROM reels`

func (q *Queries) CountReels(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countReels).Scan(&count)
	return count, err
}

const createUpload = `INSERT INTO uploads (reel_id, platform, status, url, message, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

const getUpload = `SELECT id, reel_id, platform, status, url, message, created_at FROM uploads WHERE id = ?`

// CreateUploadParams are the columns of a new upload attempt.
type CreateUploadParams struct {
	ReelID   sql.NullString
	Platform string
	Status   string
	Url      sql.NullString
	Message  sql.NullString
}

func (q *Queries) CreateUpload(ctx context.Context, arg CreateUploadParams) (Upload, error) {
	res, err := q.db.ExecContext(ctx, createUpload, arg.ReelID, arg.Platform, arg.Status, arg.Url, arg.Message, time.Now().UTC())
	if err != nil {
		return Upload{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Upload{}, err
	}

	var u Upload
	err = q.db.QueryRowContext(ctx, getUpload, id).
		Scan(&u.ID, &u.ReelID, &u.Platform, &u.Status, &u.Url, &u.Message, &u.CreatedAt)
	return u, err
}

const listUploadsByReel = `SELECT id, reel_id, platform, status, url, message, created_at
FROM uploads WHERE reel_id = ? ORDER BY id`

func (q *Queries) ListUploadsByReel(ctx context.Context, reelID string) ([]Upload, error) {
	rows, err := q.db.QueryContext(ctx, listUploadsByReel, reelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.ReelID, &u.Platform, &u.Status, &u.Url, &u.Message, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countUploadsByStatus = `SELECT platform, status, COUNT(*) FROM uploads
GROUP BY platform, status ORDER BY platform, status`

// CountUploadsByStatusRow is one platform/status bucket.
type CountUploadsByStatusRow struct {
	Platform string
	Status   string
	Count    int64
}

func (q *Queries) CountUploadsByStatus(ctx context.Context) ([]CountUploadsByStatusRow, error) {
	rows, err := q.db.QueryContext(ctx, countUploadsByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountUploadsByStatusRow
	for rows.Next() {
		var r CountUploadsByStatusRow
		if err := rows.Scan(&r.Platform, &r.Status, &r.Count); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertMetric = `INSERT INTO analytics (platform, post_id, permalink, likes, comments, views, shares, created_time, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(platform, post_id) DO UPDATE SET
    permalink = excluded.permalink,
    likes = excluded.likes,
    comments = excluded.comments,
    views = excluded.views,
    shares = excluded.shares,
    created_time = excluded.created_time,
    fetched_at = excluded.fetched_at`

// UpsertMetricParams are the columns of a metric snapshot.
type UpsertMetricParams struct {
	Platform    string
	PostID      string
	Permalink   sql.NullString
	Likes       sql.NullInt64
	Comments    sql.NullInt64
	Views       sql.NullInt64
	Shares      sql.NullInt64
	CreatedTime sql.NullString
	FetchedAt   time.Time
}

func (q *Queries) UpsertMetric(ctx context.Context, arg UpsertMetricParams) error {
	_, err := q.db.ExecContext(ctx, upsertMetric,
		arg.Platform, arg.PostID, arg.Permalink,
		arg.Likes, arg.Comments, arg.Views, arg.Shares,
		arg.CreatedTime, arg.FetchedAt.UTC(),
	)
	return err
}

const listMetrics = `SELECT platform, post_id, permalink, likes, comments, views, shares, created_time, fetched_at
FROM analytics
WHERE (? = '' OR platform = ?)
ORDER BY fetched_at DESC, platform, post_id
LIMIT ?`

// ListMetricsParams filters metrics. An empty platform means all.
type ListMetricsParams struct {
	Platform string
	Limit    int64
}

func (q *Queries) ListMetrics(ctx context.Context, arg ListMetricsParams) ([]Metric, error) {
	rows, err := q.db.QueryContext(ctx, listMetrics, arg.Platform, arg.Platform, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Metric
	for rows.Next() {
		var m Metric
		if err := rows.Scan(&m.Platform, &m.PostID, &m.Permalink, &m.Likes, &m.Comments,
			&m.Views, &m.Shares, &m.CreatedTime, &m.FetchedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const summarizeMetrics = `SELECT platform, COUNT(*),
    COALESCE(SUM(likes), 0), COALESCE(SUM(comments), 0),
    COALESCE(SUM(views), 0), COALESCE(SUM(shares), 0)
FROM analytics GROUP BY platform ORDER BY platform`

// SummarizeMetricsRow holds per-platform totals.
type SummarizeMetricsRow struct {
	Platform string
	Posts    int64
	Likes    int64
	Comments int64
	Views    int64
	Shares   int64
}

func (q *Queries) SummarizeMetrics(ctx context.Context) ([]SummarizeMetricsRow, error) {
	rows, err := q.db.QueryContext(ctx, summarizeMetrics)
	if err != nil {
		return nil, fmt.Errorf("summarize metrics: %w", err)
	}
	defer rows.Close()

	var items []SummarizeMetricsRow
	for rows.Next() {
		var r SummarizeMetricsRow
		if err := rows.Scan(&r.Platform, &r.Posts, &r.Likes, &r.Comments, &r.Views, &r.Shares); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
