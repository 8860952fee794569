package db

import (
	"database/sql"
	"time"
)

// Reel is a rendered video recorded in history.
type Reel struct {
	ID        string
	Title     string
	File      string
	Script    sql.NullString
	CreatedAt time.Time
}

// Upload is one attempt to publish a reel to a platform.
type Upload struct {
	ID        int64
	ReelID    sql.NullString
	Platform  string
	Status    string
	Url       sql.NullString
	Message   sql.NullString
	CreatedAt time.Time
}

// Metric is the latest engagement snapshot of one post.
type Metric struct {
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
