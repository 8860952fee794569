// Package uploader publishes finished reels to social platforms.
package uploader

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdulachik/reelsmith/internal/config"
	"github.com/abdulachik/reelsmith/internal/db"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Platform names as shown to users.
const (
	TikTok   = "TikTok"
	YouTube  = "YouTube"
	LinkedIn = "LinkedIn"
	Facebook = "Facebook"
	Twitter  = "Twitter/X"
)

// SupportedPlatforms lists the platforms with an uploader, in display order.
var SupportedPlatforms = []string{TikTok, YouTube, LinkedIn, Facebook, Twitter}

// Content is what gets published.
type Content struct {
	Video    string   `json:"video"` // local path or URL
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// Result is the outcome of one platform upload.
type Result struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
	Message  string `json:"message"`
}

// OK reports whether the upload succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Uploader publishes to one platform. Failures are reported in the Result.
type Uploader interface {
	// Platform returns the display name of the platform.
	Platform() string

	// Upload publishes content.
	Upload(ctx context.Context, content Content) Result
}

// Router dispatches uploads to platform adapters by name.
type Router struct {
	uploaders map[string]Uploader
}

// NewRouter creates a router over the given adapters.
func NewRouter(uploaders ...Uploader) *Router {
	r := &Router{uploaders: make(map[string]Uploader, len(uploaders))}
	for _, u := range uploaders {
		r.uploaders[normalize(u.Platform())] = u
	}
	return r
}

// NewDefaultRouter wires every supported platform from credentials.
func NewDefaultRouter(creds config.PlatformCredentials) *Router {
	return NewRouter(
		NewTikTok(creds),
		NewYouTube(creds),
		NewLinkedIn(creds),
		NewFacebook(creds),
		NewTwitter(creds),
	)
}

// Upload publishes content to one platform.
func (r *Router) Upload(ctx context.Context, platform string, content Content) Result {
	name := strings.TrimSpace(platform)
	u, ok := r.uploaders[normalize(name)]
	if !ok {
		return Result{Platform: name, Status: StatusError, Message: "Platform not supported"}
	}

	if err := ctx.Err(); err != nil {
		return Result{Platform: u.Platform(), Status: StatusError, Message: err.Error()}
	}

	res := u.Upload(ctx, content)
	slog.Info("upload finished", "platform", res.Platform, "status", res.Status, "message", res.Message)
	return res
}

// UploadAll publishes content to each platform in order.
func (r *Router) UploadAll(ctx context.Context, platforms []string, content Content) []Result {
	results := make([]Result, 0, len(platforms))
	for _, p := range platforms {
		results = append(results, r.Upload(ctx, p, content))
	}
	return results
}

// Record stores upload results against a reel. reelID may be empty.
func Record(ctx context.Context, q *db.Queries, reelID string, results []Result) error {
	for _, res := range results {
		_, err := q.CreateUpload(ctx, db.CreateUploadParams{
			ReelID:   sql.NullString{String: reelID, Valid: reelID != ""},
			Platform: res.Platform,
			Status:   res.Status,
			Url:      sql.NullString{String: res.URL, Valid: res.URL != ""},
			Message:  sql.NullString{String: res.Message, Valid: res.Message != ""},
		})
		if err != nil {
			return fmt.Errorf("record %s upload: %w", res.Platform, err)
		}
	}
	return nil
}

func normalize(platform string) string {
	switch p := strings.ToLower(strings.TrimSpace(platform)); p {
	case "twitter", "x", "twitter/x":
		return "twitter/x"
	default:
		return p
	}
}

func missing(platform, message string) Result {
	return Result{Platform: platform, Status: StatusError, Message: message}
}

func simulated(platform, url string, content Content, limit int) Result {
	post := FormatPost(content.Caption, content.Hashtags, limit)
	slog.Debug("simulated upload", "platform", platform, "video", content.Video, "post", post)
	return Result{Platform: platform, Status: StatusSuccess, URL: url, Message: "Uploaded (simulated)"}
}
