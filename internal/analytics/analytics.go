// Package analytics pulls engagement metrics for published reels from each
// platform and keeps the latest snapshot in SQLite.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Platform names as stored.
const (
	PlatformYouTube   = "YouTube"
	PlatformFacebook  = "Facebook"
	PlatformInstagram = "Instagram"
	PlatformTwitter   = "Twitter/X"

	// DefaultLimit is how many recent posts each fetcher asks for.
	DefaultLimit = 20

	requestTimeout = 30 * time.Second
)

// Metric is the engagement of one post. Counts are nil when the platform
// does not report them.
type Metric struct {
	Platform    string `json:"platform"`
	PostID      string `json:"post_id"`
	Permalink   string `json:"permalink,omitempty"`
	Likes       *int64 `json:"likes"`
	Comments    *int64 `json:"comments"`
	Views       *int64 `json:"views"`
	Shares      *int64 `json:"shares"`
	CreatedTime string `json:"created_time,omitempty"`
}

// Fetcher is a source of engagement metrics.
type Fetcher interface {
	// Name returns the platform this fetcher reads.
	Name() string

	// FetchMetrics returns metrics for up to limit recent posts. An
	// unconfigured fetcher returns no rows and no error.
	FetchMetrics(ctx context.Context, limit int) ([]Metric, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// getJSON performs a GET with query params and decodes the JSON body.
func getJSON(ctx context.Context, hc *http.Client, rawURL string, params url.Values, header http.Header, out any) error {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// parseCount converts a numeric string to a count, nil when absent or bad.
func parseCount(s *string) *int64 {
	if s == nil {
		return nil
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// firstValue pulls data[0].values[0].value out of an insights response.
func firstValue(ins insightsResponse) *int64 {
	if len(ins.Data) == 0 || len(ins.Data[0].Values) == 0 {
		return nil
	}
	return ins.Data[0].Values[0].Value
}

type insightsResponse struct {
	Data []struct {
		Values []struct {
			Value *int64 `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

func clampLimit(limit, ceiling int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
