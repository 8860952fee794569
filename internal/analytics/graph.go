package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const graphBaseURL = "https://graph.facebook.com/v18.0"

// GraphConfig holds configuration for the Facebook and Instagram fetchers.
type GraphConfig struct {
	AccountID   string // page id or Instagram business account id
	AccessToken string
	BaseURL     string // for tests
}

type graphClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func newGraphClient(cfg GraphConfig) graphClient {
	base := cfg.BaseURL
	if base == "" {
		base = graphBaseURL
	}
	return graphClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(base, "/"),
		token:      cfg.AccessToken,
	}
}

func (g graphClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", g.token)
	return getJSON(ctx, g.httpClient, g.baseURL+"/"+path, params, nil, out)
}

// optional performs a lookup whose failure only blanks one count.
func (g graphClient) optional(ctx context.Context, path string, params url.Values, out any) {
	if err := g.get(ctx, path, params, out); err != nil {
		slog.Debug("graph lookup failed", "path", path, "error", err)
	}
}

type graphSummary struct {
	Summary struct {
		TotalCount *int64 `json:"total_count"`
	} `json:"summary"`
}

// FacebookFetcher reads video metrics for a Facebook page.
type FacebookFetcher struct {
	graph  graphClient
	pageID string
}

// NewFacebookFetcher creates a Facebook fetcher.
func NewFacebookFetcher(cfg GraphConfig) *FacebookFetcher {
	return &FacebookFetcher{graph: newGraphClient(cfg), pageID: cfg.AccountID}
}

// Name returns the platform name.
func (f *FacebookFetcher) Name() string {
	return PlatformFacebook
}

type fbVideosResponse struct {
	Data []struct {
		ID           string `json:"id"`
		PermalinkURL string `json:"permalink_url"`
		CreatedTime  string `json:"created_time"`
	} `json:"data"`
}

// FetchMetrics lists the page's recent videos and looks up reactions,
// comments, shares and views for each.
func (f *FacebookFetcher) FetchMetrics(ctx context.Context, limit int) ([]Metric, error) {
	if f.pageID == "" || f.graph.token == "" {
		return nil, nil
	}

	var videos fbVideosResponse
	err := f.graph.get(ctx, f.pageID+"/videos", url.Values{
		"fields": {"id,permalink_url,created_time,content_category"},
		"limit":  {strconv.Itoa(clampLimit(limit, 100))},
	}, &videos)
	if err != nil {
		return nil, fmt.Errorf("list page videos: %w", err)
	}

	metrics := make([]Metric, 0, len(videos.Data))
	for _, v := range videos.Data {
		var reactions, comments graphSummary
		f.graph.optional(ctx, v.ID+"/reactions", url.Values{
			"summary": {"total_count"},
			"limit":   {"0"},
		}, &reactions)
		f.graph.optional(ctx, v.ID+"/comments", url.Values{
			"summary": {"total_count"},
			"filter":  {"toplevel"},
			"limit":   {"0"},
		}, &comments)

		var shared struct {
			Shares *struct {
				Count *int64 `json:"count"`
			} `json:"shares"`
		}
		f.graph.optional(ctx, v.ID, url.Values{"fields": {"shares"}}, &shared)

		var insights insightsResponse
		f.graph.optional(ctx, v.ID+"/video_insights", url.Values{"metric": {"total_video_views"}}, &insights)

		m := Metric{
			Platform:    PlatformFacebook,
			PostID:      v.ID,
			Permalink:   v.PermalinkURL,
			Likes:       reactions.Summary.TotalCount,
			Comments:    comments.Summary.TotalCount,
			Views:       firstValue(insights),
			CreatedTime: v.CreatedTime,
		}
		if shared.Shares != nil {
			m.Shares = shared.Shares.Count
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// InstagramFetcher reads media metrics for an Instagram business account.
type InstagramFetcher struct {
	graph     graphClient
	accountID string
}

// NewInstagramFetcher creates an Instagram fetcher.
func NewInstagramFetcher(cfg GraphConfig) *InstagramFetcher {
	return &InstagramFetcher{graph: newGraphClient(cfg), accountID: cfg.AccountID}
}

// Name returns the platform name.
func (i *InstagramFetcher) Name() string {
	return PlatformInstagram
}

type igMediaResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Permalink string `json:"permalink"`
		Timestamp string `json:"timestamp"`
	} `json:"data"`
}

// FetchMetrics lists recent media with like and comment counts, plus views
// for video media. Instagram does not report shares.
func (i *InstagramFetcher) FetchMetrics(ctx context.Context, limit int) ([]Metric, error) {
	if i.accountID == "" || i.graph.token == "" {
		return nil, nil
	}

	var media igMediaResponse
	err := i.graph.get(ctx, i.accountID+"/media", url.Values{
		"fields": {"id,media_type,caption,permalink,timestamp"},
		"limit":  {strconv.Itoa(clampLimit(limit, 100))},
	}, &media)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	metrics := make([]Metric, 0, len(media.Data))
	for _, item := range media.Data {
		var details struct {
			LikeCount     *int64 `json:"like_count"`
			CommentsCount *int64 `json:"comments_count"`
			MediaType     string `json:"media_type"`
		}
		i.graph.optional(ctx, item.ID, url.Values{"fields": {"like_count,comments_count,media_type"}}, &details)

		m := Metric{
			Platform:    PlatformInstagram,
			PostID:      item.ID,
			Permalink:   item.Permalink,
			Likes:       details.LikeCount,
			Comments:    details.CommentsCount,
			CreatedTime: item.Timestamp,
		}

		switch details.MediaType {
		case "VIDEO", "REELS", "IGTV":
			var insights insightsResponse
			i.graph.optional(ctx, item.ID+"/insights", url.Values{"metric": {"video_views"}}, &insights)
			m.Views = firstValue(insights)
		}

		metrics = append(metrics, m)
	}
	return metrics, nil
}
