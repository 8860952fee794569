package analytics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeFetcher reads video statistics for a channel.
type YouTubeFetcher struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	channelID  string
}

// YouTubeConfig holds configuration for the YouTube fetcher.
type YouTubeConfig struct {
	APIKey    string
	ChannelID string
	BaseURL   string // for tests
}

// NewYouTubeFetcher creates a YouTube fetcher.
func NewYouTubeFetcher(cfg YouTubeConfig) *YouTubeFetcher {
	base := cfg.BaseURL
	if base == "" {
		base = youtubeBaseURL
	}
	return &YouTubeFetcher{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(base, "/"),
		apiKey:     cfg.APIKey,
		channelID:  cfg.ChannelID,
	}
}

// Name returns the platform name.
func (y *YouTubeFetcher) Name() string {
	return PlatformYouTube
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type ytVideosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    *string `json:"viewCount"`
			LikeCount    *string `json:"likeCount"`
			CommentCount *string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// FetchMetrics lists the channel's latest uploads and their statistics.
// YouTube does not report shares.
func (y *YouTubeFetcher) FetchMetrics(ctx context.Context, limit int) ([]Metric, error) {
	if y.apiKey == "" || y.channelID == "" {
		return nil, nil
	}

	var search ytSearchResponse
	err := getJSON(ctx, y.httpClient, y.baseURL+"/search", url.Values{
		"key":        {y.apiKey},
		"channelId":  {y.channelID},
		"part":       {"id,snippet"},
		"order":      {"date"},
		"maxResults": {strconv.Itoa(clampLimit(limit, 50))},
		"type":       {"video"},
	}, nil, &search)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	var ids []string
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var videos ytVideosResponse
	err = getJSON(ctx, y.httpClient, y.baseURL+"/videos", url.Values{
		"key":  {y.apiKey},
		"id":   {strings.Join(ids, ",")},
		"part": {"statistics,snippet"},
	}, nil, &videos)
	if err != nil {
		return nil, fmt.Errorf("video statistics: %w", err)
	}

	metrics := make([]Metric, 0, len(videos.Items))
	for _, v := range videos.Items {
		metrics = append(metrics, Metric{
			Platform:    PlatformYouTube,
			PostID:      v.ID,
			Permalink:   "https://youtu.be/" + v.ID,
			Likes:       parseCount(v.Statistics.LikeCount),
			Comments:    parseCount(v.Statistics.CommentCount),
			Views:       parseCount(v.Statistics.ViewCount),
			CreatedTime: v.Snippet.PublishedAt,
		})
	}
	return metrics, nil
}
