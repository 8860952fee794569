package analytics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const twitterBaseURL = "https://api.twitter.com/2"

// TwitterFetcher reads public tweet metrics with an app-only bearer token.
type TwitterFetcher struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
	username    string
	userID      string
}

// TwitterConfig holds configuration for the Twitter fetcher. Either
// Username or UserID identifies the account.
type TwitterConfig struct {
	BearerToken string
	Username    string
	UserID      string
	BaseURL     string // for tests
}

// NewTwitterFetcher creates a Twitter/X fetcher.
func NewTwitterFetcher(cfg TwitterConfig) *TwitterFetcher {
	base := cfg.BaseURL
	if base == "" {
		base = twitterBaseURL
	}
	return &TwitterFetcher{
		httpClient:  newHTTPClient(),
		baseURL:     strings.TrimRight(base, "/"),
		bearerToken: cfg.BearerToken,
		username:    cfg.Username,
		userID:      cfg.UserID,
	}
}

// Name returns the platform name.
func (t *TwitterFetcher) Name() string {
	return PlatformTwitter
}

type tweetsResponse struct {
	Data []struct {
		ID            string `json:"id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount    *int64 `json:"like_count"`
			ReplyCount   *int64 `json:"reply_count"`
			RetweetCount *int64 `json:"retweet_count"`
			ViewCount    *int64 `json:"view_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// FetchMetrics lists recent tweets. Replies count as comments and retweets
// as shares; views are present only on some API tiers.
func (t *TwitterFetcher) FetchMetrics(ctx context.Context, limit int) ([]Metric, error) {
	if t.bearerToken == "" {
		return nil, nil
	}
	header := http.Header{"Authorization": {"Bearer " + t.bearerToken}}

	userID := t.userID
	if userID == "" && t.username != "" {
		var user struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := getJSON(ctx, t.httpClient, t.baseURL+"/users/by/username/"+url.PathEscape(t.username), nil, header, &user); err != nil {
			return nil, fmt.Errorf("resolve user %s: %w", t.username, err)
		}
		userID = user.Data.ID
	}
	if userID == "" {
		return nil, nil
	}

	var tweets tweetsResponse
	err := getJSON(ctx, t.httpClient, t.baseURL+"/users/"+url.PathEscape(userID)+"/tweets", url.Values{
		"max_results":  {strconv.Itoa(clampLimit(limit, 100))},
		"tweet.fields": {"created_at,public_metrics"},
	}, header, &tweets)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}

	metrics := make([]Metric, 0, len(tweets.Data))
	for _, tw := range tweets.Data {
		m := Metric{
			Platform:    PlatformTwitter,
			PostID:      tw.ID,
			Likes:       tw.PublicMetrics.LikeCount,
			Comments:    tw.PublicMetrics.ReplyCount,
			Views:       tw.PublicMetrics.ViewCount,
			Shares:      tw.PublicMetrics.RetweetCount,
			CreatedTime: tw.CreatedAt,
		}
		if t.username != "" {
			m.Permalink = "https://x.com/" + t.username + "/status/" + tw.ID
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
