package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdulachik/reelsmith/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestNewFetchers_Unconfigured(t *testing.T) {
	fetchers := NewFetchers(config.PlatformCredentials{})
	require.Len(t, fetchers, 4)

	for _, f := range fetchers {
		rows, err := f.FetchMetrics(context.Background(), 10)
		assert.NoError(t, err, f.Name())
		assert.Empty(t, rows, f.Name())
	}
}

func TestYouTubeFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("key"))
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "chan", r.URL.Query().Get("channelId"))
			assert.Equal(t, "50", r.URL.Query().Get("maxResults"))
			w.Write([]byte(`{"items":[{"id":{"videoId":"v1"}},{"id":{"channelId":"c"}},{"id":{"videoId":"v2"}}]}`))
		case "/videos":
			assert.Equal(t, "v1,v2", r.URL.Query().Get("id"))
			w.Write([]byte(`{"items":[
				{"id":"v1","snippet":{"publishedAt":"2026-01-01T00:00:00Z"},"statistics":{"viewCount":"100","likeCount":"7","commentCount":"2"}},
				{"id":"v2","snippet":{},"statistics":{"viewCount":"5"}}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := NewYouTubeFetcher(YouTubeConfig{APIKey: "key", ChannelID: "chan", BaseURL: server.URL})
	rows, err := f.FetchMetrics(context.Background(), 80)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "YouTube", rows[0].Platform)
	assert.Equal(t, "https://youtu.be/v1", rows[0].Permalink)
	assert.Equal(t, int64(100), *rows[0].Views)
	assert.Equal(t, int64(7), *rows[0].Likes)
	assert.Nil(t, rows[0].Shares)
	assert.Equal(t, "2026-01-01T00:00:00Z", rows[0].CreatedTime)
	assert.Nil(t, rows[1].Likes)
}

func TestYouTubeFetcher_SearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("quota"))
	}))
	defer server.Close()

	_, err := NewYouTubeFetcher(YouTubeConfig{APIKey: "k", ChannelID: "c", BaseURL: server.URL}).FetchMetrics(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFacebookFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		switch r.URL.Path {
		case "/page/videos":
			w.Write([]byte(`{"data":[{"id":"vid1","permalink_url":"/p/vid1","created_time":"2026-02-01"}]}`))
		case "/vid1/reactions":
			w.Write([]byte(`{"summary":{"total_count":11}}`))
		case "/vid1/comments":
			assert.Equal(t, "toplevel", r.URL.Query().Get("filter"))
			w.Write([]byte(`{"summary":{"total_count":4}}`))
		case "/vid1":
			w.Write([]byte(`{"shares":{"count":2}}`))
		case "/vid1/video_insights":
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := NewFacebookFetcher(GraphConfig{AccountID: "page", AccessToken: "tok", BaseURL: server.URL})
	rows, err := f.FetchMetrics(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	m := rows[0]
	assert.Equal(t, "Facebook", m.Platform)
	assert.Equal(t, "vid1", m.PostID)
	assert.Equal(t, int64(11), *m.Likes)
	assert.Equal(t, int64(4), *m.Comments)
	assert.Equal(t, int64(2), *m.Shares)
	assert.Nil(t, m.Views)
}

func TestInstagramFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ig/media":
			w.Write([]byte(`{"data":[{"id":"m1","permalink":"https://ig/m1","timestamp":"t1"},{"id":"m2"}]}`))
		case "/m1":
			w.Write([]byte(`{"like_count":5,"comments_count":1,"media_type":"REELS"}`))
		case "/m1/insights":
			assert.Equal(t, "video_views", r.URL.Query().Get("metric"))
			w.Write([]byte(`{"data":[{"values":[{"value":300}]}]}`))
		case "/m2":
			w.Write([]byte(`{"like_count":2,"media_type":"IMAGE"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := NewInstagramFetcher(GraphConfig{AccountID: "ig", AccessToken: "tok", BaseURL: server.URL})
	rows, err := f.FetchMetrics(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(300), *rows[0].Views)
	assert.Equal(t, int64(5), *rows[0].Likes)
	assert.Nil(t, rows[0].Shares)
	assert.Nil(t, rows[1].Views)
	assert.Nil(t, rows[1].Comments)
}

func TestTwitterFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer bt", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/users/by/username/glowmug":
			writeJSON(w, map[string]any{"data": map[string]string{"id": "u1"}})
		case "/users/u1/tweets":
			assert.Equal(t, "10", r.URL.Query().Get("max_results"))
			w.Write([]byte(`{"data":[{"id":"t1","created_at":"c","public_metrics":{"like_count":3,"reply_count":1,"retweet_count":2}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := NewTwitterFetcher(TwitterConfig{BearerToken: "bt", Username: "glowmug", BaseURL: server.URL})
	rows, err := f.FetchMetrics(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, Metric{
		Platform:    "Twitter/X",
		PostID:      "t1",
		Permalink:   "https://x.com/glowmug/status/t1",
		Likes:       n(3),
		Comments:    n(1),
		Shares:      n(2),
		CreatedTime: "c",
	}, rows[0])
}

func TestTwitterFetcher_NoAccount(t *testing.T) {
	rows, err := NewTwitterFetcher(TwitterConfig{BearerToken: "bt"}).FetchMetrics(context.Background(), 10)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
