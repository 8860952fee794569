// Package video turns finished scripts into rendered video through an
// external rendering service.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	mockVideoURL = "https://example.com/placeholder-video.mp4"
	mockJobID    = "dev-mock-job-0001"
	mockMessage  = "VIDEO_API_BASE_URL not set. Returning mock URL."

	maxErrorDetail = 1000
)

// Request describes the video to render.
type Request struct {
	Script          string
	ProductName     string
	Platforms       []string
	AspectRatios    []string
	DurationSeconds int
	Voice           string
	MusicStyle      string
}

// Result is the normalized response of a render call.
type Result struct {
	Status   string `json:"status"`
	VideoURL string `json:"video_url,omitempty"`
	JobID    string `json:"job_id,omitempty"`
	Message  string `json:"message"`
}

// Provider renders a script into a video.
type Provider interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// HTTPProvider posts scripts to <base>/generate.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPProvider creates a provider. An empty baseURL yields a mock that
// always succeeds with a placeholder URL.
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Script string       `json:"script"`
	Meta   generateMeta `json:"meta"`
}

type generateMeta struct {
	ProductName     string   `json:"product_name"`
	Platforms       []string `json:"platforms"`
	AspectRatios    []string `json:"aspect_ratios"`
	DurationSeconds int      `json:"duration_seconds"`
	Voice           *string  `json:"voice"`
	MusicStyle      *string  `json:"music_style"`
}

type generateResponse struct {
	Status   string `json:"status"`
	VideoURL string `json:"video_url"`
	JobID    string `json:"job_id"`
	Message  string `json:"message"`
}

// Generate renders req. Transport, status and decoding failures are errors;
// a service-reported failure comes back as a Result with StatusError.
func (p *HTTPProvider) Generate(ctx context.Context, req Request) (Result, error) {
	if p.baseURL == "" {
		slog.Debug("video API not configured, returning mock result")
		return Result{
			Status:   StatusSuccess,
			VideoURL: mockVideoURL,
			JobID:    mockJobID,
			Message:  mockMessage,
		}, nil
	}

	body, err := json.Marshal(generateRequest{
		Script: req.Script,
		Meta: generateMeta{
			ProductName:     req.ProductName,
			Platforms:       nonNil(req.Platforms),
			AspectRatios:    nonNil(req.AspectRatios),
			DurationSeconds: req.DurationSeconds,
			Voice:           optional(req.Voice),
			MusicStyle:      optional(req.MusicStyle),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("failed to reach video API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("video API error %d: %s", resp.StatusCode, truncate(string(respBody), maxErrorDetail))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Result{}, fmt.Errorf("video API returned non-JSON response: %s", truncate(string(respBody), 500))
	}

	if out.Status == "" {
		out.Status = StatusSuccess
	}

	slog.Info("video requested", "status", out.Status, "job_id", out.JobID)
	return Result(out), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
