package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdulachik/reelsmith/internal/extract"
)

const veoModel = "veo-3"

// ErrNoVideoURL means the clip service answered without a downloadable URL.
var ErrNoVideoURL = errors.New("unsupported Veo response shape; no video_url found")

// VeoClient renders short clips from visual prompts.
type VeoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewVeoClient creates a clip client.
func NewVeoClient(baseURL, apiKey string, timeout time.Duration) *VeoClient {
	return &VeoClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type veoRequest struct {
	Model           string `json:"model"`
	Prompt          string `json:"prompt"`
	DurationSeconds int    `json:"duration_seconds"`
	Format          string `json:"format"`
}

type veoResponse struct {
	VideoURL string `json:"video_url"`
}

// GenerateClip renders prompt and saves the MP4 to outPath. It returns the
// URL the clip was downloaded from.
func (v *VeoClient) GenerateClip(ctx context.Context, prompt string, durationSeconds int, outPath string) (string, error) {
	if v.baseURL == "" {
		return "", errors.New("GOOGLE_VEO_API_BASE_URL is not set")
	}
	if v.apiKey == "" {
		return "", errors.New("GOOGLE_VEO_API_KEY is not set")
	}

	body, err := json.Marshal(veoRequest{
		Model:           veoModel,
		Prompt:          prompt,
		DurationSeconds: durationSeconds,
		Format:          "mp4",
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("veo API error %d: %s", resp.StatusCode, truncate(string(respBody), 800))
	}

	var out veoResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", errors.New("veo API returned non-JSON response")
	}
	if out.VideoURL == "" {
		return "", ErrNoVideoURL
	}

	if err := v.download(ctx, out.VideoURL, outPath); err != nil {
		return "", fmt.Errorf("failed to download video: %w", err)
	}
	return out.VideoURL, nil
}

// SceneClips renders scene_<id>.mp4 into outDir for every usable scene and
// returns the paths written. A failed scene is logged and skipped.
func (v *VeoClient) SceneClips(ctx context.Context, scenes []extract.Scene, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create clips dir: %w", err)
	}

	var paths []string
	for _, scene := range scenes {
		if scene.ID <= 0 || strings.TrimSpace(scene.VisualPrompt) == "" || scene.Duration <= 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		dest := filepath.Join(outDir, ClipName(scene.ID))
		slog.Info("generating scene clip", "scene", scene.ID)

		if _, err := v.GenerateClip(ctx, scene.VisualPrompt, scene.Duration, dest); err != nil {
			slog.Warn("scene clip failed", "scene", scene.ID, "error", err)
			continue
		}
		paths = append(paths, dest)
	}
	return paths, nil
}

// ClipName is the file name of a scene's clip.
func ClipName(sceneID int) string {
	return fmt.Sprintf("scene_%d.mp4", sceneID)
}

func (v *VeoClient) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
