// Package voice synthesizes per-scene voiceovers with OpenAI text-to-speech.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultModel = "gpt-4o-mini-tts"

// Voices are the voices offered for voiceovers. The first is the default.
var Voices = []string{"alloy", "verse"}

// Config holds configuration for the Synthesizer.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
}

// Synthesizer turns narration into MP3 files.
type Synthesizer struct {
	client openai.Client
	model  string
}

// New creates a synthesizer.
func New(cfg Config) *Synthesizer {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Synthesizer{client: openai.NewClient(opts...), model: model}
}

// NormalizeForSpeech collapses whitespace and makes sure the text ends with
// sentence punctuation so the voice settles at the end.
func NormalizeForSpeech(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return s
}

// ResolveVoice returns voice if it is offered, else the default.
func ResolveVoice(voice string) string {
	v := strings.ToLower(strings.TrimSpace(voice))
	for _, known := range Voices {
		if v == known {
			return known
		}
	}
	return Voices[0]
}

// FileName is the file name of a scene's voiceover.
func FileName(sceneID int) string {
	return fmt.Sprintf("voice_scene_%d.mp3", sceneID)
}

// Synthesize writes text as an MP3 to dest.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice, dest string) error {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(ResolveVoice(voice)),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("openai TTS error (status %d): %s", apiErr.StatusCode, apiErr.RawJSON())
		}
		return fmt.Errorf("openai TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	if n == 0 {
		os.Remove(dest)
		return fmt.Errorf("openai TTS returned empty audio")
	}
	return nil
}

// Scenes writes voice_scene_<id>.mp3 into outDir for every scene with a
// positive id and narration, returning the paths in scene order.
func (s *Synthesizer) Scenes(ctx context.Context, scenes []extract.Scene, outDir, voice string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create voice dir: %w", err)
	}

	var paths []string
	for _, scene := range scenes {
		if scene.ID <= 0 {
			continue
		}
		text := NormalizeForSpeech(scene.NarrationText)
		if text == "" {
			continue
		}

		dest := filepath.Join(outDir, FileName(scene.ID))
		if err := s.Synthesize(ctx, text, voice, dest); err != nil {
			return paths, fmt.Errorf("scene %d: %w", scene.ID, err)
		}
		slog.Debug("voiceover written", "scene", scene.ID, "path", dest)
		paths = append(paths, dest)
	}
	return paths, nil
}
