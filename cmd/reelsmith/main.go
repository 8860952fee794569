package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abdulachik/reelsmith/internal/api"
	"github.com/abdulachik/reelsmith/internal/app"
	"github.com/abdulachik/reelsmith/internal/config"
	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/prompt"
	"github.com/abdulachik/reelsmith/internal/ui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reelsmith",
	Short: "Turn a product description into a ready-to-post short video",
	Long: `Reelsmith chains language model prompts to write a video script,
captions and hashtags for a product, then renders, voices, merges and
publishes the reel and tracks how it performs.`,
	SilenceUsage: true,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	// Set up logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads and validates configuration and wires the application.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open app: %w", err)
	}
	return a, nil
}

func printer() *ui.Printer {
	return ui.New(os.Stdout)
}

// requestFlags are the product and creative inputs shared by commands.
type requestFlags struct {
	name          string
	description   string
	benefits      []string
	imageAnalysis string
	tone          string
	language      string
	duration      int
	platforms     []string
	aspectRatios  []string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Product name")
	fs.StringVar(&f.description, "description", "", "Product description")
	fs.StringArrayVar(&f.benefits, "benefit", nil, "Product benefit (repeatable)")
	fs.StringVar(&f.imageAnalysis, "image-analysis", "", "Description of the product image")
	fs.StringVar(&f.tone, "tone", string(prompt.ToneFriendly), "Tone of voice")
	fs.StringVar(&f.language, "language", prompt.DefaultLanguage, "Primary language (English or Hindi)")
	fs.IntVar(&f.duration, "duration", prompt.DefaultDurationSeconds, "Target duration in seconds (10-600)")
	fs.StringSliceVar(&f.platforms, "platform", []string{"Instagram", "TikTok"}, "Target platforms")
	fs.StringSliceVar(&f.aspectRatios, "aspect-ratio", []string{"9:16 (vertical)", "1:1 (square)"}, "Preferred aspect ratios")
}

func (f *requestFlags) request() prompt.Request {
	return api.NormalizeRequest(prompt.Request{
		ProductName:     f.name,
		Description:     f.description,
		Benefits:        f.benefits,
		ImageAnalysis:   f.imageAnalysis,
		Tone:            f.tone,
		Language:        f.language,
		DurationSeconds: f.duration,
		Platforms:       f.platforms,
		AspectRatios:    f.aspectRatios,
	})
}

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// loadScenes reads a scene plan from path.
func loadScenes(path string) ([]extract.Scene, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, err
	}
	scenes, err := extract.Scenes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scenes in %s: %w", path, err)
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("no scenes found in %s", path)
	}
	return scenes, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
