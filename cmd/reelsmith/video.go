package main

import (
	"context"
	"fmt"
	"os"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/abdulachik/reelsmith/internal/video"
	"github.com/spf13/cobra"
)

var (
	videoFlags  requestFlags
	videoScript string
	videoTitle  string
	videoVoice  string
	videoMusic  string
	videoSave   bool

	clipsDir string
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Render a script through the video API",
	Long: `Send the narration of a script to the rendering service. Without
VIDEO_API_BASE_URL a placeholder result is returned.

Examples:
  reelsmith video --name GlowMug --script script.txt --save`,
	RunE: runVideo,
}

var clipsCmd = &cobra.Command{
	Use:   "clips <scenes-file>",
	Short: "Render one Veo clip per scene",
	Long: `Render scene_<id>.mp4 for every scene with a visual prompt and duration.

Examples:
  reelsmith clips scenes.json --out-dir reels/scene_clips`,
	Args: cobra.ExactArgs(1),
	RunE: runClips,
}

func init() {
	videoFlags.bind(videoCmd)
	videoCmd.Flags().StringVar(&videoScript, "script", "", "File holding the final script (- for stdin)")
	videoCmd.Flags().StringVar(&videoTitle, "title", "", "Title used when saving to history (default: product name)")
	videoCmd.Flags().StringVar(&videoVoice, "voice", "", "Voice requested from the renderer")
	videoCmd.Flags().StringVar(&videoMusic, "music", "", "Music style requested from the renderer")
	videoCmd.Flags().BoolVar(&videoSave, "save", false, "Save the rendered video to history")
	_ = videoCmd.MarkFlagRequired("script")

	clipsCmd.Flags().StringVar(&clipsDir, "out-dir", envOr("SCENE_CLIPS_DIR", "reels/scene_clips"), "Directory for scene clips")

	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(clipsCmd)
}

func runVideo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	raw, err := readInput(videoScript)
	if err != nil {
		return err
	}
	narration := extract.Narration(raw)
	if narration == "" {
		return fmt.Errorf("script is empty")
	}
	req := videoFlags.request()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Videos().Generate(ctx, video.Request{
		Script:          narration,
		ProductName:     req.ProductName,
		Platforms:       req.Platforms,
		AspectRatios:    req.AspectRatios,
		DurationSeconds: req.DurationSeconds,
		Voice:           videoVoice,
		MusicStyle:      videoMusic,
	})
	if err != nil {
		return err
	}

	p := printer()
	if res.Status != video.StatusSuccess {
		p.Error("%s", res.Message)
		return fmt.Errorf("video generation failed")
	}
	p.OK("video ready: %s", res.VideoURL)
	if res.JobID != "" {
		p.Muted("job %s: %s", res.JobID, res.Message)
	}

	if !videoSave || res.VideoURL == "" {
		return nil
	}

	title := videoTitle
	if title == "" {
		title = req.ProductName
	}
	reel, err := a.History.SaveVideo(ctx, title, res.VideoURL, history.Meta{
		Script:      narration,
		ProductName: req.ProductName,
		Platforms:   req.Platforms,
	})
	if err != nil {
		return fmt.Errorf("save to history: %w", err)
	}
	p.OK("saved reel %s to %s", reel.ID, reel.File)
	return nil
}

func runClips(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	scenes, err := loadScenes(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	veo, err := a.Clips()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	paths, err := veo.SceneClips(ctx, scenes, clipsDir)
	if err != nil {
		return err
	}

	p := printer()
	for _, path := range paths {
		p.OK("%s", path)
	}
	if len(paths) < len(scenes) {
		p.Muted("%d of %d scenes rendered, see log for failures", len(paths), len(scenes))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
