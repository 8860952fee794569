package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/abdulachik/reelsmith/internal/media"
	"github.com/spf13/cobra"
)

var (
	mergeVideoDir string
	mergeAudioDir string
	mergeOut      string
	mergeTitle    string
	mergeSave     bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <scenes-file>",
	Short: "Merge scene clips and voiceovers into the final video",
	Long: `Pair scene_<id>.mp4 with voice_scene_<id>.mp3 for every scene, trim the
audio to the scene, and concatenate the results with ffmpeg. Without
--audio-dir the newest folder under reels/audio is used.

Examples:
  reelsmith merge scenes.json --out final_video.mp4 --save --title "GlowMug launch"`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeVideoDir, "video-dir", envOr("SCENE_CLIPS_DIR", "reels/scene_clips"), "Directory holding scene clips")
	mergeCmd.Flags().StringVar(&mergeAudioDir, "audio-dir", envOr("SCENE_AUDIO_DIR", ""), "Directory holding voiceovers")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "final_video.mp4", "Output video path")
	mergeCmd.Flags().StringVar(&mergeTitle, "title", "", "Title used when saving to history")
	mergeCmd.Flags().BoolVar(&mergeSave, "save", false, "Save the final video to history")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	scenes, err := loadScenes(args[0])
	if err != nil {
		return err
	}

	merger, err := media.NewMerger()
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	audioDir := mergeAudioDir
	if audioDir == "" {
		dir, ok := media.LatestAudioDir(audioRoot(a.Config.ReelsDir))
		if !ok {
			dir = mergeVideoDir
		}
		audioDir = dir
	}

	if err := merger.Merge(ctx, scenes, mergeVideoDir, audioDir, mergeOut); err != nil {
		return err
	}

	p := printer()
	p.OK("final video written to %s", mergeOut)

	if !mergeSave {
		return nil
	}
	if mergeTitle == "" {
		return fmt.Errorf("--title is required with --save")
	}
	reel, err := a.History.SaveVideo(ctx, mergeTitle, mergeOut, history.Meta{Script: narrationOf(scenes)})
	if err != nil {
		return fmt.Errorf("save to history: %w", err)
	}
	p.OK("saved reel %s to %s", reel.ID, reel.File)
	return nil
}

func narrationOf(scenes []extract.Scene) string {
	parts := make([]string, 0, len(scenes))
	for _, s := range scenes {
		if t := strings.TrimSpace(s.NarrationText); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
