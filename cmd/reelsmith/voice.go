package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdulachik/reelsmith/internal/voice"
	"github.com/spf13/cobra"
)

var (
	voiceName   string
	voiceOutDir string
)

var voiceCmd = &cobra.Command{
	Use:   "voice <scenes-file>",
	Short: "Synthesize one voiceover per scene",
	Long: `Write voice_scene_<id>.mp3 for every scene with narration. By default the
files go to a new timestamped folder under reels/audio.

Examples:
  reelsmith voice scenes.json --voice verse`,
	Args: cobra.ExactArgs(1),
	RunE: runVoice,
}

func init() {
	voiceCmd.Flags().StringVar(&voiceName, "voice", voice.Voices[0], "Voice ("+strings.Join(voice.Voices, ", ")+")")
	voiceCmd.Flags().StringVar(&voiceOutDir, "out-dir", "", "Output directory (default: reels/audio/<timestamp>)")
	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
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

	synth, err := a.Voice()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	outDir := voiceOutDir
	if outDir == "" {
		outDir = filepath.Join(audioRoot(a.Config.ReelsDir), time.Now().Format("20060102-150405"))
	}

	paths, err := synth.Scenes(ctx, scenes, outDir, voice.ResolveVoice(voiceName))
	p := printer()
	for _, path := range paths {
		p.OK("%s", path)
	}
	if err != nil {
		return err
	}
	p.Muted("%d voiceovers in %s", len(paths), outDir)
	return nil
}

func audioRoot(reelsDir string) string {
	return filepath.Join(reelsDir, "audio")
}
