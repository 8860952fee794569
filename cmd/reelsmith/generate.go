package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/reelsmith/internal/api"
	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	generateFlags     requestFlags
	generateOut       string
	generateScenesOut string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the outline, script and platform captions for a product",
	Long: `Run the outline, script and hashtags chain for a product.

Examples:
  reelsmith generate --name GlowMug --description "Self-heating smart mug"
  reelsmith generate --name GlowMug --benefit "Warm all day" --benefit "App control" \
    --tone Humorous --duration 30 --out state.json --scenes-out scenes.json`,
	RunE: runGenerate,
}

func init() {
	generateFlags.bind(generateCmd)
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Write the full run state as JSON to this file")
	generateCmd.Flags().StringVar(&generateScenesOut, "scenes-out", "", "Write the scene plan parsed from the script to this file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	req := generateFlags.request()
	if err := api.ValidateRequest(req); err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	engine, err := a.Scripts()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	state := engine.Run(ctx, req)

	p := printer()
	if state.Failed() {
		p.Error("%s", state.Error)
		return state.Err()
	}
	p.Println(workflow.Format(state))

	if generateOut != "" {
		if err := writeJSON(generateOut, state); err != nil {
			return fmt.Errorf("write state: %w", err)
		}
		p.OK("run state written to %s", generateOut)
	}

	if generateScenesOut != "" {
		scenes, err := extract.Scenes(state.Script)
		if err != nil {
			slog.Warn("script is not a scene plan", "error", err)
			return nil
		}
		if err := writeJSON(generateScenesOut, scenes); err != nil {
			return fmt.Errorf("write scenes: %w", err)
		}
		p.OK("%d scenes written to %s", len(scenes), generateScenesOut)
	}

	return nil
}
