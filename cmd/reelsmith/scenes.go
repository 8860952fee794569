package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes <file>",
	Short: "Show the scene plan of a script",
	Long: `Parse a scene plan (a JSON array of scenes, possibly wrapped in prose or
code fences) and print it.

Examples:
  reelsmith scenes scenes.json
  reelsmith generate ... --out state.json && jq -r .final_script state.json | reelsmith scenes -`,
	Args: cobra.ExactArgs(1),
	RunE: runScenes,
}

func init() {
	rootCmd.AddCommand(scenesCmd)
}

func runScenes(cmd *cobra.Command, args []string) error {
	scenes, err := loadScenes(args[0])
	if err != nil {
		return err
	}

	total := 0
	rows := make([][]string, 0, len(scenes))
	for _, s := range scenes {
		total += s.Duration
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			strconv.Itoa(s.Duration) + "s",
			truncate(s.VisualPrompt, 40),
			truncate(s.NarrationText, 60),
		})
	}

	p := printer()
	p.Table([]string{"ID", "DURATION", "VISUAL", "NARRATION"}, rows)
	p.Muted("%d scenes, %ds total", len(scenes), total)
	return nil
}
