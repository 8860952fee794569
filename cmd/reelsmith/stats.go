package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display statistics about saved reels, uploads, analytics and the reel index.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	totalReels, err := a.Store.CountReels(ctx)
	if err != nil {
		return fmt.Errorf("count reels: %w", err)
	}

	uploads, err := a.Store.CountUploadsByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count uploads: %w", err)
	}

	summary, err := a.Analytics.Summary(ctx)
	if err != nil {
		slog.Warn("failed to summarize analytics", "error", err)
	}

	p := printer()
	p.Title("=== Reelsmith Statistics ===")
	p.Println("")
	p.Println(fmt.Sprintf("Database: %s", a.Config.DatabasePath))
	p.Println(fmt.Sprintf("Storage:  %s", a.Backend.Name()))
	p.Println("")
	p.Println(fmt.Sprintf("Reels: %d", totalReels))

	if len(uploads) > 0 {
		p.Println("")
		p.Println("Uploads:")
		for _, row := range uploads {
			p.Println(fmt.Sprintf("  %s %s: %d", row.Platform, row.Status, row.Count))
		}
	}

	if len(summary) > 0 {
		p.Println("")
		p.Println("Analytics:")
		for _, row := range summary {
			p.Println(fmt.Sprintf("  %s: %d posts, %d views, %d likes", row.Platform, row.Posts, row.Views, row.Likes))
		}
	}

	if a.Index != nil {
		stats := a.Index.Stats()
		p.Println("")
		p.Println("VecLite:")
		p.Println(fmt.Sprintf("  Path: %s", a.Config.VecLitePath))
		p.Println(fmt.Sprintf("  Documents: %d", stats.Count))
		p.Println(fmt.Sprintf("  Dimension: %d", stats.Dimension))
		p.Println(fmt.Sprintf("  Distance: %s", stats.DistanceType))
		p.Println(fmt.Sprintf("  Index: %s", stats.IndexType))
	}

	return nil
}
