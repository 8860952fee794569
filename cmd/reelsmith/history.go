package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	searchK      int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved reels",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reels, newest first",
	RunE:  runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find saved reels by meaning",
	Long: `Search the reel index with a hybrid of semantic and keyword matching.

Examples:
  reelsmith history search "morning coffee routine"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHistorySearch,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultLimit, "Maximum reels to show")
	historySearchCmd.Flags().IntVarP(&searchK, "top", "k", 5, "Number of results")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	reels, err := a.History.List(ctx, historyLimit)
	if err != nil {
		return err
	}

	p := printer()
	if len(reels) == 0 {
		p.Muted("No reels saved yet.")
		return nil
	}

	rows := make([][]string, 0, len(reels))
	for _, r := range reels {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.Title, 40),
			r.File,
			r.ID,
		})
	}
	p.Table([]string{"CREATED", "TITLE", "FILE", "ID"}, rows)
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	hits, err := a.History.Search(ctx, query, searchK)
	if errors.Is(err, history.ErrUnavailable) {
		return fmt.Errorf("reel index is not available; check VECLITE_PATH and veclite.yaml")
	}
	if err != nil {
		return err
	}

	p := printer()
	if len(hits) == 0 {
		p.Muted("No reels match %q.", query)
		return nil
	}

	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{
			fmt.Sprintf("%.3f", h.Similarity),
			truncate(h.Title, 40),
			truncate(h.Script, 60),
			h.ReelID,
		})
	}
	p.Table([]string{"SCORE", "TITLE", "SCRIPT", "ID"}, rows)
	return nil
}
