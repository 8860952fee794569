package main

import (
	"context"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	analyticsPlatform string
	analyticsLimit    int
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Fetch and show engagement metrics",
}

var analyticsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the latest metrics from every configured platform",
	RunE:  runAnalyticsRefresh,
}

var analyticsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored metrics",
	Long: `Show per-platform totals and the stored metrics of recent posts.

Examples:
  reelsmith analytics show --platform YouTube --limit 10`,
	RunE: runAnalyticsShow,
}

func init() {
	analyticsShowCmd.Flags().StringVar(&analyticsPlatform, "platform", "", "Only show this platform")
	analyticsShowCmd.Flags().IntVar(&analyticsLimit, "limit", 20, "Maximum posts to show")

	analyticsCmd.AddCommand(analyticsRefreshCmd)
	analyticsCmd.AddCommand(analyticsShowCmd)
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalyticsRefresh(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Analytics.Refresh(ctx)
	if err != nil {
		return err
	}

	p := printer()
	p.OK("stored %d metrics", len(report.Metrics))

	names := make([]string, 0, len(report.Errors))
	for name := range report.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.Error("%s: %v", name, report.Errors[name])
	}
	return nil
}

func runAnalyticsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.Analytics.Summary(ctx)
	if err != nil {
		return err
	}
	metrics, err := a.Analytics.Latest(ctx, analyticsPlatform, analyticsLimit)
	if err != nil {
		return err
	}

	p := printer()
	if len(summary) == 0 {
		p.Muted("No metrics stored yet. Run `reelsmith analytics refresh` first.")
		return nil
	}

	p.Title("Totals")
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			s.Platform,
			strconv.FormatInt(s.Posts, 10),
			strconv.FormatInt(s.Views, 10),
			strconv.FormatInt(s.Likes, 10),
			strconv.FormatInt(s.Comments, 10),
			strconv.FormatInt(s.Shares, 10),
		})
	}
	p.Table([]string{"PLATFORM", "POSTS", "VIEWS", "LIKES", "COMMENTS", "SHARES"}, rows)

	p.Println("")
	p.Title("Posts")
	rows = rows[:0]
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Platform,
			m.PostID,
			count(m.Views),
			count(m.Likes),
			count(m.Comments),
			count(m.Shares),
			m.Permalink,
		})
	}
	p.Table([]string{"PLATFORM", "POST", "VIEWS", "LIKES", "COMMENTS", "SHARES", "LINK"}, rows)
	return nil
}

func count(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}
