package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the analytics scheduler",
	Long: `Serve the generation pipeline over HTTP and refresh analytics on
ANALYTICS_SCHEDULE until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if serveAddr != "" {
		a.Config.HTTPAddr = serveAddr
	}
	if err := a.Config.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	sched, err := a.Scheduler()
	if err != nil {
		return err
	}
	srv, err := a.Server(sched)
	if err != nil {
		return err
	}

	slog.Info("starting reelsmith",
		"addr", a.Config.HTTPAddr,
		"llm", a.Config.LLMProvider,
		"analytics_schedule", a.Config.AnalyticsSchedule,
		"reel_index", a.Index != nil,
		"storage", a.Backend.Name(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(ctx) })
	g.Go(func() error { return srv.ListenAndServe(ctx, a.Config.HTTPAddr) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("shut down")
	return nil
}
