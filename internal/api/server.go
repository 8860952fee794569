// Package api exposes the generation pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abdulachik/reelsmith/internal/analytics"
	"github.com/abdulachik/reelsmith/internal/captions"
	"github.com/abdulachik/reelsmith/internal/db"
	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/abdulachik/reelsmith/internal/prompt"
	"github.com/abdulachik/reelsmith/internal/reelindex"
	"github.com/abdulachik/reelsmith/internal/scheduler"
	"github.com/abdulachik/reelsmith/internal/uploader"
	"github.com/abdulachik/reelsmith/internal/video"
	"github.com/abdulachik/reelsmith/internal/workflow"
	"github.com/gin-gonic/gin"
)

// ScriptRunner runs the outline, script and hashtags chain.
type ScriptRunner interface {
	Run(ctx context.Context, req prompt.Request) workflow.State
}

// CaptionWriter produces caption options and caption hashtags.
type CaptionWriter interface {
	Options(ctx context.Context, c captions.Context) captions.OptionsResult
	Hashtags(ctx context.Context, c captions.Context) captions.HashtagsResult
}

// Publisher fans an upload out to platforms.
type Publisher interface {
	UploadAll(ctx context.Context, platforms []string, content uploader.Content) []uploader.Result
}

// Reels lists, saves and searches rendered reels.
type Reels interface {
	List(ctx context.Context, limit int) ([]history.Reel, error)
	Search(ctx context.Context, query string, k int) ([]reelindex.Hit, error)
	SaveVideo(ctx context.Context, title, src string, meta history.Meta) (history.Reel, error)
}

// Metrics reads stored engagement metrics.
type Metrics interface {
	Latest(ctx context.Context, platform string, limit int) ([]analytics.Metric, error)
	Summary(ctx context.Context) ([]db.SummarizeMetricsRow, error)
}

// Refresher triggers an analytics refresh.
type Refresher interface {
	RunOnce(ctx context.Context) (*analytics.Report, error)
}

// UploadRecorder stores upload attempts.
type UploadRecorder func(ctx context.Context, reelID string, results []uploader.Result) error

// Deps are the components served by the API. Nil components make their
// routes answer 503.
type Deps struct {
	Scripts   ScriptRunner
	Captions  CaptionWriter
	Videos    video.Provider
	Publisher Publisher
	Record    UploadRecorder
	Reels     Reels
	Metrics   Metrics
	Refresher Refresher
	Health    *scheduler.Health
}

// Server is the HTTP front of the pipeline.
type Server struct {
	deps   Deps
	router *gin.Engine
}

// New creates a server and registers its routes.
func New(deps Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{deps: deps, router: router}
	s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.healthz)

	api := s.router.Group("/api")
	{
		api.POST("/scripts", s.createScript)
		api.POST("/captions", s.createCaptions)
		api.POST("/hashtags", s.createHashtags)
		api.POST("/videos", s.createVideo)
		api.POST("/uploads", s.createUploads)

		api.GET("/reels", s.listReels)
		api.GET("/reels/search", s.searchReels)

		api.GET("/analytics", s.getAnalytics)
		api.POST("/analytics/refresh", s.refreshAnalytics)
	}
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	slog.Info("http server stopped")
	return nil
}

// requestLogger logs each request with slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func unavailable(c *gin.Context, what string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": what + " not configured"})
}
