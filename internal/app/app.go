package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/reelsmith/internal/analytics"
	"github.com/abdulachik/reelsmith/internal/api"
	"github.com/abdulachik/reelsmith/internal/captions"
	"github.com/abdulachik/reelsmith/internal/config"
	"github.com/abdulachik/reelsmith/internal/db"
	"github.com/abdulachik/reelsmith/internal/history"
	"github.com/abdulachik/reelsmith/internal/llm"
	"github.com/abdulachik/reelsmith/internal/notify"
	"github.com/abdulachik/reelsmith/internal/reelindex"
	"github.com/abdulachik/reelsmith/internal/scheduler"
	"github.com/abdulachik/reelsmith/internal/storage"
	"github.com/abdulachik/reelsmith/internal/uploader"
	"github.com/abdulachik/reelsmith/internal/video"
	"github.com/abdulachik/reelsmith/internal/voice"
	"github.com/abdulachik/reelsmith/internal/workflow"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Index     *reelindex.Index // nil when the reel index is unavailable
	Backend   storage.Backend
	History   *history.Store
	Uploads   *uploader.Router
	Analytics *analytics.Aggregator
	Health    *scheduler.Health
	Notifier  notify.Notifier
}

// New creates a new application instance with all dependencies wired up.
// The reel index and S3 storage degrade to "absent" and local storage when
// they cannot be opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	health := scheduler.NewHealth()

	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	health.SetHealthy(scheduler.ComponentDatabase, "migrated")

	a := &App{
		Config:   cfg,
		Store:    store,
		Health:   health,
		Notifier: notify.NewLogNotifier(nil),
		Uploads:  uploader.NewDefaultRouter(cfg.Platforms),
		Analytics: analytics.NewAggregator(analytics.AggregatorConfig{
			Queries:  store.Queries,
			Fetchers: analytics.NewFetchers(cfg.Platforms),
			Limit:    cfg.AnalyticsLimit,
		}),
	}

	if cfg.VecLitePath != "" {
		idx, err := reelindex.Open(reelindex.Config{Path: cfg.VecLitePath, ConfigPath: cfg.VecLiteConfig})
		health.Record(scheduler.ComponentIndex, err, "open")
		if err != nil {
			slog.Warn("reel index unavailable, semantic search disabled", "error", err)
		} else {
			a.Index = idx
		}
	}

	a.Backend = newBackend(ctx, cfg)

	opts := []history.Option{}
	if a.Index != nil {
		opts = append(opts, history.WithIndex(a.Index))
	}
	a.History = history.New(store.Queries, a.Backend, opts...)

	return a, nil
}

func newBackend(ctx context.Context, cfg *config.Config) storage.Backend {
	if cfg.ReelsS3Bucket == "" {
		return storage.NewLocal(cfg.ReelsDir)
	}

	s3, err := storage.NewS3FromEnv(ctx, cfg.ReelsS3Bucket, cfg.ReelsCDNBaseURL)
	if err != nil {
		slog.Warn("S3 storage unavailable, saving reels locally", "bucket", cfg.ReelsS3Bucket, "error", err)
		return storage.NewLocal(cfg.ReelsDir)
	}
	return s3
}

// LLM creates the completion client selected by the configuration.
func (a *App) LLM() (llm.Client, error) {
	if err := a.Config.ValidateForGenerate(); err != nil {
		return nil, err
	}
	return llm.New(a.Config)
}

// Scripts creates the outline, script and hashtags engine.
func (a *App) Scripts() (*workflow.Engine, error) {
	client, err := a.LLM()
	if err != nil {
		return nil, err
	}
	return workflow.New(client), nil
}

// Captions creates the caption and hashtag generator.
func (a *App) Captions() (*captions.Generator, error) {
	client, err := a.LLM()
	if err != nil {
		return nil, err
	}
	return captions.New(client), nil
}

// Videos creates the rendering provider. Without VIDEO_API_BASE_URL it is a mock.
func (a *App) Videos() *video.HTTPProvider {
	return video.NewHTTPProvider(a.Config.VideoAPIBaseURL, a.Config.VideoAPIKey, a.Config.VideoAPITimeout)
}

// Clips creates the per-scene clip renderer.
func (a *App) Clips() (*video.VeoClient, error) {
	if err := a.Config.ValidateForClips(); err != nil {
		return nil, err
	}
	return video.NewVeoClient(a.Config.VeoAPIBaseURL, a.Config.VeoAPIKey, a.Config.VeoTimeout), nil
}

// Voice creates the voiceover synthesizer.
func (a *App) Voice() (*voice.Synthesizer, error) {
	if err := a.Config.ValidateForVoice(); err != nil {
		return nil, err
	}
	return voice.New(voice.Config{
		APIKey:     a.Config.OpenAIAPIKey,
		Model:      a.Config.OpenAITTSModel,
		MaxRetries: 2,
	}), nil
}

// Scheduler creates the analytics refresh scheduler.
func (a *App) Scheduler() (*scheduler.Scheduler, error) {
	return scheduler.New(scheduler.Config{
		Schedule:  a.Config.AnalyticsSchedule,
		Refresher: a.Analytics,
		Notifier:  a.Notifier,
		Health:    a.Health,
	})
}

// RecordUploads stores upload results against a reel.
func (a *App) RecordUploads(ctx context.Context, reelID string, results []uploader.Result) error {
	return uploader.Record(ctx, a.Store.Queries, reelID, results)
}

// Server creates the HTTP API over every component.
func (a *App) Server(sched *scheduler.Scheduler) (*api.Server, error) {
	scripts, err := a.Scripts()
	if err != nil {
		return nil, fmt.Errorf("script generation: %w", err)
	}
	gen, err := a.Captions()
	if err != nil {
		return nil, fmt.Errorf("caption generation: %w", err)
	}
	a.Health.SetHealthy(scheduler.ComponentLLM, a.Config.LLMProvider)

	deps := api.Deps{
		Scripts:   scripts,
		Captions:  gen,
		Videos:    a.Videos(),
		Publisher: a.Uploads,
		Record:    a.RecordUploads,
		Reels:     a.History,
		Metrics:   a.Analytics,
		Health:    a.Health,
	}
	if sched != nil {
		deps.Refresher = sched
	}
	return api.New(deps), nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Index != nil {
		if err := a.Index.Close(); err != nil {
			slog.Error("failed to close reel index", "error", err)
		}
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
