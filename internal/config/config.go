package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// VecLite reel index
	VecLitePath   string // Path to VecLite database (default: data/reels.veclite)
	VecLiteConfig string // Optional veclite.yaml path

	// Language model
	LLMProvider    string // groq, anthropic or openai (default: groq)
	LLMMaxTokens   int
	LLMTemperature float64

	GroqAPIKey  string
	GroqAPIURL  string
	GroqModel   string
	GroqTimeout time.Duration

	AnthropicAPIKey string
	AnthropicModel  string

	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAITTSModel string

	// Video rendering
	VideoAPIBaseURL string
	VideoAPIKey     string
	VideoAPITimeout time.Duration

	VeoAPIBaseURL string
	VeoAPIKey     string
	VeoTimeout    time.Duration

	// Reel storage
	ReelsDir        string
	ReelsS3Bucket   string
	ReelsCDNBaseURL string

	// HTTP API
	HTTPAddr string

	// Analytics
	AnalyticsSchedule string
	AnalyticsLimit    int

	// Platform credentials
	Platforms PlatformCredentials

	// Logging
	LogLevel string
}

// PlatformCredentials holds per-platform tokens for uploads and analytics.
type PlatformCredentials struct {
	TikTokAccessToken string

	YouTubeAPIKey     string
	YouTubeOAuthToken string
	YouTubeChannelID  string

	LinkedInAccessToken string

	FacebookPageID          string
	FacebookPageAccessToken string

	InstagramAccountID   string
	InstagramAccessToken string

	TwitterAPIKey       string
	TwitterAPISecret    string
	TwitterAccessToken  string
	TwitterAccessSecret string
	TwitterBearerToken  string
	TwitterUsername     string
	TwitterUserID       string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:      getEnv("DATABASE_PATH", "data/reelsmith.db"),
		VecLitePath:       getEnv("VECLITE_PATH", "data/reels.veclite"),
		VecLiteConfig:     getEnv("VECLITE_CONFIG", ""),
		LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
		GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
		GroqAPIURL:        getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:         getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITTSModel:    getEnv("OPENAI_TTS_MODEL", "gpt-4o-mini-tts"),
		VideoAPIBaseURL:   getEnv("VIDEO_API_BASE_URL", ""),
		VideoAPIKey:       getEnv("VIDEO_API_KEY", ""),
		VeoAPIBaseURL:     getEnv("GOOGLE_VEO_API_BASE_URL", ""),
		VeoAPIKey:         getEnv("GOOGLE_VEO_API_KEY", ""),
		ReelsDir:          getEnv("REELS_DIR", "reels"),
		ReelsS3Bucket:     getEnv("REELS_S3_BUCKET", ""),
		ReelsCDNBaseURL:   getEnv("REELS_CDN_BASE_URL", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		AnalyticsSchedule: getEnv("ANALYTICS_SCHEDULE", "@every 6h"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Platforms: PlatformCredentials{
			TikTokAccessToken:       getEnv("TIKTOK_ACCESS_TOKEN", ""),
			YouTubeAPIKey:           getEnv("YOUTUBE_API_KEY", ""),
			YouTubeOAuthToken:       getEnv("YOUTUBE_OAUTH_TOKEN", ""),
			YouTubeChannelID:        getEnv("YOUTUBE_CHANNEL_ID", ""),
			LinkedInAccessToken:     getEnv("LINKEDIN_ACCESS_TOKEN", ""),
			FacebookPageID:          getEnv("FACEBOOK_PAGE_ID", ""),
			FacebookPageAccessToken: getEnv("FACEBOOK_PAGE_ACCESS_TOKEN", ""),
			InstagramAccountID:      getEnv("INSTAGRAM_BUSINESS_ACCOUNT_ID", ""),
			InstagramAccessToken:    getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			TwitterAPIKey:           getEnv("TWITTER_API_KEY", ""),
			TwitterAPISecret:        getEnv("TWITTER_API_SECRET", ""),
			TwitterAccessToken:      getEnv("TWITTER_ACCESS_TOKEN", ""),
			TwitterAccessSecret:     getEnv("TWITTER_ACCESS_SECRET", ""),
			TwitterBearerToken:      getEnv("TWITTER_BEARER_TOKEN", ""),
			TwitterUsername:         getEnv("TWITTER_USERNAME", ""),
			TwitterUserID:           getEnv("TWITTER_USER_ID", ""),
		},
	}

	// Parse durations
	var err error
	cfg.GroqTimeout, err = time.ParseDuration(getEnv("GROQ_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GROQ_TIMEOUT: %w", err)
	}

	cfg.VideoAPITimeout, err = time.ParseDuration(getEnv("VIDEO_API_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIDEO_API_TIMEOUT: %w", err)
	}

	cfg.VeoTimeout, err = time.ParseDuration(getEnv("GOOGLE_VEO_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GOOGLE_VEO_TIMEOUT: %w", err)
	}

	// Parse numbers
	cfg.LLMMaxTokens, err = strconv.Atoi(getEnv("LLM_MAX_TOKENS", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_TOKENS: %w", err)
	}

	cfg.LLMTemperature, err = strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}

	cfg.AnalyticsLimit, err = strconv.Atoi(getEnv("ANALYTICS_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_LIMIT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForGenerate checks configuration needed to call the language model.
func (c *Config) ValidateForGenerate() error {
	switch c.LLMProvider {
	case "groq", "":
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER is groq")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is anthropic")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %s (must be 'groq', 'anthropic' or 'openai')", c.LLMProvider)
	}
	return nil
}

// ValidateForClips checks configuration needed for per-scene clip rendering.
func (c *Config) ValidateForClips() error {
	if c.VeoAPIBaseURL == "" {
		return fmt.Errorf("GOOGLE_VEO_API_BASE_URL is required for scene clips")
	}
	if c.VeoAPIKey == "" {
		return fmt.Errorf("GOOGLE_VEO_API_KEY is required for scene clips")
	}
	return nil
}

// ValidateForVoice checks configuration needed for voiceover synthesis.
func (c *Config) ValidateForVoice() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for voiceovers")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ValidateForGenerate(); err != nil {
		return err
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
