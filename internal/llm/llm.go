// Package llm provides text completion clients for the supported model providers.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abdulachik/reelsmith/internal/config"
)

// DefaultSystemPrompt is the system message sent with single-prompt completions.
const DefaultSystemPrompt = "You are a helpful assistant."

// maxErrorBody bounds the service response body kept in a ServiceError.
const maxErrorBody = 2000

// Role tags a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry sent to a model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client turns an ordered list of messages into a single text completion.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Prompt wraps a user prompt with the default system message.
func Prompt(user string) []Message {
	return []Message{
		{Role: RoleSystem, Content: DefaultSystemPrompt},
		{Role: RoleUser, Content: user},
	}
}

// RequestError reports a request that never produced a response.
type RequestError struct {
	Provider string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ServiceError reports a non-success response from the provider.
type ServiceError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Body)
}

// SchemaError reports a response whose shape could not be read.
type SchemaError struct {
	Provider string
	Detail   string
	Err      error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unexpected response: %s: %v", e.Provider, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s unexpected response: %s", e.Provider, e.Detail)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// New creates the client selected by LLM_PROVIDER.
func New(cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case "groq", "":
		return NewGroqClient(GroqConfig{
			APIKey:      cfg.GroqAPIKey,
			URL:         cfg.GroqAPIURL,
			Model:       cfg.GroqModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.GroqTimeout,
		}), nil
	case "anthropic":
		return NewAnthropicClient(AnthropicConfig{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.AnthropicModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			MaxRetries:  2,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			MaxRetries:  2,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLMProvider)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
