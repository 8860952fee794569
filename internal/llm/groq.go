package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	groqAPIURL       = "https://api.groq.com/openai/v1/chat/completions"
	groqDefaultModel = "llama-3.1-8b-instant"
	groqMaxTokens    = 1024
)

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiKey      string
	url         string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// GroqConfig holds configuration for the Groq client.
type GroqConfig struct {
	APIKey      string
	URL         string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewGroqClient creates a new Groq API client.
func NewGroqClient(cfg GroqConfig) *GroqClient {
	url := cfg.URL
	if url == "" {
		url = groqAPIURL
	}
	model := cfg.Model
	if model == "" {
		model = groqDefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = groqMaxTokens
	}

	return &GroqClient{
		apiKey:      cfg.APIKey,
		url:         url,
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: orDefault(cfg.Timeout, 60*time.Second),
		},
	}
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// chatResponse is the subset of the chat completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a chat completion request to Groq.
func (c *GroqClient) Complete(ctx context.Context, messages []Message) (string, error) {
	req := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	slog.Debug("sending groq request", "model", c.model, "messages", len(messages))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &RequestError{Provider: "groq", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Provider: "groq", Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServiceError{
			Provider: "groq",
			Status:   resp.StatusCode,
			Body:     truncate(string(respBody), maxErrorBody),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &SchemaError{Provider: "groq", Detail: "non-JSON body", Err: err}
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == nil {
		return "", &SchemaError{Provider: "groq", Detail: "missing choices[0].message.content"}
	}

	return strings.TrimSpace(*chatResp.Choices[0].Message.Content), nil
}
