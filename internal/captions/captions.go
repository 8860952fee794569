// Package captions generates caption options and caption-specific hashtags.
package captions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/llm"
	"github.com/abdulachik/reelsmith/internal/prompt"
)

const maxErrorToken = 40

// Context is the input to both generators.
type Context struct {
	Request prompt.Request `json:"request"`
	Script  string         `json:"final_script"`
	Caption string         `json:"selected_caption,omitempty"`
	Count   int            `json:"count,omitempty"` // options wanted, or hashtag maximum
}

// OptionsResult holds caption options. When Err is set, Options holds a
// single display line describing the failure.
type OptionsResult struct {
	Options []string `json:"options"`
	Err     error    `json:"-"`
}

// HashtagsResult holds cleaned hashtags without the leading '#'. When Err is
// set, Tags holds a single sanitized error token.
type HashtagsResult struct {
	Tags []string `json:"tags"`
	Err  error    `json:"-"`
}

// Generator runs the single-call caption and hashtag steps.
type Generator struct {
	client llm.Client
}

// New creates a generator. A nil client is a programming error and panics.
func New(client llm.Client) *Generator {
	if client == nil {
		panic("captions: nil completion client")
	}
	return &Generator{client: client}
}

// Options asks for caption options and returns between 2 and 6 of them.
func (g *Generator) Options(ctx context.Context, c Context) OptionsResult {
	text := prompt.Build(prompt.StepCaptionOptions, prompt.Input{
		Request: c.Request,
		Script:  c.Script,
		Count:   c.Count,
	})

	raw, err := g.client.Complete(ctx, llm.Prompt(text))
	if err != nil {
		slog.Warn("caption options failed", "error", err)
		return OptionsResult{
			Options: []string{fmt.Sprintf("Could not generate captions: %v", err)},
			Err:     err,
		}
	}

	return OptionsResult{Options: fillOptions(extract.List(raw), c.Request.ProductName)}
}

// Hashtags asks for hashtags matching the chosen caption.
func (g *Generator) Hashtags(ctx context.Context, c Context) HashtagsResult {
	limit := prompt.ClampHashtags(c.Count)
	text := prompt.Build(prompt.StepHashtagsFromCaption, prompt.Input{
		Request: c.Request,
		Script:  c.Script,
		Caption: c.Caption,
		Count:   limit,
	})

	raw, err := g.client.Complete(ctx, llm.Prompt(text))
	if err != nil {
		slog.Warn("caption hashtags failed", "error", err)
		return HashtagsResult{
			Tags: []string{ErrorToken(err)},
			Err:  err,
		}
	}

	return HashtagsResult{Tags: CleanHashtags(extract.List(raw), limit)}
}

// CleanHashtags strips '#' prefixes and inner whitespace, drops empties and
// case-insensitive duplicates keeping the first spelling, and keeps at most limit.
func CleanHashtags(raw []string, limit int) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))

	for _, tag := range raw {
		tag = strings.TrimLeft(strings.TrimSpace(tag), "#")
		tag = strings.Join(strings.Fields(tag), "")
		if tag == "" {
			continue
		}

		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DefaultOptions are the synthesized captions used to top up a short list.
func DefaultOptions(productName string) []string {
	name := strings.TrimSpace(productName)
	if name == "" {
		name = "our product"
	}
	return []string{
		fmt.Sprintf("Discover %s today. Tap the link to learn more!", name),
		fmt.Sprintf("%s is here. Try it now and see the difference!", name),
	}
}

// ErrorToken turns an error into a hashtag-shaped token for display.
func ErrorToken(err error) string {
	token := "error-" + strings.Join(strings.Fields(strings.ToLower(err.Error())), "-")
	runes := []rune(token)
	if len(runes) > maxErrorToken {
		token = string(runes[:maxErrorToken])
	}
	return token
}

// fillOptions removes duplicates, tops the list up to the minimum with
// defaults and truncates it to the maximum.
func fillOptions(options []string, productName string) []string {
	seen := make(map[string]bool, len(options))
	out := make([]string, 0, prompt.MaxCaptionOptions)
	for _, o := range options {
		if seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}

	for _, d := range DefaultOptions(productName) {
		if len(out) >= prompt.MinCaptionOptions {
			break
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	if len(out) > prompt.MaxCaptionOptions {
		out = out[:prompt.MaxCaptionOptions]
	}
	return out
}
