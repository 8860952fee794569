// Package prompt renders the instructions sent to the model for each generation step.
package prompt

import (
	"fmt"
	"strings"
)

// Tone is the voice a script and its captions are written in.
type Tone string

const (
	ToneFriendly      Tone = "Friendly"
	ToneProfessional  Tone = "Professional"
	ToneInspirational Tone = "Inspirational"
	ToneHumorous      Tone = "Humorous"
	ToneSerious       Tone = "Serious"
	ToneCasual        Tone = "Casual"
)

// AllowedTones lists the accepted tones in display order.
var AllowedTones = []Tone{
	ToneFriendly,
	ToneProfessional,
	ToneInspirational,
	ToneHumorous,
	ToneSerious,
	ToneCasual,
}

// Defaults applied when a request leaves a field empty.
const (
	DefaultLanguage        = "English"
	DefaultDurationSeconds = 60
	DefaultCaptionOptions  = 3
	DefaultMaxHashtags     = 10

	MinCaptionOptions = 2
	MaxCaptionOptions = 6
	MinHashtags       = 3
	MaxHashtags       = 15
)

// Step names one generation stage.
type Step string

const (
	StepOutline             Step = "outline"
	StepScript              Step = "script"
	StepHashtags            Step = "hashtags"
	StepCaptionOptions      Step = "caption_options"
	StepHashtagsFromCaption Step = "hashtags_from_caption"
)

// Request holds the product and creative inputs shared by every step.
type Request struct {
	ProductName     string   `json:"product_name"`
	Description     string   `json:"product_description"`
	Benefits        []string `json:"product_benefits"`
	ImageAnalysis   string   `json:"product_image_analysis"`
	Tone            string   `json:"tone"`
	BrandVoice      string   `json:"brand_voice,omitempty"` // legacy alias for Tone
	Language        string   `json:"primary_language"`
	DurationSeconds int      `json:"duration_seconds"`
	Platforms       []string `json:"platforms"`
	AspectRatios    []string `json:"aspect_ratios"`
}

// NormalizeTone returns the effective tone: tone, else the legacy brand
// voice, matched case-insensitively against AllowedTones. Anything else is Friendly.
func NormalizeTone(tone, brandVoice string) Tone {
	raw := strings.TrimSpace(tone)
	if raw == "" {
		raw = strings.TrimSpace(brandVoice)
	}
	for _, t := range AllowedTones {
		if strings.EqualFold(raw, string(t)) {
			return t
		}
	}
	return ToneFriendly
}

// EffectiveTone is the normalized tone of the request.
func (r Request) EffectiveTone() Tone {
	return NormalizeTone(r.Tone, r.BrandVoice)
}

// EffectiveLanguage is the primary language or English.
func (r Request) EffectiveLanguage() string {
	if strings.TrimSpace(r.Language) == "" {
		return DefaultLanguage
	}
	return r.Language
}

// EffectiveDuration is the target duration or 60 seconds.
func (r Request) EffectiveDuration() int {
	if r.DurationSeconds <= 0 {
		return DefaultDurationSeconds
	}
	return r.DurationSeconds
}

// Input is everything a step instruction may draw on: the request plus the
// outputs of earlier steps.
type Input struct {
	Request
	Outline string
	Script  string
	Caption string
	Count   int // caption options or hashtag maximum, depending on the step
}

// Build renders the instruction for step. An unknown step is a programming
// error and panics.
func Build(step Step, in Input) string {
	switch step {
	case StepOutline:
		return Outline(in.Request)
	case StepScript:
		return Script(in.Request, in.Outline)
	case StepHashtags:
		return Hashtags(in.Request, in.Script)
	case StepCaptionOptions:
		return CaptionOptions(in.Request, in.Script, in.Count)
	case StepHashtagsFromCaption:
		return HashtagsFromCaption(in.Request, in.Script, in.Caption, in.Count)
	default:
		panic(fmt.Sprintf("prompt: unknown step %q", step))
	}
}

// ClampCaptionOptions bounds a requested caption count to 2..6, defaulting to 3.
func ClampCaptionOptions(n int) int {
	if n == 0 {
		n = DefaultCaptionOptions
	}
	return clamp(n, MinCaptionOptions, MaxCaptionOptions)
}

// ClampHashtags bounds a requested hashtag count to 3..15, defaulting to 10.
func ClampHashtags(n int) int {
	if n == 0 {
		n = DefaultMaxHashtags
	}
	return clamp(n, MinHashtags, MaxHashtags)
}

// Outline renders the outline step instruction.
func Outline(r Request) string {
	tone := r.EffectiveTone()
	return fmt.Sprintf(OutlineTemplate,
		r.EffectiveDuration(),
		r.EffectiveLanguage(),
		r.ProductName,
		r.Description,
		orPlaceholder(strings.Join(nonEmpty(r.Benefits), "\n- "), "N/A"),
		tone,
		orPlaceholder(strings.Join(r.Platforms, ", "), "Generic Social"),
		orPlaceholder(strings.Join(r.AspectRatios, ", "), "Any"),
		orPlaceholder(r.ImageAnalysis, "N/A"),
		allowedTones(),
	)
}

// Script renders the scene script step instruction for the given outline.
func Script(r Request, outline string) string {
	return fmt.Sprintf(ScriptTemplate,
		r.EffectiveLanguage(),
		outline,
		r.EffectiveDuration(),
		r.EffectiveTone(),
		allowedTones(),
		orPlaceholder(strings.Join(r.Platforms, ", "), "Generic Social"),
	)
}

// Hashtags renders the per-platform captions and hashtags instruction.
func Hashtags(r Request, script string) string {
	return fmt.Sprintf(HashtagsTemplate,
		r.EffectiveLanguage(),
		orPlaceholder(strings.Join(r.Platforms, ", "), "Generic Social"),
		r.ProductName,
		strings.Join(nonEmpty(r.Benefits), ", "),
		script,
		r.EffectiveTone(),
	)
}

// CaptionOptions renders the caption options instruction. The count is clamped to 2..6.
func CaptionOptions(r Request, script string, count int) string {
	return fmt.Sprintf(CaptionOptionsTemplate,
		ClampCaptionOptions(count),
		r.EffectiveLanguage(),
		r.ProductName,
		strings.Join(nonEmpty(r.Benefits), ", "),
		script,
		r.EffectiveTone(),
	)
}

// HashtagsFromCaption renders the hashtag instruction for a chosen caption.
// The maximum is clamped to 3..15.
func HashtagsFromCaption(r Request, script, caption string, maxTags int) string {
	maxTags = ClampHashtags(maxTags)
	return fmt.Sprintf(HashtagsFromCaptionTemplate,
		r.EffectiveLanguage(),
		orPlaceholder(strings.Join(r.Platforms, ", "), "Generic Social"),
		r.ProductName,
		r.EffectiveTone(),
		caption,
		script,
		maxTags-2,
		maxTags,
	)
}

func allowedTones() string {
	names := make([]string, len(AllowedTones))
	for i, t := range AllowedTones {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
