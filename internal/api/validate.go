package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdulachik/reelsmith/internal/prompt"
)

// Duration bounds accepted from the form.
const (
	MinDurationSeconds = 10
	MaxDurationSeconds = 600
)

// Languages lists the accepted primary languages.
var Languages = []string{"English", "Hindi"}

var (
	ErrNoProductName = errors.New("product name is required")
	ErrNoDetails     = errors.New("product description or at least one benefit is required")
)

// NormalizeRequest trims the form fields, drops blank benefits and fills
// defaults. The result is ready for ValidateRequest.
func NormalizeRequest(req prompt.Request) prompt.Request {
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageAnalysis = strings.TrimSpace(req.ImageAnalysis)

	benefits := make([]string, 0, len(req.Benefits))
	for _, b := range req.Benefits {
		if b = strings.TrimSpace(b); b != "" {
			benefits = append(benefits, b)
		}
	}
	req.Benefits = benefits

	if strings.TrimSpace(req.Language) == "" {
		req.Language = prompt.DefaultLanguage
	}
	if req.DurationSeconds == 0 {
		req.DurationSeconds = prompt.DefaultDurationSeconds
	}
	return req
}

// ValidateRequest applies the form rules to a normalized request.
func ValidateRequest(req prompt.Request) error {
	if req.ProductName == "" {
		return ErrNoProductName
	}
	if req.Description == "" && len(req.Benefits) == 0 {
		return ErrNoDetails
	}
	if req.DurationSeconds < MinDurationSeconds || req.DurationSeconds > MaxDurationSeconds {
		return fmt.Errorf("duration_seconds must be between %d and %d", MinDurationSeconds, MaxDurationSeconds)
	}

	for _, l := range Languages {
		if strings.EqualFold(req.Language, l) {
			return nil
		}
	}
	return fmt.Errorf("primary_language must be one of %s", strings.Join(Languages, ", "))
}
