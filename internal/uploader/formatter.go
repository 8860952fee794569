package uploader

import (
	"strings"
	"unicode/utf8"
)

// Post text limits per platform, in characters.
const (
	TwitterMaxLength  = 280
	TikTokMaxLength   = 2200
	YouTubeMaxLength  = 5000
	LinkedInMaxLength = 3000
	FacebookMaxLength = 63206
)

// FormatPost joins a caption and its hashtags. When the result is longer
// than limit, hashtags are dropped from the end first and then the caption
// is truncated at a word boundary.
func FormatPost(caption string, hashtags []string, limit int) string {
	caption = strings.TrimSpace(caption)

	tags := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		h = strings.TrimLeft(strings.TrimSpace(h), "#")
		if h != "" {
			tags = append(tags, "#"+h)
		}
	}

	for {
		post := join(caption, tags)
		if limit <= 0 || FitsInLimit(post, limit) {
			return post
		}
		if len(tags) == 0 {
			return TruncateCaption(caption, limit)
		}
		tags = tags[:len(tags)-1]
	}
}

// TruncateCaption shortens text to at most limit characters, ending on a
// word boundary with an ellipsis.
func TruncateCaption(text string, limit int) string {
	if FitsInLimit(text, limit) {
		return text
	}
	if limit <= 3 {
		return string([]rune(text)[:limit])
	}

	available := limit - 3
	truncated := string([]rune(text)[:available])

	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > available/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimRight(truncated, " .,;:!?") + "..."
}

// FitsInLimit checks if text fits within limit characters.
func FitsInLimit(text string, limit int) bool {
	return utf8.RuneCountInString(text) <= limit
}

func join(caption string, tags []string) string {
	if len(tags) == 0 {
		return caption
	}
	if caption == "" {
		return strings.Join(tags, " ")
	}
	return caption + "\n\n" + strings.Join(tags, " ")
}
