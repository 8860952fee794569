package uploader

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatPost(t *testing.T) {
	t.Run("caption and tags", func(t *testing.T) {
		got := FormatPost(" Meet GlowMug. ", []string{"#coffee", "SmartMug", " "}, 280)
		assert.Equal(t, "Meet GlowMug.\n\n#coffee #SmartMug", got)
	})

	t.Run("tags only", func(t *testing.T) {
		assert.Equal(t, "#a #b", FormatPost("", []string{"a", "b"}, 0))
	})

	t.Run("drops trailing tags to fit", func(t *testing.T) {
		got := FormatPost("1234567890", []string{"aaaa", "bbbb", "cccc"}, 24)
		assert.Equal(t, "1234567890\n\n#aaaa #bbbb", got)
	})

	t.Run("truncates caption when tags are not enough", func(t *testing.T) {
		caption := strings.Repeat("word ", 80)
		got := FormatPost(caption, []string{"tag"}, TwitterMaxLength)

		assert.LessOrEqual(t, utf8.RuneCountInString(got), TwitterMaxLength)
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.NotContains(t, got, "#tag")
	})
}

func TestTruncateCaption(t *testing.T) {
	t.Run("short unchanged", func(t *testing.T) {
		assert.Equal(t, "Short.", TruncateCaption("Short.", 100))
	})

	t.Run("word boundary", func(t *testing.T) {
		got := TruncateCaption("Word1 word2 word3 word4 word5 word6 word7 word8", 30)

		assert.LessOrEqual(t, utf8.RuneCountInString(got), 30)
		assert.Equal(t, "Word1 word2 word3 word4...", got)
	})

	t.Run("tiny limit", func(t *testing.T) {
		assert.Equal(t, "abc", TruncateCaption("abcdef", 3))
	})
}
