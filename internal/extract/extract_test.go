package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "json scenes",
			in:   `[{"id":1,"narration_text":"Hello"},{"id":2,"narration_text":"World"}]`,
			want: "Hello\nWorld",
		},
		{
			name: "json scenes skip blank narration",
			in:   `[{"id":1,"narration_text":"  Hello  "},{"id":2,"narration_text":"   "},{"id":3},{"id":4,"narration_text":7}]`,
			want: "Hello",
		},
		{
			name: "markdown final script section",
			in:   "## Script Outline\nX\n\n## Final Script\nLine 1\nLine 2\n\n## Hashtags\nY",
			want: "Line 1\nLine 2",
		},
		{
			name: "decorated headings",
			in:   "## 📝 Script Outline\nOutline text here\n\n## 🎬 Final Script\nLine 1\nLine 2\n\n## 🏷️ Captions & Hashtags by Platform\nHash stuff\n",
			want: "Line 1\nLine 2",
		},
		{
			name: "plain text unchanged",
			in:   "  Some random content without expected header \n",
			want: "Some random content without expected header",
		},
		{
			name: "array of non-objects falls back",
			in:   `["a", "b"]`,
			want: `["a", "b"]`,
		},
		{
			name: "scenes without narration fall back to input",
			in:   `[{"id":1,"visual_prompt":"desk"}]`,
			want: `[{"id":1,"visual_prompt":"desk"}]`,
		},
		{
			name: "broken json falls back",
			in:   `[{"id":1,"narration_text":"Hi"`,
			want: `[{"id":1,"narration_text":"Hi"`,
		},
		{
			name: "final script heading without following section",
			in:   "## FINAL SCRIPT\nOnly line",
			want: "Only line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Narration(tt.in))
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "clean array", in: `["A","B","C"]`, want: []string{"A", "B", "C"}},
		{name: "array inside prose", in: "Here are some options:\n[\"One\",\"Two\"]\nEnjoy!", want: []string{"One", "Two"}},
		{name: "bullet lines", in: "- First\n- Second\n- Third", want: []string{"First", "Second", "Third"}},
		{name: "mixed bullets", in: "* one\n# two\n• three\n\n   - four", want: []string{"one", "two", "three", "four"}},
		{name: "empty array wins", in: "nothing here []", want: []string{}},
		{name: "non-string elements", in: `[1, true, " x ", "", null]`, want: []string{"1", "true", "x"}},
		{name: "unparseable brackets fall back", in: "[draft\nsecond]", want: []string{"[draft", "second]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, List(tt.in))
		})
	}
}

func TestScenes(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		scenes, err := Scenes(`[{"id":2,"duration":5,"visual_prompt":"Mug on desk","narration_text":"Meet GlowMug."},
			{"id":1,"duration":3,"visual_prompt":"Steam","narration_text":"Hot."}]`)
		require.NoError(t, err)
		require.Len(t, scenes, 2)
		assert.Equal(t, 2, scenes[0].ID)
		assert.Equal(t, 5, scenes[0].Duration)
		assert.Equal(t, "Mug on desk", scenes[0].VisualPrompt)
		assert.Equal(t, "Hot.", scenes[1].NarrationText)
	})

	t.Run("code fence", func(t *testing.T) {
		scenes, err := Scenes("```json\n[{\"id\":1,\"duration\":4,\"visual_prompt\":\"v\",\"narration_text\":\"n\"}]\n```")
		require.NoError(t, err)
		assert.Len(t, scenes, 1)
	})

	t.Run("prose around array", func(t *testing.T) {
		scenes, err := Scenes("Sure! Here it is:\n[{\"id\":1,\"duration\":4,\"visual_prompt\":\"v\",\"narration_text\":\"n\"}]\nDone.")
		require.NoError(t, err)
		assert.Len(t, scenes, 1)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := Scenes("no scenes at all")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no JSON array")
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := Scenes("[]")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Scenes(`[{"id":"one"}]`)
		assert.Error(t, err)
	})
}
