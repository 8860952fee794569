package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFlags(t *testing.T) {
	var f requestFlags
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd)

	require.NoError(t, cmd.ParseFlags([]string{
		"--name", " GlowMug ",
		"--benefit", "Warm all day",
		"--benefit", " ",
		"--platform", "TikTok,YouTube",
		"--duration", "30",
	}))

	req := f.request()
	assert.Equal(t, "GlowMug", req.ProductName)
	assert.Equal(t, []string{"Warm all day"}, req.Benefits)
	assert.Equal(t, []string{"TikTok", "YouTube"}, req.Platforms)
	assert.Equal(t, 30, req.DurationSeconds)
	assert.Equal(t, "English", req.Language)
	assert.Equal(t, "Friendly", req.Tone)
}

func TestLoadScenes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.json")
	plan := `[{"id":1,"duration":4,"visual_prompt":"mug on desk","narration_text":"Meet GlowMug."},` +
		`{"id":2,"duration":5,"visual_prompt":"steam rising","narration_text":"Warm all day."}]`
	require.NoError(t, os.WriteFile(path, []byte("Here is the plan:\n"+plan+"\nEnjoy!"), 0644))

	scenes, err := loadScenes(path)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "Meet GlowMug. Warm all day.", narrationOf(scenes))

	_, err = loadScenes(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNarrationOf_SkipsBlank(t *testing.T) {
	assert.Equal(t, "a b", narrationOf([]extract.Scene{{NarrationText: " a "}, {}, {NarrationText: "b"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "captions", "hashtags", "scenes", "video", "clips",
		"voice", "merge", "upload", "history", "analytics", "migrate", "serve", "stats"} {
		assert.True(t, names[want], want)
	}
}
