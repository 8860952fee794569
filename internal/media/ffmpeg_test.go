package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestSegments(t *testing.T) {
	videoDir := t.TempDir()
	audioDir := t.TempDir()

	touch(t, filepath.Join(videoDir, "scene_1.mp4"))
	touch(t, filepath.Join(audioDir, "voice_scene_1.mp3"))
	touch(t, filepath.Join(videoDir, "scene_2.mp4"))
	touch(t, filepath.Join(audioDir, "voice_scene_3.mp3"))
	touch(t, filepath.Join(videoDir, "scene_4.mp4"))
	touch(t, filepath.Join(audioDir, "voice_scene_4.mp3"))

	segs := Segments([]extract.Scene{
		{ID: 4, Duration: 3},
		{ID: 1, Duration: 5},
		{ID: 2, Duration: 5},
		{ID: 3, Duration: 5},
		{ID: 0, Duration: 5},
	}, videoDir, audioDir)

	require.Len(t, segs, 2)
	assert.Equal(t, 4, segs[0].SceneID)
	assert.Equal(t, float64(3), segs[0].Duration)
	assert.Equal(t, 1, segs[1].SceneID)
	assert.Equal(t, filepath.Join(audioDir, "voice_scene_1.mp3"), segs[1].Audio)
}

func TestMergeArgs(t *testing.T) {
	args := MergeArgs(Segment{SceneID: 1, Video: "v.mp4", Audio: "a.mp3", Duration: 5.5}, "out.mp4")

	assert.Equal(t, []string{"-y", "-i", "v.mp4", "-i", "a.mp3"}, args[:5])
	assert.Contains(t, args, "[1:a]atrim=0:5.5,asetpts=N/SR/TB[aout]")
	assert.Contains(t, args, "libx264")
	assert.Equal(t, []string{"-t", "5.5", "out.mp4"}, args[len(args)-3:])
}

func TestConcat(t *testing.T) {
	assert.Equal(t, "file '/tmp/a.mp4'\nfile '/tmp/b.mp4'\n", ConcatList([]string{"/tmp/a.mp4", "/tmp/b.mp4"}))
	assert.Equal(t,
		[]string{"-y", "-f", "concat", "-safe", "0", "-i", "list.txt", "-c", "copy", "final.mp4"},
		ConcatArgs("list.txt", "final.mp4"))
}

func TestLatestAudioDir(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "20260101-100000-old", "voice_scene_1.mp3"))
	touch(t, filepath.Join(root, "20260301-100000-new", "voice_scene_1.mp3"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "20260401-100000-empty"), 0755))

	dir, ok := LatestAudioDir(root)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "20260301-100000-new"), dir)

	_, ok = LatestAudioDir(filepath.Join(root, "missing"))
	assert.False(t, ok)
}

func TestMerger_NoSegments(t *testing.T) {
	m := &Merger{ffmpeg: "ffmpeg", ffprobe: "ffprobe"}

	err := m.Merge(context.Background(), []extract.Scene{{ID: 1, Duration: 5}}, t.TempDir(), t.TempDir(), "out.mp4")
	assert.ErrorIs(t, err, ErrNoSegments)
}
