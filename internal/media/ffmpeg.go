// Package media stitches scene clips and voiceovers into the final reel.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/video"
	"github.com/abdulachik/reelsmith/internal/voice"
)

// Encoding settings for merged scene segments.
const (
	VideoCodec   = "libx264"
	VideoPreset  = "veryfast"
	VideoCRF     = "18"
	PixelFormat  = "yuv420p"
	AudioCodec   = "aac"
	AudioBitrate = "192k"

	evenDimensions = "scale=trunc(iw/2)*2:trunc(ih/2)*2"
)

var (
	// ErrNoFFmpeg is returned when ffmpeg or ffprobe is not on PATH.
	ErrNoFFmpeg = errors.New("ffmpeg not found on PATH; install FFmpeg")

	// ErrNoSegments is returned when no scene has both a clip and a voiceover.
	ErrNoSegments = errors.New("no scenes with both a clip and a voiceover")
)

// Merger runs ffmpeg to build a reel.
type Merger struct {
	ffmpeg  string
	ffprobe string
}

// NewMerger locates ffmpeg and ffprobe.
func NewMerger() (*Merger, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrNoFFmpeg
	}
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, ErrNoFFmpeg
	}
	return &Merger{ffmpeg: ffmpeg, ffprobe: ffprobe}, nil
}

// Segment pairs a scene's clip with its voiceover.
type Segment struct {
	SceneID  int
	Video    string
	Audio    string
	Duration float64
}

// Segments finds scene_<id>.mp4 and voice_scene_<id>.mp3 for each scene in
// order. Scenes missing either file are skipped.
func Segments(scenes []extract.Scene, videoDir, audioDir string) []Segment {
	var out []Segment
	for _, s := range scenes {
		if s.ID <= 0 {
			continue
		}
		clip := filepath.Join(videoDir, video.ClipName(s.ID))
		audio := filepath.Join(audioDir, voice.FileName(s.ID))

		if !exists(clip) {
			slog.Warn("missing clip, skipping scene", "scene", s.ID, "path", clip)
			continue
		}
		if !exists(audio) {
			slog.Warn("missing voiceover, skipping scene", "scene", s.ID, "path", audio)
			continue
		}
		out = append(out, Segment{SceneID: s.ID, Video: clip, Audio: audio, Duration: float64(s.Duration)})
	}
	return out
}

// Merge muxes each scene's clip with its voiceover, trimmed to the scene
// duration, and concatenates the results into output.
func (m *Merger) Merge(ctx context.Context, scenes []extract.Scene, videoDir, audioDir, output string) error {
	segments := Segments(scenes, videoDir, audioDir)
	if len(segments) == 0 {
		return ErrNoSegments
	}

	tmpDir, err := os.MkdirTemp("", "merged_scenes_")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var merged []string
	for _, seg := range segments {
		if seg.Duration <= 0 {
			d, err := m.probeDuration(ctx, seg.Video)
			if err != nil {
				return fmt.Errorf("scene %d has no duration: %w", seg.SceneID, err)
			}
			seg.Duration = d
		}

		out := filepath.Join(tmpDir, fmt.Sprintf("merged_scene_%d.mp4", seg.SceneID))
		slog.Info("merging scene", "scene", seg.SceneID)
		if err := m.run(ctx, MergeArgs(seg, out)); err != nil {
			return fmt.Errorf("merge scene %d: %w", seg.SceneID, err)
		}
		merged = append(merged, out)
	}

	listPath := filepath.Join(tmpDir, "concat_list.txt")
	if err := os.WriteFile(listPath, []byte(ConcatList(merged)), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	slog.Info("concatenating scenes", "count", len(merged), "output", output)
	if err := m.run(ctx, ConcatArgs(listPath, output)); err != nil {
		return fmt.Errorf("concat: %w", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("output file not created: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output file is empty")
	}
	return nil
}

// MergeArgs are the ffmpeg arguments that mux one segment.
func MergeArgs(seg Segment, output string) []string {
	dur := strconv.FormatFloat(seg.Duration, 'f', -1, 64)
	return []string{
		"-y",
		"-i", seg.Video,
		"-i", seg.Audio,
		"-filter_complex", fmt.Sprintf("[1:a]atrim=0:%s,asetpts=N/SR/TB[aout]", dur),
		"-map", "0:v:0",
		"-map", "[aout]",
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-pix_fmt", PixelFormat,
		"-vf", evenDimensions,
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-t", dur,
		output,
	}
}

// ConcatArgs are the ffmpeg arguments for the concat demuxer with stream copy.
func ConcatArgs(listPath, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		output,
	}
}

// ConcatList renders the concat demuxer input for files.
func ConcatList(files []string) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(f))
	}
	return b.String()
}

// LatestAudioDir returns the newest directory under root holding
// voice_scene_*.mp3 files. Directory names start with a timestamp, so the
// lexically greatest is the newest.
func LatestAudioDir(root string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		dir := filepath.Join(root, name)
		matches, _ := filepath.Glob(filepath.Join(dir, "voice_scene_*.mp3"))
		if len(matches) > 0 {
			return dir, true
		}
	}
	return "", false
}

func (m *Merger) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, m.ffmpeg, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	cmd.Stdout = nil

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, stderr.String())
	}
	return nil
}

func (m *Merger) probeDuration(ctx context.Context, path string) (float64, error) {
	out, err := exec.CommandContext(ctx, m.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
