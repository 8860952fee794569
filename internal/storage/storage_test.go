package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.mp4")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLocal_Put(t *testing.T) {
	root := t.TempDir()
	src := writeTemp(t, "video bytes")

	ref, err := NewLocal(root).Put(context.Background(), "20260301-120000-glowmug/video.mp4", src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "20260301-120000-glowmug", "video.mp4"), ref)
	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(data))
}

func TestLocal_PutMissingSource(t *testing.T) {
	_, err := NewLocal(t.TempDir()).Put(context.Background(), "a/video.mp4", "/does/not/exist.mp4")
	assert.Error(t, err)
}

type mockS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = params
	data, _ := io.ReadAll(params.Body)
	m.body = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3_Put(t *testing.T) {
	t.Run("returns CDN URL", func(t *testing.T) {
		client := &mockS3{}
		src := writeTemp(t, "clip")

		ref, err := NewS3(client, "reels-bucket", "https://cdn.example.com/").Put(context.Background(), "x/video.mp4", src)
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/x/video.mp4", ref)
		assert.Equal(t, "reels-bucket", *client.input.Bucket)
		assert.Equal(t, "x/video.mp4", *client.input.Key)
		assert.Equal(t, "video/mp4", *client.input.ContentType)
		assert.Equal(t, int64(4), *client.input.ContentLength)
		assert.Equal(t, "clip", client.body)
	})

	t.Run("falls back to s3 URI", func(t *testing.T) {
		ref, err := NewS3(&mockS3{}, "b", "").Put(context.Background(), "k.mp4", writeTemp(t, "x"))
		require.NoError(t, err)
		assert.Equal(t, "s3://b/k.mp4", ref)
	})

	t.Run("wraps client error", func(t *testing.T) {
		boom := errors.New("access denied")
		_, err := NewS3(&mockS3{err: boom}, "b", "").Put(context.Background(), "k.mp4", writeTemp(t, "x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", contentType("a/B.MP4"))
	assert.Equal(t, "audio/mpeg", contentType("voice.mp3"))
	assert.Equal(t, "application/octet-stream", contentType("notes"))
}
