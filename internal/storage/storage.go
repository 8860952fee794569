// Package storage puts rendered reels somewhere they can be played back
// from: a local directory or an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Backend stores a local file under key and returns a reference to it.
type Backend interface {
	Put(ctx context.Context, key, srcPath string) (string, error)
	Name() string
}

// Local copies files under a root directory. References are file paths.
type Local struct {
	root string
}

// NewLocal creates a local backend rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Name returns the backend name.
func (l *Local) Name() string {
	return "local"
}

// Put copies srcPath to <root>/<key>.
func (l *Local) Put(ctx context.Context, key, srcPath string) (string, error) {
	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("create reel dir: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("copy to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dst, err)
	}
	return dst, nil
}

// PutObjectAPI is the part of *s3.Client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads files to a bucket. References are CDN URLs when a base URL is
// configured and s3:// URIs otherwise.
type S3 struct {
	client     PutObjectAPI
	bucket     string
	cdnBaseURL string
}

// NewS3 creates an S3 backend over an existing client.
func NewS3(client PutObjectAPI, bucket, cdnBaseURL string) *S3 {
	return &S3{client: client, bucket: bucket, cdnBaseURL: strings.TrimRight(cdnBaseURL, "/")}
}

// NewS3FromEnv loads the default AWS credential chain.
func NewS3FromEnv(ctx context.Context, bucket, cdnBaseURL string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, cdnBaseURL), nil
}

// Name returns the backend name.
func (s *S3) Name() string {
	return "s3"
}

// Put uploads srcPath as key.
func (s *S3) Put(ctx context.Context, key, srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", srcPath, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          f,
		ContentType:   aws.String(contentType(key)),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	if s.cdnBaseURL != "" {
		return s.cdnBaseURL + "/" + key, nil
	}
	return "s3://" + s.bucket + "/" + key, nil
}

func contentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
