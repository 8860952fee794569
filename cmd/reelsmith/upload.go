package main

import (
	"context"
	"fmt"

	"github.com/abdulachik/reelsmith/internal/uploader"
	"github.com/spf13/cobra"
)

var (
	uploadVideo     string
	uploadCaption   string
	uploadHashtags  []string
	uploadPlatforms []string
	uploadReelID    string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Publish a video to social platforms",
	Long: `Publish a video with its caption and hashtags to each platform in order.
Every attempt is recorded against the reel.

Examples:
  reelsmith upload --video final_video.mp4 --caption "Warm all day" \
    --hashtag coffee --hashtag smartmug --platform TikTok,YouTube --reel-id 01J...`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadVideo, "video", "", "Video path or URL")
	uploadCmd.Flags().StringVar(&uploadCaption, "caption", "", "Caption")
	uploadCmd.Flags().StringArrayVar(&uploadHashtags, "hashtag", nil, "Hashtag without # (repeatable)")
	uploadCmd.Flags().StringSliceVar(&uploadPlatforms, "platform", uploader.SupportedPlatforms, "Platforms to publish to")
	uploadCmd.Flags().StringVar(&uploadReelID, "reel-id", "", "History reel id the upload belongs to")
	_ = uploadCmd.MarkFlagRequired("video")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	results := a.Uploads.UploadAll(ctx, uploadPlatforms, uploader.Content{
		Video:    uploadVideo,
		Caption:  uploadCaption,
		Hashtags: uploadHashtags,
	})

	if err := a.RecordUploads(ctx, uploadReelID, results); err != nil {
		return err
	}

	p := printer()
	failed := 0
	for _, res := range results {
		if res.OK() {
			p.OK("%s: %s", res.Platform, res.URL)
			continue
		}
		failed++
		p.Error("%s: %s", res.Platform, res.Message)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(results))
	}
	return nil
}
