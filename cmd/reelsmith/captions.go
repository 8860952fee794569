package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdulachik/reelsmith/internal/captions"
	"github.com/abdulachik/reelsmith/internal/extract"
	"github.com/abdulachik/reelsmith/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	captionFlags   requestFlags
	captionScript  string
	captionCount   int
	captionChoice  string
	hashtagMaximum int
)

var captionsCmd = &cobra.Command{
	Use:   "captions",
	Short: "Propose caption options for a finished script",
	Long: `Ask the model for 2 to 6 caption options for a finished script.

Examples:
  reelsmith captions --name GlowMug --script script.txt --count 4
  cat script.txt | reelsmith captions --name GlowMug --script -`,
	RunE: runCaptions,
}

var hashtagsCmd = &cobra.Command{
	Use:   "hashtags",
	Short: "Suggest hashtags for a chosen caption",
	Long: `Ask the model for 3 to 15 hashtags matching a chosen caption.

Examples:
  reelsmith hashtags --name GlowMug --script script.txt --caption "Warm all day" --max 8`,
	RunE: runHashtags,
}

func init() {
	for _, cmd := range []*cobra.Command{captionsCmd, hashtagsCmd} {
		captionFlags.bind(cmd)
		cmd.Flags().StringVar(&captionScript, "script", "", "File holding the final script (- for stdin)")
		_ = cmd.MarkFlagRequired("script")
	}
	captionsCmd.Flags().IntVar(&captionCount, "count", prompt.DefaultCaptionOptions, "Number of options (2-6)")
	hashtagsCmd.Flags().StringVar(&captionChoice, "caption", "", "Chosen caption")
	hashtagsCmd.Flags().IntVar(&hashtagMaximum, "max", prompt.DefaultMaxHashtags, "Maximum hashtags (3-15)")

	rootCmd.AddCommand(captionsCmd)
	rootCmd.AddCommand(hashtagsCmd)
}

func captionContext(count int) (captions.Context, error) {
	raw, err := readInput(captionScript)
	if err != nil {
		return captions.Context{}, err
	}

	return captions.Context{
		Request: captionFlags.request(),
		Script:  extract.Narration(raw),
		Caption: captionChoice,
		Count:   count,
	}, nil
}

func runCaptions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	c, err := captionContext(captionCount)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	gen, err := a.Captions()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	res := gen.Options(ctx, c)
	p := printer()
	if res.Err != nil {
		p.Error("%s", res.Options[0])
		return res.Err
	}
	p.Title("Caption options")
	p.List(res.Options)
	return nil
}

func runHashtags(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	c, err := captionContext(hashtagMaximum)
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	gen, err := a.Captions()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	res := gen.Hashtags(ctx, c)
	p := printer()
	if res.Err != nil {
		p.Error("%s", res.Err)
		return res.Err
	}

	tags := make([]string, len(res.Tags))
	for i, t := range res.Tags {
		tags[i] = "#" + t
	}
	p.Println(strings.Join(tags, " "))
	return nil
}
