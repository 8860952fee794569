package uploader

import (
	"context"

	"github.com/abdulachik/reelsmith/internal/config"
)

// TikTokUploader publishes to TikTok.
type TikTokUploader struct {
	accessToken string
}

// NewTikTok creates a TikTok uploader.
func NewTikTok(creds config.PlatformCredentials) *TikTokUploader {
	return &TikTokUploader{accessToken: creds.TikTokAccessToken}
}

func (u *TikTokUploader) Platform() string { return TikTok }

// Upload publishes content. The real API call is simulated.
func (u *TikTokUploader) Upload(ctx context.Context, content Content) Result {
	if u.accessToken == "" {
		return missing(TikTok, "Missing TIKTOK_ACCESS_TOKEN in environment")
	}
	return simulated(TikTok, "https://www.tiktok.com/@youraccount/video/1234567890", content, TikTokMaxLength)
}

// YouTubeUploader publishes YouTube Shorts.
type YouTubeUploader struct {
	apiKey     string
	oauthToken string
}

// NewYouTube creates a YouTube uploader. Either credential is enough.
func NewYouTube(creds config.PlatformCredentials) *YouTubeUploader {
	return &YouTubeUploader{apiKey: creds.YouTubeAPIKey, oauthToken: creds.YouTubeOAuthToken}
}

func (u *YouTubeUploader) Platform() string { return YouTube }

func (u *YouTubeUploader) Upload(ctx context.Context, content Content) Result {
	if u.apiKey == "" && u.oauthToken == "" {
		return missing(YouTube, "Missing YOUTUBE_API_KEY or YOUTUBE_OAUTH_TOKEN")
	}
	return simulated(YouTube, "https://youtu.be/abcdef12345", content, YouTubeMaxLength)
}

// LinkedInUploader publishes to a LinkedIn feed.
type LinkedInUploader struct {
	accessToken string
}

// NewLinkedIn creates a LinkedIn uploader.
func NewLinkedIn(creds config.PlatformCredentials) *LinkedInUploader {
	return &LinkedInUploader{accessToken: creds.LinkedInAccessToken}
}

func (u *LinkedInUploader) Platform() string { return LinkedIn }

func (u *LinkedInUploader) Upload(ctx context.Context, content Content) Result {
	if u.accessToken == "" {
		return missing(LinkedIn, "Missing LINKEDIN_ACCESS_TOKEN")
	}
	return simulated(LinkedIn, "https://www.linkedin.com/feed/update/urn:li:activity:1234567890", content, LinkedInMaxLength)
}

// FacebookUploader publishes to a Facebook page.
type FacebookUploader struct {
	pageID      string
	accessToken string
}

// NewFacebook creates a Facebook uploader.
func NewFacebook(creds config.PlatformCredentials) *FacebookUploader {
	return &FacebookUploader{pageID: creds.FacebookPageID, accessToken: creds.FacebookPageAccessToken}
}

func (u *FacebookUploader) Platform() string { return Facebook }

func (u *FacebookUploader) Upload(ctx context.Context, content Content) Result {
	if u.pageID == "" || u.accessToken == "" {
		return missing(Facebook, "Missing FACEBOOK_PAGE_ACCESS_TOKEN or FACEBOOK_PAGE_ID")
	}
	return simulated(Facebook, "https://www.facebook.com/"+u.pageID+"/videos/9876543210", content, FacebookMaxLength)
}

// TwitterUploader publishes to Twitter/X.
type TwitterUploader struct {
	apiKey       string
	apiSecret    string
	accessToken  string
	accessSecret string
}

// NewTwitter creates a Twitter/X uploader.
func NewTwitter(creds config.PlatformCredentials) *TwitterUploader {
	return &TwitterUploader{
		apiKey:       creds.TwitterAPIKey,
		apiSecret:    creds.TwitterAPISecret,
		accessToken:  creds.TwitterAccessToken,
		accessSecret: creds.TwitterAccessSecret,
	}
}

func (u *TwitterUploader) Platform() string { return Twitter }

func (u *TwitterUploader) Upload(ctx context.Context, content Content) Result {
	if u.apiKey == "" || u.apiSecret == "" || u.accessToken == "" || u.accessSecret == "" {
		return missing(Twitter, "Missing Twitter/X API credentials in environment")
	}
	return simulated(Twitter, "https://x.com/yourhandle/status/1357924680", content, TwitterMaxLength)
}
