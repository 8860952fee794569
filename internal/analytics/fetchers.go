package analytics

import "github.com/abdulachik/reelsmith/internal/config"

// NewFetchers builds one fetcher per platform from credentials. Fetchers
// whose credentials are missing return no rows.
func NewFetchers(creds config.PlatformCredentials) []Fetcher {
	igToken := creds.InstagramAccessToken
	if igToken == "" {
		igToken = creds.FacebookPageAccessToken
	}

	return []Fetcher{
		NewInstagramFetcher(GraphConfig{AccountID: creds.InstagramAccountID, AccessToken: igToken}),
		NewFacebookFetcher(GraphConfig{AccountID: creds.FacebookPageID, AccessToken: creds.FacebookPageAccessToken}),
		NewYouTubeFetcher(YouTubeConfig{APIKey: creds.YouTubeAPIKey, ChannelID: creds.YouTubeChannelID}),
		NewTwitterFetcher(TwitterConfig{
			BearerToken: creds.TwitterBearerToken,
			Username:    creds.TwitterUsername,
			UserID:      creds.TwitterUserID,
		}),
	}
}
