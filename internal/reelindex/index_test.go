package reelindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	assert.Equal(t, "GlowMug", Document(Entry{Title: "GlowMug"}))
	assert.Equal(t, "GlowMug\n\nMeet GlowMug.", Document(Entry{Title: "GlowMug", Script: "Meet GlowMug."}))
}

func TestPayloadRoundTrip(t *testing.T) {
	e := Entry{
		ReelID:      "01HX",
		Title:       "GlowMug",
		Script:      "Meet GlowMug.",
		ProductName: "GlowMug",
		Platforms:   "TikTok, YouTube",
	}

	h := hitFromPayload(7, Document(e), Payload(e), 0.91)

	assert.Equal(t, Hit{
		VecLiteID:  7,
		ReelID:     "01HX",
		Title:      "GlowMug",
		Script:     "Meet GlowMug.",
		Platforms:  "TikTok, YouTube",
		Similarity: 0.91,
	}, h)
}

func TestHitFromPayload_ContentFallback(t *testing.T) {
	h := hitFromPayload(1, "raw content", nil, 0.5)

	assert.Equal(t, "raw content", h.Title)
	assert.Empty(t, h.ReelID)
}
