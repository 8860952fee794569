package captions

import (
	"context"
	"errors"
	"testing"

	"github.com/abdulachik/reelsmith/internal/llm"
	"github.com/abdulachik/reelsmith/internal/llm/llmtest"
	"github.com/abdulachik/reelsmith/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captionContext() Context {
	return Context{
		Request: prompt.Request{ProductName: "GlowMug", Tone: "friendly"},
		Script:  "Meet GlowMug.",
		Caption: "Hot coffee all day.",
	}
}

func TestGenerator_Options(t *testing.T) {
	t.Run("parses options", func(t *testing.T) {
		client := llmtest.New(llmtest.Text(`Sure: ["A","B","C"]`))

		res := New(client).Options(context.Background(), captionContext())

		require.NoError(t, res.Err)
		assert.Equal(t, []string{"A", "B", "C"}, res.Options)
		assert.Equal(t, 1, client.Calls())
		assert.Contains(t, client.UserPrompt(0), "Propose 3 distinct")
		assert.Contains(t, client.UserPrompt(0), "Meet GlowMug.")
	})

	t.Run("single option gets a default", func(t *testing.T) {
		client := llmtest.New(llmtest.Text(`["Only one"]`))

		res := New(client).Options(context.Background(), captionContext())

		require.NoError(t, res.Err)
		require.Len(t, res.Options, 2)
		assert.Equal(t, "Only one", res.Options[0])
		assert.Contains(t, res.Options[1], "GlowMug")
	})

	t.Run("no options still yields two", func(t *testing.T) {
		client := llmtest.New(llmtest.Text(`[]`))

		res := New(client).Options(context.Background(), captionContext())

		assert.Len(t, res.Options, 2)
		assert.NotEqual(t, res.Options[0], res.Options[1])
	})

	t.Run("truncates to six", func(t *testing.T) {
		client := llmtest.New(llmtest.Text(`["1","2","3","4","5","6","7","8"]`))

		c := captionContext()
		c.Count = 10
		res := New(client).Options(context.Background(), c)

		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, res.Options)
		assert.Contains(t, client.UserPrompt(0), "Propose 6 distinct")
	})

	t.Run("failure is returned as data", func(t *testing.T) {
		boom := &llm.ServiceError{Provider: "groq", Status: 503, Body: "down"}
		client := llmtest.New(llmtest.Fail(boom))

		res := New(client).Options(context.Background(), captionContext())

		require.Error(t, res.Err)
		assert.True(t, errors.Is(res.Err, boom))
		require.Len(t, res.Options, 1)
		assert.Contains(t, res.Options[0], "Could not generate captions")
	})
}

func TestGenerator_Hashtags(t *testing.T) {
	t.Run("cleans and dedups", func(t *testing.T) {
		client := llmtest.New(llmtest.Text(`["#Fun", "fun", " Fun ", "Cool"]`))

		res := New(client).Hashtags(context.Background(), captionContext())

		require.NoError(t, res.Err)
		assert.Equal(t, []string{"Fun", "Cool"}, res.Tags)
		assert.Contains(t, client.UserPrompt(0), "between 8 and 10 hashtags")
		assert.Contains(t, client.UserPrompt(0), "Hot coffee all day.")
	})

	t.Run("truncates to clamped limit", func(t *testing.T) {
		client := llmtest.New(llmtest.Text(`["a","b","c","d","e"]`))

		c := captionContext()
		c.Count = 1
		res := New(client).Hashtags(context.Background(), c)

		assert.Equal(t, []string{"a", "b", "c"}, res.Tags)
	})

	t.Run("line fallback", func(t *testing.T) {
		client := llmtest.New(llmtest.Text("#coffee lovers\n#MorningRitual\n- smart mug"))

		res := New(client).Hashtags(context.Background(), captionContext())

		assert.Equal(t, []string{"coffeelovers", "MorningRitual", "smartmug"}, res.Tags)
	})

	t.Run("failure is a sanitized token", func(t *testing.T) {
		client := llmtest.New(llmtest.Fail(errors.New("Service Unavailable: the upstream model is overloaded right now")))

		res := New(client).Hashtags(context.Background(), captionContext())

		require.Error(t, res.Err)
		require.Len(t, res.Tags, 1)
		assert.Equal(t, "error-service-unavailable:-the-upstream-", res.Tags[0])
		assert.LessOrEqual(t, len([]rune(res.Tags[0])), maxErrorToken)
	})
}

func TestCleanHashtags(t *testing.T) {
	assert.Equal(t, []string{"Fun", "Cool"}, CleanHashtags([]string{"#Fun", "fun", " Fun ", "Cool"}, 10))
	assert.Equal(t, []string{"TwoWords"}, CleanHashtags([]string{"##Two Words", "", "#"}, 10))
	assert.Empty(t, CleanHashtags(nil, 10))
}
