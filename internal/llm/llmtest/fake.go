// Package llmtest provides a scripted completion client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/abdulachik/reelsmith/internal/llm"
)

// Reply is one scripted completion result.
type Reply struct {
	Text string
	Err  error
}

// Client returns scripted replies in order and records every call.
type Client struct {
	mu      sync.Mutex
	replies []Reply
	calls   [][]llm.Message
}

// New creates a client that answers with replies in order.
func New(replies ...Reply) *Client {
	return &Client{replies: replies}
}

// Text is shorthand for a successful reply.
func Text(s string) Reply { return Reply{Text: s} }

// Fail is shorthand for a failed reply.
func Fail(err error) Reply { return Reply{Err: err} }

// Complete returns the next scripted reply. Running out of replies is an error.
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, messages)
	n := len(c.calls)
	if n > len(c.replies) {
		return "", fmt.Errorf("llmtest: unexpected call %d", n)
	}
	r := c.replies[n-1]
	return r.Text, r.Err
}

// Calls returns the number of completions requested so far.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// UserPrompt returns the user message of call i.
func (c *Client) UserPrompt(i int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.calls[i] {
		if m.Role == llm.RoleUser {
			return m.Content
		}
	}
	return ""
}
