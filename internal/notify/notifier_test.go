package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier_Send(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := n.Send(context.Background(), Notification{Subject: "analytics refresh", Body: "YouTube: quota"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `subject="analytics refresh"`)
	assert.Contains(t, out, `body="YouTube: quota"`)
}

func TestNewLogNotifier_DefaultLogger(t *testing.T) {
	assert.NotNil(t, NewLogNotifier(nil).logger)
}
