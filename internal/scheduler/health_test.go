package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_SetHealthy(t *testing.T) {
	h := NewHealth()

	h.SetHealthy("test", "all good")

	status := h.GetStatus("test")
	require.NotNil(t, status)
	assert.True(t, status.Healthy)
	assert.Equal(t, "all good", status.Message)
	assert.Nil(t, status.LastError)
	assert.WithinDuration(t, time.Now(), status.LastCheck, time.Second)
	assert.WithinDuration(t, time.Now(), status.LastSuccess, time.Second)
}

func TestHealth_SetUnhealthy_KeepsLastSuccess(t *testing.T) {
	h := NewHealth()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return fixed }
	h.SetHealthy("test", "ok")

	h.now = func() time.Time { return fixed.Add(time.Hour) }
	h.SetUnhealthy("test", assert.AnError)

	status := h.GetStatus("test")
	require.NotNil(t, status)
	assert.False(t, status.Healthy)
	assert.Equal(t, assert.AnError, status.LastError)
	assert.Equal(t, assert.AnError.Error(), status.Message)
	assert.Equal(t, fixed.Add(time.Hour), status.LastCheck)
	assert.Equal(t, fixed, status.LastSuccess)
}

func TestHealth_GetStatus_NotFound(t *testing.T) {
	assert.Nil(t, NewHealth().GetStatus("nonexistent"))
}

func TestHealth_GetStatus_ReturnsCopy(t *testing.T) {
	h := NewHealth()
	h.SetHealthy("db", "ok")

	h.GetStatus("db").Healthy = false

	assert.True(t, h.GetStatus("db").Healthy)
}

func TestHealth_Record(t *testing.T) {
	h := NewHealth()

	h.Record(ComponentDatabase, nil, "connected")
	h.Record(ComponentIndex, errors.New("no embedder"), "")

	assert.True(t, h.GetStatus(ComponentDatabase).Healthy)
	assert.Equal(t, "connected", h.GetStatus(ComponentDatabase).Message)
	assert.False(t, h.GetStatus(ComponentIndex).Healthy)
	assert.Equal(t, []string{ComponentIndex}, h.Unhealthy())
}

func TestHealth_GetAllStatuses(t *testing.T) {
	h := NewHealth()

	h.SetHealthy("comp1", "ok")
	h.SetHealthy("comp2", "ok")
	h.SetUnhealthy("comp3", assert.AnError)

	statuses := h.GetAllStatuses()
	assert.Len(t, statuses, 3)
	assert.True(t, statuses["comp1"].Healthy)
	assert.True(t, statuses["comp2"].Healthy)
	assert.False(t, statuses["comp3"].Healthy)
}

func TestHealth_IsOverallHealthy(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHealth()
		h.SetHealthy("comp1", "ok")
		h.SetHealthy("comp2", "ok")

		assert.True(t, h.IsOverallHealthy())
	})

	t.Run("one unhealthy", func(t *testing.T) {
		h := NewHealth()
		h.SetHealthy("comp1", "ok")
		h.SetUnhealthy("comp2", assert.AnError)

		assert.False(t, h.IsOverallHealthy())
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, NewHealth().IsOverallHealthy())
	})
}
