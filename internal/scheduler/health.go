package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Component names tracked by serve mode.
const (
	ComponentDatabase  = "database"
	ComponentIndex     = "reel_index"
	ComponentLLM       = "llm"
	ComponentAnalytics = "analytics"
)

// HealthStatus represents the health of a component.
type HealthStatus struct {
	Healthy     bool      `json:"healthy"`
	LastCheck   time.Time `json:"last_check"`
	LastSuccess time.Time `json:"last_success,omitzero"`
	LastError   error     `json:"-"`
	Message     string    `json:"message"`
}

// Health tracks the health of various components.
type Health struct {
	mu         sync.RWMutex
	components map[string]HealthStatus
	now        func() time.Time
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{
		components: make(map[string]HealthStatus),
		now:        time.Now,
	}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	h.components[component] = HealthStatus{
		Healthy:     true,
		LastCheck:   now,
		LastSuccess: now,
		Message:     message,
	}
}

// SetUnhealthy marks a component as unhealthy, keeping its last success.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.components[component]
	status.Healthy = false
	status.LastCheck = h.now()
	status.LastError = err
	status.Message = err.Error()
	h.components[component] = status
}

// Record sets the component healthy when err is nil and unhealthy otherwise.
func (h *Health) Record(component string, err error, okMessage string) {
	if err != nil {
		h.SetUnhealthy(component, err)
		return
	}
	h.SetHealthy(component, okMessage)
}

// GetStatus returns a copy of a component's status, or nil if unknown.
func (h *Health) GetStatus(component string) *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status, ok := h.components[component]
	if !ok {
		return nil
	}
	return &status
}

// GetAllStatuses returns a copy of all component statuses.
func (h *Health) GetAllStatuses() map[string]HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]HealthStatus, len(h.components))
	for name, status := range h.components {
		out[name] = status
	}
	return out
}

// Unhealthy returns the names of unhealthy components, sorted.
func (h *Health) Unhealthy() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var names []string
	for name, status := range h.components {
		if !status.Healthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// IsOverallHealthy returns true if all components are healthy.
func (h *Health) IsOverallHealthy() bool {
	return len(h.Unhealthy()) == 0
}
