package loop

import (
	"sync"
	"time"
)

// Hub tracks live runs so a server can end them together.
type Hub struct {
	mu      sync.RWMutex
	nextID  int
	runs    map[int]chan struct{}
	closing bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{runs: make(map[int]chan struct{})}
}

// register adds a run. The returned channel is closed when the hub shuts down.
func (h *Hub) register() (int, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	notice := make(chan struct{})
	if h.closing {
		close(notice)
	}
	h.runs[id] = notice
	return id, notice
}

// unregister removes a finished run.
func (h *Hub) unregister(id int) {
	h.mu.Lock()
	delete(h.runs, id)
	h.mu.Unlock()
}

// Count returns the number of live runs.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.runs)
}

// Shutdown notifies every run and waits until all have ended or timeout passes.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.Lock()
	if !h.closing {
		h.closing = true
		for _, notice := range h.runs {
			close(notice)
		}
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for h.Count() > 0 {
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
