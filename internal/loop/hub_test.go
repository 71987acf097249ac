package loop

import (
	"testing"
	"time"
)

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestHubRegister(t *testing.T) {
	h := NewHub()
	id1, n1 := h.register()
	id2, _ := h.register()

	if id1 == id2 {
		t.Error("ids should be unique")
	}
	if h.Count() != 2 {
		t.Errorf("Count() = %d, want 2", h.Count())
	}
	if isClosed(n1) {
		t.Error("notice closed before shutdown")
	}

	h.unregister(id1)
	h.unregister(id2)
	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}
}

func TestHubShutdownNotifiesAndWaits(t *testing.T) {
	h := NewHub()
	id, notice := h.register()

	go func() {
		<-notice
		h.unregister(id)
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)

	if h.Count() != 0 {
		t.Errorf("Count() = %d after shutdown", h.Count())
	}
	if time.Since(start) >= 5*time.Second {
		t.Error("shutdown waited for the full timeout")
	}

	_, late := h.register()
	if !isClosed(late) {
		t.Error("registration after shutdown should be notified at once")
	}
}

func TestHubShutdownTimeout(t *testing.T) {
	h := NewHub()
	h.register()

	h.Shutdown(100 * time.Millisecond)

	if h.Count() != 1 {
		t.Errorf("Count() = %d, want the stuck run to remain", h.Count())
	}
	// A second shutdown must not close notices twice.
	h.Shutdown(10 * time.Millisecond)
}
