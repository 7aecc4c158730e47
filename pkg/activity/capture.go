package activity

import (
	"context"
	"sync"
)

// CaptureHook records events in memory, for tests and dry runs.
type CaptureHook struct {
	Err error

	mu     sync.Mutex
	events []Event
}

// Notify records the event and returns the configured error.
func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, NormalizeEvent(event))
	return h.Err
}

// Events returns a copy of the captured events.
func (h *CaptureHook) Events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.events...)
}
