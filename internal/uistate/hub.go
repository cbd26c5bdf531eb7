package uistate

import "sync"

// Hub fans out changes to listeners of the same scope across Store
// instances. Slow listeners miss events instead of blocking writers.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]map[chan Change]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{listeners: make(map[string]map[chan Change]struct{})}
}

// Listen returns a channel receiving changes for scope and a function that
// stops delivery and closes the channel.
func (h *Hub) Listen(scope string, buffer int) (<-chan Change, func()) {
	ch := make(chan Change, buffer)

	h.mu.Lock()
	if h.listeners[scope] == nil {
		h.listeners[scope] = make(map[chan Change]struct{})
	}
	h.listeners[scope][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners[scope], ch)
			if len(h.listeners[scope]) == 0 {
				delete(h.listeners, scope)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers c to every listener of c.Scope without blocking.
func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.listeners[c.Scope] {
		select {
		case ch <- c:
		default:
		}
	}
}

// Listeners reports how many listeners are attached to scope.
func (h *Hub) Listeners(scope string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[scope])
}
