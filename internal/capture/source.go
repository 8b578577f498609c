package capture

import "sync"

const listenerBufferSize = 16

// Listener receives controls pressed while it is registered.
type Listener interface {
	Controls() <-chan Control
	// Close unregisters the listener. It is safe to call more than once.
	Close()
}

// Source is the global "any button pressed" stream.
type Source interface {
	Listen() Listener
}

// Hub is a Source fed by an input backend through Press.
type Hub struct {
	mu        sync.Mutex
	listeners map[*hubListener]struct{}
}

// NewHub creates a hub with no listeners.
func NewHub() *Hub {
	return &Hub{listeners: make(map[*hubListener]struct{})}
}

// Listen registers a new listener.
func (h *Hub) Listen() Listener {
	l := &hubListener{hub: h, ch: make(chan Control, listenerBufferSize)}
	h.mu.Lock()
	h.listeners[l] = struct{}{}
	h.mu.Unlock()
	return l
}

// Press delivers c to every listener (non-blocking, dropped if a listener's
// buffer is full). It reports whether anyone was listening.
func (h *Hub) Press(c Control) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for l := range h.listeners {
		select {
		case l.ch <- c:
		default:
		}
	}
	return len(h.listeners) > 0
}

// Listeners returns the number of registered listeners.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

type hubListener struct {
	hub  *Hub
	ch   chan Control
	once sync.Once
}

func (l *hubListener) Controls() <-chan Control { return l.ch }

func (l *hubListener) Close() {
	l.once.Do(func() {
		l.hub.mu.Lock()
		delete(l.hub.listeners, l)
		l.hub.mu.Unlock()
	})
}
