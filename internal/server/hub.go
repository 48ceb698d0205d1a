package server

import (
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
)

// hubBuffer is the number of pending messages a session may hold before
// further broadcasts to it are dropped.
const hubBuffer = 8

// Hub fans messages out to every connected session.
type Hub struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan tea.Msg
	closed bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan tea.Msg)}
}

// Subscribe registers a session and returns its id and receive channel.
// Subscribing to a closed hub returns an already closed channel.
func (h *Hub) Subscribe() (int, <-chan tea.Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan tea.Msg, hubBuffer)
	h.next++
	if h.closed {
		close(ch)
		return h.next, ch
	}
	h.subs[h.next] = ch
	return h.next, ch
}

// Unsubscribe removes a session and closes its channel.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Broadcast delivers msg to every session without blocking. A session whose
// buffer is full misses the message.
func (h *Hub) Broadcast(msg tea.Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			log.Debug("dropping hub message", "session", id)
		}
	}
}

// Len returns the number of subscribed sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close unsubscribes every session.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.closed = true
}

type notifyingStore struct {
	prefs.Store
	notify func()
}

// NotifyingStore wraps s so that every successful Set calls notify.
func NotifyingStore(s prefs.Store, notify func()) prefs.Store {
	return &notifyingStore{Store: s, notify: notify}
}

func (n *notifyingStore) Set(key, value string) error {
	if err := n.Store.Set(key, value); err != nil {
		return err
	}
	if n.notify != nil {
		n.notify()
	}
	return nil
}
