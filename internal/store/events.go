package store

import "sync"

// EventKind names which list an Event concerns.
type EventKind string

// Event kinds.
const (
	EventPieces    EventKind = "pieces"
	EventGalleries EventKind = "galleries"
	EventReset     EventKind = "reset"
)

// Event reports a committed mutation. Subscribers re-read snapshots on
// receipt; the event carries no record data.
type Event struct {
	Kind EventKind
	Op   string // operation name, e.g. "add piece"
	ID   string // affected record ID, empty for list-wide operations
}

// subscriberBuffer is the channel capacity handed to each subscriber.
const subscriberBuffer = 16

// hub fans events out to subscribers without blocking the writer. A full
// subscriber channel drops the event.
type hub struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan Event
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan Event)}
}

func (h *hub) subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.next
	h.next++
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		close(ch)
		delete(h.subs, id)
	}
}
