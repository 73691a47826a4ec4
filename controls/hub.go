package controls

// EventType identifies a device event.
type EventType int

const (
	KeyDown EventType = iota
	KeyUp
	PointerMove
	TouchStart
	TouchMove
	TouchEnd
)

// Key is a logical key after device bindings are applied.
type Key string

const (
	KeyForward Key = "forward"
	KeyBack    Key = "back"
	KeyLeft    Key = "left"
	KeyRight   Key = "right"
	KeyJump    Key = "jump"
	KeyRun     Key = "run"
)

// Event is one device event in screen coordinates.
type Event struct {
	Type    EventType
	Key     Key
	X, Y    float64
	DX, DY  float64
	TouchID int
}

// Listener receives hub events.
type Listener func(Event)

// Hub fans device events out to the listeners of the active control source.
// It is used from the game loop goroutine only.
type Hub struct {
	listeners map[int]Listener
	order     []int
	next      int
	held      map[Key]bool
	width     float64
	height    float64
}

func NewHub() *Hub {
	return &Hub{listeners: make(map[int]Listener), held: make(map[Key]bool)}
}

// Subscribe registers l and returns a function that removes it.
func (h *Hub) Subscribe(l Listener) func() {
	id := h.next
	h.next++
	h.listeners[id] = l
	h.order = append(h.order, id)

	return func() {
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers e to every listener in subscription order.
func (h *Hub) Dispatch(e Event) {
	switch e.Type {
	case KeyDown:
		h.held[e.Key] = true
	case KeyUp:
		delete(h.held, e.Key)
	}

	ids := append([]int(nil), h.order...)
	for _, id := range ids {
		if l, ok := h.listeners[id]; ok {
			l(e)
		}
	}
}

// Held returns a copy of the keys down on the hub, whichever source was
// listening when they were pressed.
func (h *Hub) Held() map[Key]bool {
	held := make(map[Key]bool, len(h.held))
	for k := range h.held {
		held[k] = true
	}
	return held
}

// Listeners returns the number of subscribed listeners.
func (h *Hub) Listeners() int {
	return len(h.listeners)
}

// SetViewport records the screen size touch zones are laid out against.
func (h *Hub) SetViewport(width, height float64) {
	h.width, h.height = width, height
}

func (h *Hub) Viewport() (float64, float64) {
	return h.width, h.height
}

// KeyTransitions returns the KeyDown and KeyUp events that turn prev into cur,
// in a stable key order.
func KeyTransitions(prev, cur map[Key]bool) []Event {
	var out []Event
	for _, k := range allKeys {
		switch {
		case cur[k] && !prev[k]:
			out = append(out, Event{Type: KeyDown, Key: k})
		case !cur[k] && prev[k]:
			out = append(out, Event{Type: KeyUp, Key: k})
		}
	}
	return out
}

var allKeys = [...]Key{KeyForward, KeyBack, KeyLeft, KeyRight, KeyJump, KeyRun}
