package nodenet

// EventType identifies a kind of animation notification.
type EventType uint8

const (
	EventCanvasCreated      EventType = iota // fires once when the surface is acquired
	EventCanvasResized                       // fires after a backing-store resize; Width/Height are CSS pixels
	EventPerformanceWarning                  // fires when the measured frame rate drops below the threshold
)

// Event carries notification data. Fields are valid per EventType as
// documented on the constants.
type Event struct {
	Type   EventType
	Width  float64
	Height float64
	FPS    float64
}

type busHandler struct {
	id uint32
	fn func(Event)
}

// Bus is a fire-and-forget in-process event bus. Publish never blocks on or
// waits for consumers; handlers run synchronously in registration order.
// Single-threaded like everything else in this package.
type Bus struct {
	handlers []busHandler
	nextID   uint32
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscription allows removing a registered handler.
type Subscription struct {
	id  uint32
	bus *Bus
}

// Subscribe registers fn for all events and returns a removable subscription.
func (b *Bus) Subscribe(fn func(Event)) Subscription {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, busHandler{id: id, fn: fn})
	return Subscription{id: id, bus: b}
}

// Remove unregisters the subscription. Safe to call more than once; removing
// an already-removed subscription is a no-op.
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	h := s.bus.handlers
	for i := range h {
		if h[i].id == s.id {
			copy(h[i:], h[i+1:])
			h[len(h)-1] = busHandler{}
			s.bus.handlers = h[:len(h)-1]
			return
		}
	}
}

// Publish delivers evt to every subscribed handler.
func (b *Bus) Publish(evt Event) {
	for _, h := range b.handlers {
		h.fn(evt)
	}
}

// HandlerCount returns the number of registered handlers.
func (b *Bus) HandlerCount() int {
	return len(b.handlers)
}
