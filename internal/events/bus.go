package events

import "time"

// Handler is called synchronously for every published event
type Handler func(Event)

// Bus fans events out to subscribed handlers on the caller's goroutine.
// Like the stores, it is meant for a single logical thread and does no
// locking.
type Bus struct {
	handlers map[int]Handler
	nextID   int
	seq      int64
	clock    func() time.Time
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
		clock:    time.Now,
	}
}

// Subscribe registers h and returns a function that removes it
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	return func() { delete(b.handlers, id) }
}

// Publish stamps the event and hands it to every handler in subscription order
func (b *Bus) Publish(event Event) {
	b.seq++
	event.SequenceID = b.seq
	if event.Timestamp.IsZero() {
		event.Timestamp = b.clock()
	}

	for id := 0; id < b.nextID; id++ {
		if h, ok := b.handlers[id]; ok {
			h(event)
		}
	}
}
