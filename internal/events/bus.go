package events

import "sync"

// subscriberBuffer is the channel depth given to each subscriber. Publishers
// drop events for subscribers whose buffer is full rather than block.
const subscriberBuffer = 64

// Bus is an in-process fan-out of Events. The zero value is not usable; call
// NewBus.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. Cancel is idempotent and closes the channel after unregistering,
// so a draining range loop terminates.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish delivers event to every current subscriber. Delivery to a
// subscriber with a full buffer is skipped.
func (b *Bus) Publish(event Event) {
	if b == nil || event == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close unregisters and closes every subscriber channel. Publish and
// Subscribe become no-ops afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
