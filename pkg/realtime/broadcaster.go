package realtime

import "sync"

// Event names a kind of update; subscribers re-render the matching fragment.
type Event string

// subscriberBuffer bounds how far a slow subscriber may fall behind.
const subscriberBuffer = 16

// Subscription is one SSE listener. Receive from C until it is closed.
type Subscription struct {
	C  <-chan Event
	ch chan Event
	b  *Broadcaster
}

// Close removes the subscription and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.b.remove(s)
}

// Broadcaster publishes lightweight events to SSE subscribers.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscriber. Subscribing to a closed broadcaster
// returns an already closed subscription.
func (b *Broadcaster) Subscribe() *Subscription {
	ch := make(chan Event, subscriberBuffer)
	sub := &Subscription{C: ch, ch: ch, b: b}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

func (b *Broadcaster) remove(sub *Subscription) {
	b.mu.Lock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.mu.Unlock()
}

// Publish delivers an event to all subscribers without blocking.
func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	for sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			// Lagging subscriber; the next event re-renders from current state.
		}
	}
	b.mu.Unlock()
}

// Len returns the number of live subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscription and rejects new ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
}
