package follow

import "sync"

// Action is the kind of follow-state change an Event announces.
type Action string

const (
	// ActionFollow announces a confirmed follow.
	ActionFollow Action = "follow"

	// ActionUnfollow announces a confirmed unfollow.
	ActionUnfollow Action = "unfollow"
)

// Event describes a follow-state change so sibling views can react without
// refetching.
type Event struct {
	Action     Action
	FollowerID int64
	FolloweeID int64
}

// Bus is a minimal in-process publish/subscribe channel for follow events.
// Delivery is synchronous on the publishing goroutine.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers fn for future events and returns an unsubscribe func.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers e to every current subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
