package notify

import (
	"context"
	"sync"
)

// subscriberBuffer bounds how far a subscriber may fall behind before
// events are dropped for it.
const subscriberBuffer = 64

type subscriber struct {
	ch chan []byte
}

// Bus is an in-process Notifier. Delivery is per-subscriber buffered: a
// subscriber that stops draining its channel loses events rather than
// blocking publishers.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]*subscriber
}

var _ Notifier = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]*subscriber)}
}

func (b *Bus) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs[topic] {
		select {
		case s.ch <- payload:
		default:
			// Subscriber buffer full; drop for this subscriber.
		}
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	s := &subscriber{ch: make(chan []byte, subscriberBuffer)}

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]*subscriber)
	}
	id := b.nextID
	b.nextID++
	b.subs[topic][id] = s
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[topic], id)
		b.mu.Unlock()
		close(s.ch)
	}()

	return s.ch, nil
}
