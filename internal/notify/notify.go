// Package notify provides topic-based publish/subscribe for event fan-out
// to currently-active subscribers. There is no replay and no delivery
// guarantee beyond best effort: a subscriber only sees events published
// after its subscription starts.
package notify

import (
	"context"
)

// TopicBookAdded carries every newly added book.
const TopicBookAdded = "book added"

// Notifier publishes payloads to named topics and delivers them, in publish
// order, to every active subscriber of that topic.
type Notifier interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe returns a channel of payloads for the topic. The channel is
	// closed and the subscription removed when ctx is canceled.
	Subscribe(ctx context.Context, topic string) (<-chan []byte, error)
}
