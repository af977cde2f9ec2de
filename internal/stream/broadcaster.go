package stream

import (
	"sync"

	"github.com/harshivkrishna/automated-billing-system/internal/logger"
)

// Broadcaster fans encoded JPEG frames out to multiple stream clients. Slow
// clients skip frames instead of backpressuring the encoder.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[int]chan []byte
	nextID  int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[int]chan []byte)}
}

// Subscribe adds a client and returns a channel for receiving frames.
func (b *Broadcaster) Subscribe() (int, <-chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan []byte, 2) // Buffer 2 frames to avoid blocking
	b.clients[id] = ch

	logger.Debug("Stream", "Client #%d subscribed (total clients: %d)", id, len(b.clients))
	return id, ch
}

// Unsubscribe removes a client.
func (b *Broadcaster) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[id]; ok {
		close(ch)
		delete(b.clients, id)
		logger.Debug("Stream", "Client #%d unsubscribed (remaining clients: %d)", id, len(b.clients))
	}
}

// Publish sends one encoded frame to every client, skipping any whose channel
// is full.
func (b *Broadcaster) Publish(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, skip this frame for this client
		}
	}
}

// ClientCount returns the number of subscribed clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
