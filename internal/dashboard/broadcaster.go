package dashboard

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/harshivkrishna/automated-billing-system/internal/catalog"
	"github.com/harshivkrishna/automated-billing-system/internal/logger"
	"github.com/harshivkrishna/automated-billing-system/internal/metrics"
	"github.com/harshivkrishna/automated-billing-system/internal/session"
)

// ProductEntry is one row of the dashboard payload.
type ProductEntry struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Update is the dashboard payload pushed to every connected client.
type Update struct {
	Products []ProductEntry `json:"products"`
}

// Broadcaster joins session counts with the product catalog on a fixed
// cadence and fans the serialized payload out to SSE clients. It emits
// regardless of session state so late joiners and the final tally stay
// visible, and never suppresses unchanged payloads.
type Broadcaster struct {
	session  *session.Session
	products *catalog.Products
	metrics  *metrics.Metrics
	clk      clock.Clock
	interval time.Duration

	mu      sync.Mutex
	clients map[int]chan []byte
	nextID  int
	latest  []byte
	stop    chan struct{}
	stopped bool
}

// NewBroadcaster creates a dashboard broadcaster. A non-positive interval
// falls back to the default config's cadence.
func NewBroadcaster(sess *session.Session, products *catalog.Products, m *metrics.Metrics, clk clock.Clock, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = DefaultConfig().BroadcastInterval
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Broadcaster{
		session:  sess,
		products: products,
		metrics:  m,
		clk:      clk,
		interval: interval,
		clients:  make(map[int]chan []byte),
		stop:     make(chan struct{}),
	}
}

// Subscribe adds a client and returns a channel for receiving payloads. The
// latest payload, when one exists, is delivered immediately so late joiners
// see the current tally without waiting a full cadence.
func (b *Broadcaster) Subscribe() (int, <-chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan []byte, 2) // Buffer 2 payloads to avoid blocking
	b.clients[id] = ch
	if b.latest != nil {
		ch <- b.latest
	}
	b.metrics.DashboardClients.Store(uint64(len(b.clients)))

	logger.Debug("Dashboard", "Client #%d subscribed (total clients: %d)", id, len(b.clients))
	return id, ch
}

// Unsubscribe removes a client.
func (b *Broadcaster) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[id]; ok {
		close(ch)
		delete(b.clients, id)
		b.metrics.DashboardClients.Store(uint64(len(b.clients)))
		logger.Debug("Dashboard", "Client #%d unsubscribed (remaining clients: %d)", id, len(b.clients))
	}
}

// Start begins the broadcast loop.
func (b *Broadcaster) Start() {
	go b.run()
}

// Stop halts the broadcaster.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	if !b.stopped {
		close(b.stop)
		b.stopped = true
	}
	b.mu.Unlock()
}

func (b *Broadcaster) run() {
	logger.Info("Dashboard", "Starting broadcast loop (interval=%v)", b.interval)
	ticker := b.clk.Ticker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			payload, err := b.BuildPayload()
			if err != nil {
				logger.Error("Dashboard", "Payload marshal error: %v", err)
				continue
			}
			b.broadcast(payload)
		}
	}
}

// BuildPayload serializes the current tally joined with the product catalog.
// Entries are ordered by name so the payload is stable across ticks.
func (b *Broadcaster) BuildPayload() ([]byte, error) {
	counts := b.session.Snapshot()

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]ProductEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, ProductEntry{
			Name:     name,
			Quantity: counts[name],
			Price:    b.products.Price(name),
		})
	}
	return json.Marshal(Update{Products: entries})
}

func (b *Broadcaster) broadcast(payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = payload
	for _, ch := range b.clients {
		select {
		case ch <- payload:
		default:
			// Client too slow, skip this payload for this client
		}
	}
	b.metrics.BroadcastsSent.Add(1)
}

// Interval returns the broadcast cadence.
func (b *Broadcaster) Interval() time.Duration {
	return b.interval
}
