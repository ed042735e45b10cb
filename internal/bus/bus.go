package bus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/missaelcorm/notas-service/pkg/logger"
)

var ErrIntakeClosed = errors.New("bus intake closed")

// Message is a topic event with a payload and flat string attributes
// usable for downstream filtering.
type Message struct {
	Topic      string
	Subject    string
	Payload    []byte
	Attributes map[string]string
	Timestamp  time.Time

	attempts int
}

// Attempts reports how many delivery attempts the message has consumed.
func (m Message) Attempts() int { return m.attempts }

// Handler consumes a delivered message. A non-nil error triggers a
// redelivery until the attempt budget is exhausted.
type Handler func(ctx context.Context, msg Message) error

// Bus is an in-process topic bus with a background broker. Delivery is
// at-least-once: failed handlers see the message again, and messages
// that exhaust their attempts land on the dead-letter queue.
type Bus struct {
	mu           sync.Mutex
	backlog      []Message
	subscribers  map[string][]Handler
	deadLetters  []Message
	notify       chan struct{}
	shuttingDown atomic.Bool
	done         chan struct{}

	maxAttempts int
	log         *logger.Logger

	published atomic.Uint64
	delivered atomic.Uint64
}

// New creates a Bus. maxAttempts bounds redeliveries per subscriber.
func New(maxAttempts int, log *logger.Logger) *Bus {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Bus{
		subscribers: make(map[string][]Handler),
		notify:      make(chan struct{}, 1),
		done:        make(chan struct{}),
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Subscribe registers a handler for a topic. Must be called before Start.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], h)
}

// Publish appends a message to the backlog and notifies the broker.
func (b *Bus) Publish(msg Message) error {
	if b.shuttingDown.Load() {
		return ErrIntakeClosed
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	b.published.Add(1)
	b.mu.Lock()
	b.backlog = append(b.backlog, msg)
	b.mu.Unlock()
	select {
	case b.notify <- struct{}{}:
	default:
	}
	return nil
}

// Start runs the broker loop until ctx is cancelled.
func (b *Bus) Start(ctx context.Context) {
	go b.broker(ctx)
}

func (b *Bus) broker(ctx context.Context) {
	defer close(b.done)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		b.flushOnce(ctx)
		select {
		case <-ctx.Done():
			b.shuttingDown.Store(true)
			b.flushOnce(context.Background())
			return
		case <-b.notify:
		case <-ticker.C:
		}
	}
}

func (b *Bus) flushOnce(ctx context.Context) {
	for {
		b.mu.Lock()
		if len(b.backlog) == 0 {
			b.mu.Unlock()
			return
		}
		msg := b.backlog[0]
		b.backlog = b.backlog[1:]
		handlers := b.subscribers[msg.Topic]
		b.mu.Unlock()

		b.deliver(ctx, msg, handlers)
	}
}

func (b *Bus) deliver(ctx context.Context, msg Message, handlers []Handler) {
	if len(handlers) == 0 {
		return
	}
	msg.attempts++

	var failed bool
	for _, h := range handlers {
		if err := h(ctx, msg); err != nil {
			failed = true
			if b.log != nil {
				b.log.WithField("topic", msg.Topic).
					WithField("attempt", msg.attempts).
					WithError(err).Warn("message delivery failed")
			}
		}
	}

	if !failed {
		b.delivered.Add(1)
		return
	}

	if msg.attempts >= b.maxAttempts {
		b.mu.Lock()
		b.deadLetters = append(b.deadLetters, msg)
		b.mu.Unlock()
		if b.log != nil {
			b.log.WithField("topic", msg.Topic).Error("message moved to dead-letter queue")
		}
		return
	}

	b.mu.Lock()
	b.backlog = append(b.backlog, msg)
	b.mu.Unlock()
}

// DeadLetters returns a copy of the dead-letter queue.
func (b *Bus) DeadLetters() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.deadLetters))
	copy(out, b.deadLetters)
	return out
}

// BacklogSize returns the number of messages awaiting delivery.
func (b *Bus) BacklogSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.backlog)
}

// Metrics returns published and delivered counters.
func (b *Bus) Metrics() (published, delivered uint64) {
	return b.published.Load(), b.delivered.Load()
}

// Drain blocks until the broker loop has exited (after ctx cancellation).
func (b *Bus) Drain() { <-b.done }
