package messaging

import (
	"context"
	"log/slog"
	"sync"

	"pixmart/internal/shared/events"
)

// Bus is the event transport between contexts. Current implementation is
// in-process publish/subscribe while runtime wiring is finalized for an
// external broker; delivery is at-least-once from the consumer's point of
// view because publishers may retry.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]func(context.Context, events.Envelope)
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]func(context.Context, events.Envelope)),
		logger:      logger,
	}
}

// Subscribe registers a handler for a topic. Handlers run synchronously on
// the publisher's goroutine; they must not block on the publisher's stores.
func (b *Bus) Subscribe(topic string, handler func(context.Context, events.Envelope)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], handler)
}

func (b *Bus) Publish(ctx context.Context, topic string, event events.Envelope) error {
	b.mu.RLock()
	subs := append(([]func(context.Context, events.Envelope))(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, handler := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		handler(ctx, event)
	}

	b.logger.Info("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}
