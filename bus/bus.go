package bus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
)

var (
	// ErrEventLimit is returned when publishing would exceed the per-run
	// event cap. The event is dropped and the cascade continues without it.
	ErrEventLimit = errors.New("event limit reached")

	// ErrDepthLimit is returned when an event's causal depth exceeds the
	// configured maximum, which indicates a reaction cycle.
	ErrDepthLimit = errors.New("event depth limit reached")
)

// Handler consumes one delivered event. Handlers may publish further events
// through the same bus; those are enqueued and dispatched after the current
// event's remaining subscribers.
type Handler func(core.Event)

type subscription struct {
	subscriberID string
	handler      Handler
}

// Options configures cascade guards and logging for a Bus.
type Options struct {
	// MaxEvents caps the number of events accepted per run. Zero means the
	// default of 256.
	MaxEvents int

	// MaxDepth caps the causal distance from the initial event. Zero means
	// the default of 16.
	MaxDepth int

	// Logger receives dispatch diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Bus is a synchronous publish/subscribe dispatcher with an ordered,
// append-only event history. Handlers for one event type run in registration
// order; delivery is breadth-first across the cascade. Bus is safe for
// concurrent use, though within one run all dispatch happens on the
// publishing goroutine.
type Bus struct {
	mu            sync.Mutex
	subscriptions map[core.EventType][]subscription
	history       []core.Event
	queue         []core.Event
	draining      bool
	currentDepth  int
	maxEvents     int
	maxDepth      int
	logger        logging.Logger
}

// New constructs an empty bus with the given guard configuration.
func New(optFns ...func(o *Options)) *Bus {
	opts := Options{
		MaxEvents: 256,
		MaxDepth:  16,
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxEvents <= 0 {
		opts.MaxEvents = 256
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 16
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Bus{
		subscriptions: make(map[core.EventType][]subscription),
		maxEvents:     opts.MaxEvents,
		maxDepth:      opts.MaxDepth,
		logger:        opts.Logger,
	}
}

// Subscribe registers a handler for an event type on behalf of subscriberID.
// Multiple handlers per type are invoked in registration order. The
// subscriber id is used for targeted delivery and self-event suppression.
func (b *Bus) Subscribe(eventType core.EventType, subscriberID string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{
		subscriberID: subscriberID,
		handler:      handler,
	})
}

// Publish appends the event to the history and delivers it to every matching
// subscriber. Nested publishes from handlers are enqueued and processed in
// FIFO order once the current event's subscribers have all run. When a guard
// trips the event is dropped with a warning and the matching sentinel error
// is returned; the rest of the cascade proceeds.
func (b *Bus) Publish(event core.Event) error {
	b.mu.Lock()

	if len(b.history) >= b.maxEvents {
		b.mu.Unlock()
		b.logger.Warn("event dropped: run event cap reached", "event_type", event.Type, "source", event.Source, "cap", b.maxEvents)
		return fmt.Errorf("publish %s from %s: %w", event.Type, event.Source, ErrEventLimit)
	}

	if event.Depth == 0 && b.draining {
		event.Depth = b.currentDepth + 1
	}
	if event.Depth > b.maxDepth {
		b.mu.Unlock()
		b.logger.Warn("event dropped: causal depth cap reached", "event_type", event.Type, "source", event.Source, "depth", event.Depth)
		return fmt.Errorf("publish %s from %s: %w", event.Type, event.Source, ErrDepthLimit)
	}

	b.history = append(b.history, event)
	b.queue = append(b.queue, event)

	if b.draining {
		// A handler published this event; the outer drain loop picks it up.
		b.mu.Unlock()
		return nil
	}

	b.draining = true
	b.mu.Unlock()

	b.drain()
	return nil
}

// drain dispatches queued events until quiescence.
func (b *Bus) drain() {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.currentDepth = 0
			b.mu.Unlock()
			return
		}
		event := b.queue[0]
		b.queue = b.queue[1:]
		b.currentDepth = event.Depth
		subs := make([]subscription, len(b.subscriptions[event.Type]))
		copy(subs, b.subscriptions[event.Type])
		b.mu.Unlock()

		for _, sub := range subs {
			if !event.DeliverableTo(sub.subscriberID) {
				continue
			}
			b.dispatch(sub, event)
		}
	}
}

// dispatch invokes one handler, recovering panics so delivery to sibling
// subscribers continues.
func (b *Bus) dispatch(sub subscription, event core.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "subscriber", sub.subscriberID, "event_type", event.Type, "panic", fmt.Sprintf("%v", r))
		}
	}()
	sub.handler(event)
}

// History returns a copy of the append-only event history in true causal
// publish order.
func (b *Bus) History() []core.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]core.Event, len(b.history))
	copy(out, b.history)
	return out
}

// Len returns the number of events published so far.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.history)
}

// Reset clears the history and any queued events. Subscriptions survive.
// Callers invoke this between unrelated runs so one task's events never leak
// into the next.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
	b.queue = nil
	b.currentDepth = 0
}
