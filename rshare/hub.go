package rshare

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/gordian-engine/rill"
	"github.com/gordian-engine/rill/internal/rslot"
	"github.com/gordian-engine/rill/internal/rtrace"
)

// State is the lifecycle stage of a [Hub].
type State uint8

const (
	// Idle hubs have never had a subscriber,
	// and have not yet subscribed upstream.
	Idle State = iota

	// Active hubs hold their single upstream subscription.
	Active

	// Terminated hubs have received the upstream's terminal event.
	// Their replay buffer is frozen and they never resubscribe.
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Hub is a [rill.Producer] that multicasts a single upstream producer
// to any number of downstream subscribers,
// replaying the most recent items to each new subscriber
// before any live items.
//
// The hub subscribes upstream once, lazily, on its first downstream subscription.
// Canceling a downstream subscription never affects the upstream subscription
// or any other downstream subscription.
//
// All hub state is guarded by a single mutex.
// Items and terminal events are delivered to consumers
// with that mutex released, so consumers may call back into the hub
// (requesting more, canceling, or subscribing) from within a delivery.
type Hub[T any] struct {
	log      *slog.Logger
	upstream rill.Producer[T]
	capacity int
	metrics  *Metrics
	tracer   rtrace.Tracer

	mu     sync.Mutex
	state  State
	replay []T
	term   *rill.Terminal
	subs   rslot.Set[*subscription[T]]

	// Spans the upstream subscription, from connecting to the terminal event.
	span rtrace.Span
}

// NewHub returns an idle hub over upstream.
func NewHub[T any](log *slog.Logger, upstream rill.Producer[T], cfg Config) *Hub[T] {
	if upstream == nil {
		panic("BUG: NewHub called with nil upstream")
	}

	capacity := cfg.Capacity
	if capacity < 0 {
		capacity = UnboundedCapacity
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = rtrace.NopTracerProvider()
	}

	return &Hub[T]{
		log:      log,
		upstream: upstream,
		capacity: capacity,
		metrics:  cfg.Metrics,
		tracer:   tp.Tracer("github.com/gordian-engine/rill/rshare"),
	}
}

// ShareReplay is shorthand for [NewHub] with only a capacity set.
func ShareReplay[T any](log *slog.Logger, upstream rill.Producer[T], capacity int) *Hub[T] {
	return NewHub(log, upstream, Config{Capacity: capacity})
}

// Subscribe attaches c to the hub.
//
// The new subscription starts with a copy of the replay buffer
// and the terminal event, if any.
// Taking that copy and joining the live subscriber set
// happen in one critical section,
// so no live item can slip in ahead of the replayed ones or be missed.
func (h *Hub[T]) Subscribe(c rill.Consumer[T]) rill.Subscription {
	s := &subscription[T]{h: h, consumer: c}

	h.mu.Lock()
	s.pending = slices.Clone(h.replay)
	replayed := len(s.pending)
	if h.state != Terminated {
		s.slot = h.subs.Add(s)
		s.registered = true
		h.metrics.subscribers(h.subs.Len())
	}
	connect := h.state == Idle
	if connect {
		h.state = Active
		_, h.span = h.tracer.Start(
			context.Background(),
			"share replay upstream",
			rtrace.WithAttributes(rtrace.CapacityAttr(h.capacity)),
		)
	}
	span := h.span
	h.mu.Unlock()

	if span != nil {
		span.AddEvent(
			"subscribe",
			rtrace.WithAttributes(rtrace.ReplayedAttr(replayed)),
		)
	}

	c.ReceiveSubscription(s)

	if connect {
		h.log.Debug("Subscribing to upstream")
		h.upstream.Subscribe(upstreamConsumer[T]{h: h})
	}

	// Deliver anything already allowed,
	// including an immediate terminal event for an empty replay.
	s.drain()

	return s
}

// State returns the hub's current lifecycle stage.
func (h *Hub[T]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Buffered returns a copy of the current replay buffer.
func (h *Hub[T]) Buffered() []T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.replay)
}

// SubscriberCount returns the number of subscriptions receiving live items.
func (h *Hub[T]) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.subs.Len()
}

func (h *Hub[T]) receive(v T) {
	h.mu.Lock()
	if h.term != nil {
		h.mu.Unlock()
		return
	}

	if h.capacity != 0 {
		h.replay = append(h.replay, v)
		if h.capacity > 0 && len(h.replay) > h.capacity {
			h.replay = slices.Delete(h.replay, 0, len(h.replay)-h.capacity)
		}
	}

	targets := h.subs.AppendTo(nil)
	for _, s := range targets {
		s.pending = append(s.pending, v)
	}
	h.mu.Unlock()

	h.metrics.received()

	for _, s := range targets {
		s.drain()
	}
}

func (h *Hub[T]) terminate(t rill.Terminal) {
	h.mu.Lock()
	if h.term != nil {
		h.mu.Unlock()
		return
	}
	h.term = &t
	h.state = Terminated
	targets := h.subs.AppendTo(nil)
	span := h.span
	h.span = nil
	h.mu.Unlock()

	if t.IsFailed() {
		h.log.Info("Upstream failed", "err", t.Err)
	} else {
		h.log.Debug("Upstream completed")
	}

	if span != nil {
		attrs := []rtrace.KeyValueAttr{rtrace.TerminalAttr(t)}
		if t.IsFailed() {
			rtrace.SpanError(span, t.Err)
			attrs = append(attrs, rtrace.ErrorAttr(t.Err))
		}
		span.AddEvent("upstream terminated", rtrace.WithAttributes(attrs...))
		span.End()
	}

	for _, s := range targets {
		s.drain()
	}
}

// upstreamConsumer is the hub's single consumer of its upstream.
type upstreamConsumer[T any] struct {
	h *Hub[T]
}

func (u upstreamConsumer[T]) ReceiveSubscription(s rill.Subscription) {
	s.Request(rill.Unbounded)
}

func (u upstreamConsumer[T]) ReceiveItem(v T) rill.Demand {
	u.h.receive(v)
	return 0
}

func (u upstreamConsumer[T]) ReceiveTerminal(t rill.Terminal) {
	u.h.terminate(t)
}
