package rsink

import (
	"sync"

	"github.com/gordian-engine/rill"
)

// Sink is a [rill.Consumer] with unbounded demand
// that passes every item and the terminal event to callbacks.
type Sink[T any] struct {
	receiveItem     func(T)
	receiveTerminal func(rill.Terminal)

	mu  sync.Mutex
	sub rill.Subscription
}

// NewSink subscribes a new Sink to p and returns it.
// A nil receiveTerminal ignores the terminal event.
func NewSink[T any](
	p rill.Producer[T],
	receiveTerminal func(rill.Terminal),
	receiveItem func(T),
) *Sink[T] {
	s := &Sink[T]{
		receiveItem:     receiveItem,
		receiveTerminal: receiveTerminal,
	}
	p.Subscribe(s)
	return s
}

func (s *Sink[T]) ReceiveSubscription(sub rill.Subscription) {
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	sub.Request(rill.Unbounded)
}

func (s *Sink[T]) ReceiveItem(item T) rill.Demand {
	s.receiveItem(item)
	return 0
}

func (s *Sink[T]) ReceiveTerminal(t rill.Terminal) {
	s.mu.Lock()
	s.sub = nil
	s.mu.Unlock()

	if s.receiveTerminal != nil {
		s.receiveTerminal(t)
	}
}

// Cancel cancels the underlying subscription.
// Calling Cancel more than once is harmless.
func (s *Sink[T]) Cancel() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}
