package rpubsub

import (
	"sync"

	"github.com/gordian-engine/rill"
)

// Sequence is a [rill.Producer] of a fixed list of values,
// followed by [rill.Completed].
//
// Values are delivered synchronously from within
// [rill.Subscription.Request] on the requesting goroutine.
// Demand requested re-entrantly from inside ReceiveItem
// is served by the outer call after the current delivery returns,
// so the call stack does not grow with the number of items.
type Sequence[T any] struct {
	items []T
}

// NewSequence returns a producer of the given items.
// The sequence retains the items slice, so the caller must not modify it.
func NewSequence[T any](items ...T) *Sequence[T] {
	return &Sequence[T]{items: items}
}

func (p *Sequence[T]) Subscribe(c rill.Consumer[T]) rill.Subscription {
	s := &sequenceSubscription[T]{
		items:    p.items,
		consumer: c,
	}

	c.ReceiveSubscription(s)

	if len(p.items) == 0 {
		s.mu.Lock()
		s.emit()
	}

	return s
}

type sequenceSubscription[T any] struct {
	items    []T
	consumer rill.Consumer[T]

	mu       sync.Mutex
	next     int
	demand   rill.Demand
	emitting bool
	done     bool
}

func (s *sequenceSubscription[T]) Request(n rill.Demand) {
	if n == 0 {
		return
	}

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.demand = s.demand.Add(n)
	s.emit()
}

// emit must be called with s.mu held, and returns with it released.
func (s *sequenceSubscription[T]) emit() {
	if s.emitting {
		// The delivery loop further up the stack will observe the new demand.
		s.mu.Unlock()
		return
	}
	s.emitting = true

	for {
		if s.done {
			s.emitting = false
			s.mu.Unlock()
			return
		}

		if s.next == len(s.items) {
			s.done = true
			s.emitting = false
			s.mu.Unlock()
			s.consumer.ReceiveTerminal(rill.Completed())
			return
		}

		if s.demand == 0 {
			s.emitting = false
			s.mu.Unlock()
			return
		}

		s.demand = s.demand.Decrement()
		v := s.items[s.next]
		s.next++
		s.mu.Unlock()

		more := s.consumer.ReceiveItem(v)

		s.mu.Lock()
		if !s.done {
			s.demand = s.demand.Add(more)
		}
	}
}

func (s *sequenceSubscription[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
}
