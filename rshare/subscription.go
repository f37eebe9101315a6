package rshare

import (
	"slices"

	"github.com/gordian-engine/rill"
)

// subscription is one downstream subscriber's view of a hub.
// Every field other than h and consumer is guarded by h.mu.
type subscription[T any] struct {
	h        *Hub[T]
	consumer rill.Consumer[T]

	// Items not yet delivered, replayed ones first.
	pending []T
	demand  rill.Demand

	// Position in h.subs, valid while registered.
	slot       uint
	registered bool

	// Set while some goroutine is running the delivery loop in drain.
	draining bool

	// Set once canceled or once the terminal event has been handed off.
	done bool
}

func (s *subscription[T]) Request(n rill.Demand) {
	if n == 0 {
		return
	}

	s.h.mu.Lock()
	if s.done {
		s.h.mu.Unlock()
		return
	}
	s.demand = s.demand.Add(n)
	s.h.mu.Unlock()

	s.drain()
}

func (s *subscription[T]) Cancel() {
	s.h.mu.Lock()
	defer s.h.mu.Unlock()

	if s.done {
		return
	}
	s.finish()
}

// finish marks s done and removes it from the hub.
// It must be called with s.h.mu held.
func (s *subscription[T]) finish() {
	s.done = true
	s.pending = nil
	if s.registered {
		s.h.subs.Remove(s.slot)
		s.registered = false
		s.h.metrics.subscribers(s.h.subs.Len())
	}
}

// drain delivers pending items up to the outstanding demand,
// followed by the hub's terminal event once nothing is pending.
//
// Only one goroutine runs the delivery loop for s at a time.
// Any other caller, including a consumer requesting more
// from inside ReceiveItem, only updates state under the lock
// and leaves the delivery to the loop already running.
func (s *subscription[T]) drain() {
	h := s.h

	h.mu.Lock()
	if s.draining || s.done {
		h.mu.Unlock()
		return
	}
	s.draining = true

	for !s.done {
		if len(s.pending) > 0 && s.demand > 0 {
			v := s.pending[0]
			var zero T
			s.pending[0] = zero
			s.pending = s.pending[1:]
			s.demand = s.demand.Decrement()
			h.mu.Unlock()

			more := s.consumer.ReceiveItem(v)
			h.metrics.delivered()

			h.mu.Lock()
			if !s.done {
				s.demand = s.demand.Add(more)
			}
			continue
		}

		if len(s.pending) == 0 && h.term != nil {
			t := *h.term
			s.finish()
			s.draining = false
			h.mu.Unlock()

			s.consumer.ReceiveTerminal(t)
			return
		}

		// Out of demand: keep at most capacity items waiting.
		if h.capacity > 0 && len(s.pending) > h.capacity {
			n := len(s.pending) - h.capacity
			s.pending = slices.Delete(s.pending, 0, n)
			h.metrics.dropped(n)
		} else if h.capacity == 0 && len(s.pending) > 0 {
			h.metrics.dropped(len(s.pending))
			s.pending = s.pending[:0]
		}
		break
	}

	s.draining = false
	h.mu.Unlock()
}
