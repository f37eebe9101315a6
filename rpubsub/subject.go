package rpubsub

import (
	"slices"
	"sync"

	"github.com/gordian-engine/rill"
)

// Subject is a passthrough [rill.Producer] driven by imperative calls
// to [*Subject.Send], [*Subject.Complete], and [*Subject.Fail].
//
// A value sent while a subscriber has no outstanding demand
// is dropped for that subscriber.
// Once the subject has ended, new subscribers
// immediately receive the same terminal event.
//
// Like [*Stream.Publish], the sending methods
// must not be called concurrently with each other.
// Subscribing, requesting, and canceling are safe from any goroutine.
type Subject[T any] struct {
	mu   sync.Mutex
	subs []*subjectSubscription[T]
	term *rill.Terminal
}

// NewSubject returns a subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return new(Subject[T])
}

func (s *Subject[T]) Subscribe(c rill.Consumer[T]) rill.Subscription {
	sub := &subjectSubscription[T]{s: s, consumer: c}

	s.mu.Lock()
	term := s.term
	if term == nil {
		s.subs = append(s.subs, sub)
	} else {
		sub.done = true
	}
	s.mu.Unlock()

	c.ReceiveSubscription(sub)

	if term != nil {
		c.ReceiveTerminal(*term)
	}

	return sub
}

// Send delivers v to every subscriber with outstanding demand.
func (s *Subject[T]) Send(v T) error {
	s.mu.Lock()
	if s.term != nil {
		err := TerminatedError{Terminal: *s.term}
		s.mu.Unlock()
		return err
	}

	var targets []*subjectSubscription[T]
	for _, sub := range s.subs {
		if sub.demand > 0 {
			sub.demand = sub.demand.Decrement()
			targets = append(targets, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range targets {
		more := sub.consumer.ReceiveItem(v)
		if more > 0 {
			sub.Request(more)
		}
	}

	return nil
}

// Complete ends the subject normally.
func (s *Subject[T]) Complete() error {
	return s.terminate(rill.Completed())
}

// Fail ends the subject with err.
func (s *Subject[T]) Fail(err error) error {
	return s.terminate(rill.Failed(err))
}

func (s *Subject[T]) terminate(t rill.Terminal) error {
	s.mu.Lock()
	if s.term != nil {
		err := TerminatedError{Terminal: *s.term}
		s.mu.Unlock()
		return err
	}
	s.term = &t
	subs := s.subs
	s.subs = nil
	for _, sub := range subs {
		sub.done = true
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.consumer.ReceiveTerminal(t)
	}

	return nil
}

// SubscriberCount returns the number of active subscriptions.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

type subjectSubscription[T any] struct {
	s        *Subject[T]
	consumer rill.Consumer[T]

	// Guarded by s.mu.
	demand rill.Demand
	done   bool
}

func (sub *subjectSubscription[T]) Request(n rill.Demand) {
	if n == 0 {
		return
	}

	sub.s.mu.Lock()
	defer sub.s.mu.Unlock()
	if sub.done {
		return
	}
	sub.demand = sub.demand.Add(n)
}

func (sub *subjectSubscription[T]) Cancel() {
	sub.s.mu.Lock()
	defer sub.s.mu.Unlock()
	if sub.done {
		return
	}
	sub.done = true
	sub.s.subs = slices.DeleteFunc(sub.s.subs, func(x *subjectSubscription[T]) bool {
		return x == sub
	})
}
