package rpubsub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gordian-engine/rill"
)

// StreamSource is a [rill.Producer] that reads a [Stream].
//
// Every subscriber starts at the head the source was created with,
// so late subscribers still observe the full history.
// Each subscription runs its own goroutine,
// which stops on cancellation, on the stream's terminal event,
// or when the source's context is canceled;
// the last case delivers a failure carrying the context's cause.
type StreamSource[T any] struct {
	ctx  context.Context
	log  *slog.Logger
	head *Stream[T]
}

// NewStreamSource returns a producer reading from head.
func NewStreamSource[T any](
	ctx context.Context, log *slog.Logger, head *Stream[T],
) *StreamSource[T] {
	if head == nil {
		panic("BUG: NewStreamSource called with nil head")
	}
	return &StreamSource[T]{ctx: ctx, log: log, head: head}
}

func (p *StreamSource[T]) Subscribe(c rill.Consumer[T]) rill.Subscription {
	s := &streamSubscription[T]{
		consumer: c,

		// Buffered so that Request never blocks.
		demandAdded: make(chan struct{}, 1),
		canceled:    make(chan struct{}),
	}

	c.ReceiveSubscription(s)

	go s.run(p.ctx, p.log, p.head)

	return s
}

type streamSubscription[T any] struct {
	consumer rill.Consumer[T]

	demandAdded chan struct{}
	canceled    chan struct{}

	mu     sync.Mutex
	demand rill.Demand
	done   bool
}

func (s *streamSubscription[T]) Request(n rill.Demand) {
	if n == 0 {
		return
	}

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.demand = s.demand.Add(n)
	s.mu.Unlock()

	select {
	case s.demandAdded <- struct{}{}:
	default:
	}
}

func (s *streamSubscription[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	close(s.canceled)
}

func (s *streamSubscription[T]) run(
	ctx context.Context, log *slog.Logger, cur *Stream[T],
) {
	for {
		select {
		case <-ctx.Done():
			log.Debug(
				"Stopping stream subscription due to context cancellation",
				"cause", context.Cause(ctx),
			)
			s.terminate(rill.Failed(context.Cause(ctx)))
			return
		case <-s.canceled:
			return
		case <-cur.Ready:
		}

		if cur.Term != nil {
			s.terminate(*cur.Term)
			return
		}

		// There is a value; wait until we are allowed to deliver it.
		for {
			ok, done := s.take()
			if done {
				return
			}
			if ok {
				break
			}

			select {
			case <-ctx.Done():
				s.terminate(rill.Failed(context.Cause(ctx)))
				return
			case <-s.canceled:
				return
			case <-s.demandAdded:
			}
		}

		more := s.consumer.ReceiveItem(cur.Val)
		if more > 0 {
			s.Request(more)
		}

		cur = cur.Next
	}
}

// take consumes one unit of demand if any is available.
// The done result reports whether the subscription is already over.
func (s *streamSubscription[T]) take() (ok, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return false, true
	}
	if s.demand == 0 {
		return false, false
	}
	s.demand = s.demand.Decrement()
	return true, false
}

func (s *streamSubscription[T]) terminate(t rill.Terminal) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.mu.Unlock()

	s.consumer.ReceiveTerminal(t)
}
