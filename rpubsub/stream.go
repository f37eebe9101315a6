package rpubsub

import (
	"context"

	"github.com/gordian-engine/rill"
)

// Stream is a linked list of event-driven values.
// The list has a single writer and many readers.
// Readers can each consume the list at their own pace.
//
// Each node holds either a value, set by [*Stream.Publish],
// or a terminal event, set by [*Stream.Finish].
// A finished node has a nil Next.
//
// If readers do not actively consume the list,
// the node they observe will never be garbage collected,
// which is a memory leak.
type Stream[T any] struct {
	Ready chan struct{}
	Next  *Stream[T]
	Val   T
	Term  *rill.Terminal
}

// NewStream returns an initialized pubsub stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{
		Ready: make(chan struct{}),
	}
}

// Publish assigns s's value and initializes s.Next.
// Then s.Ready is closed, notifying any observers that
// s.Val can now be safely read.
//
// If Publish or Finish has already been called for s, Publish panics.
func (s *Stream[T]) Publish(t T) {
	s.Val = t
	s.Next = NewStream[T]()
	close(s.Ready)
}

// Finish marks s as the end of the stream, with the given terminal event.
// Readers observing s.Ready find s.Term set and s.Next nil.
//
// If Publish or Finish has already been called for s, Finish panics.
func (s *Stream[T]) Finish(t rill.Terminal) {
	s.Term = &t
	close(s.Ready)
}

// RunChannelToStream starts a background goroutine
// that reads values from ch and publishes them to the returned Stream.
//
// The returned done channel is closed when the goroutine stops,
// which will happen on context cancellation or
// if the given channel is closed.
// A closed channel finishes the stream with [rill.Completed];
// context cancellation finishes it with a failure
// carrying the context's cause.
func RunChannelToStream[T any](ctx context.Context, ch <-chan T) (
	s *Stream[T], done <-chan struct{},
) {
	s = NewStream[T]()
	doneCh := make(chan struct{})

	go runChannelToStream(ctx, ch, s, doneCh)

	return s, doneCh
}

func runChannelToStream[T any](
	ctx context.Context,
	ch <-chan T,
	s *Stream[T],
	done chan<- struct{},
) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			s.Finish(rill.Failed(context.Cause(ctx)))
			return

		case v, ok := <-ch:
			if !ok {
				s.Finish(rill.Completed())
				return
			}
			s.Publish(v)
			s = s.Next
		}
	}
}
