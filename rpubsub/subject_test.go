package rpubsub_test

import (
	"errors"
	"testing"

	"github.com/gordian-engine/rill"
	"github.com/gordian-engine/rill/rilltest"
	"github.com/gordian-engine/rill/rpubsub"
	"github.com/stretchr/testify/require"
)

func TestSubject_dropsWithoutDemand(t *testing.T) {
	t.Parallel()

	s := rpubsub.NewSubject[int]()
	r := rilltest.NewRecorder[int](1)
	s.Subscribe(r)

	require.NoError(t, s.Send(1))
	require.NoError(t, s.Send(2)) // No demand left.

	r.Request(1)
	require.NoError(t, s.Send(3))

	require.Equal(t, []int{1, 3}, r.Items())
}

func TestSubject_inlineDemand(t *testing.T) {
	t.Parallel()

	s := rpubsub.NewSubject[int]()
	r := rilltest.NewRecorder[int](1)
	r.ItemDemand = 1
	s.Subscribe(r)

	for i := range 4 {
		require.NoError(t, s.Send(i))
	}

	require.Equal(t, []int{0, 1, 2, 3}, r.Items())
}

func TestSubject_terminal(t *testing.T) {
	t.Parallel()

	s := rpubsub.NewSubject[int]()
	early := rilltest.NewRecorder[int](0)
	s.Subscribe(early)

	boom := errors.New("boom")
	require.NoError(t, s.Fail(boom))

	require.Len(t, early.Terminals(), 1)
	require.ErrorIs(t, early.Terminals()[0].Err, boom)
	require.Zero(t, s.SubscriberCount())

	// Late subscribers get the same terminal event.
	late := rilltest.NewRecorder[int](rill.Unbounded)
	s.Subscribe(late)
	require.Len(t, late.Terminals(), 1)
	require.ErrorIs(t, late.Terminals()[0].Err, boom)

	var te rpubsub.TerminatedError
	require.ErrorAs(t, s.Send(1), &te)
	require.ErrorIs(t, te.Terminal.Err, boom)
	require.ErrorAs(t, s.Complete(), &te)

	require.Empty(t, early.Items())
	require.Len(t, early.Terminals(), 1)
}

func TestSubject_cancel(t *testing.T) {
	t.Parallel()

	s := rpubsub.NewSubject[int]()
	a := rilltest.NewRecorder[int](rill.Unbounded)
	b := rilltest.NewRecorder[int](rill.Unbounded)
	s.Subscribe(a)
	s.Subscribe(b)
	require.Equal(t, 2, s.SubscriberCount())

	require.NoError(t, s.Send(1))
	a.Cancel()
	a.Cancel()
	require.Equal(t, 1, s.SubscriberCount())

	require.NoError(t, s.Send(2))
	require.NoError(t, s.Complete())

	require.Equal(t, []int{1}, a.Items())
	require.Empty(t, a.Terminals())
	require.Equal(t, []int{1, 2}, b.Items())
	require.Equal(t, []rill.Terminal{rill.Completed()}, b.Terminals())
}
