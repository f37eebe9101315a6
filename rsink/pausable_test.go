package rsink_test

import (
	"testing"

	"github.com/gordian-engine/rill"
	"github.com/gordian-engine/rill/rpubsub"
	"github.com/gordian-engine/rill/rsink"
	"github.com/stretchr/testify/require"
)

func TestPausable_evenNumbersContinue(t *testing.T) {
	t.Parallel()

	var got []int
	var terms []rill.Terminal
	p := rsink.PausableSink(
		rpubsub.NewSequence(1, 2, 3, 4, 5, 6),
		func(t rill.Terminal) { terms = append(terms, t) },
		func(v int) bool {
			got = append(got, v)
			return v%2 == 0
		},
	)

	require.Equal(t, []int{1}, got)
	require.True(t, p.Paused())

	p.Resume()
	require.Equal(t, []int{1, 2, 3}, got)
	require.True(t, p.Paused())

	p.Resume()
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
	require.True(t, p.Paused())
	require.Empty(t, terms)

	p.Resume()
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
	require.False(t, p.Paused())
	require.Equal(t, []rill.Terminal{rill.Completed()}, terms)

	// Resume after completion is a no-op.
	p.Resume()
	require.Len(t, got, 6)
}

func TestPausable_resumeWhenNotPausedIsNoOp(t *testing.T) {
	t.Parallel()

	subj := rpubsub.NewSubject[int]()

	var got []int
	p := rsink.PausableSink(
		subj,
		func(rill.Terminal) {},
		func(v int) bool {
			got = append(got, v)
			return v != 2
		},
	)
	require.False(t, p.Paused())

	// Not paused: Resume must not add a second unit of demand.
	p.Resume()

	require.NoError(t, subj.Send(1))
	require.NoError(t, subj.Send(2))
	require.True(t, p.Paused())

	// Paused with no demand, so this is dropped by the subject.
	require.NoError(t, subj.Send(3))
	require.Equal(t, []int{1, 2}, got)

	// Exactly one item per resume while paused.
	p.Resume()
	require.NoError(t, subj.Send(4))
	require.NoError(t, subj.Send(5))
	require.Equal(t, []int{1, 2, 4, 5}, got)
}

// requestLog is a subscription that records requested demand.
type requestLog struct {
	requests []rill.Demand
	canceled int
}

func (l *requestLog) Request(n rill.Demand) { l.requests = append(l.requests, n) }
func (l *requestLog) Cancel()               { l.canceled++ }

func TestPausable_requestsOneAtATime(t *testing.T) {
	t.Parallel()

	p := rsink.NewPausable(
		func(rill.Terminal) {},
		func(v int) bool { return v > 0 },
	)

	var l requestLog
	p.ReceiveSubscription(&l)
	require.Equal(t, []rill.Demand{1}, l.requests)

	require.Equal(t, rill.Demand(1), p.ReceiveItem(1))
	require.False(t, p.Paused())

	require.Zero(t, p.ReceiveItem(-1))
	require.True(t, p.Paused())

	p.Resume()
	require.False(t, p.Paused())
	require.Equal(t, []rill.Demand{1, 1}, l.requests)

	p.Cancel()
	p.Cancel()
	require.Equal(t, 1, l.canceled)
}

func TestPausable_cancel(t *testing.T) {
	t.Parallel()

	subj := rpubsub.NewSubject[int]()

	var got []int
	var terms []rill.Terminal
	p := rsink.PausableSink(
		subj,
		func(t rill.Terminal) { terms = append(terms, t) },
		func(v int) bool {
			got = append(got, v)
			return true
		},
	)

	require.NoError(t, subj.Send(1))
	p.Cancel()
	p.Cancel()
	require.Zero(t, subj.SubscriberCount())

	require.NoError(t, subj.Send(2))
	require.NoError(t, subj.Complete())

	require.Equal(t, []int{1}, got)
	require.Empty(t, terms)
}
