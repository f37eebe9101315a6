package rill_test

import (
	"sync/atomic"
	"testing"

	"github.com/gordian-engine/rill"
	"github.com/stretchr/testify/require"
)

type countingSubscription struct {
	cancels atomic.Int32
}

func (s *countingSubscription) Request(rill.Demand) {}
func (s *countingSubscription) Cancel()             { s.cancels.Add(1) }

func TestCancelSet_CancelAll(t *testing.T) {
	t.Parallel()

	var set rill.CancelSet
	a := new(countingSubscription)
	b := new(countingSubscription)
	set.Add(a)
	set.Add(b)
	require.Equal(t, 2, set.Len())

	set.CancelAll()
	require.Zero(t, set.Len())
	require.Equal(t, int32(1), a.cancels.Load())
	require.Equal(t, int32(1), b.cancels.Load())

	// Second call does not cancel again.
	set.CancelAll()
	require.Equal(t, int32(1), a.cancels.Load())
}

func TestCancelSet_addAfterCancelAll(t *testing.T) {
	t.Parallel()

	var set rill.CancelSet
	set.CancelAll()

	c := new(countingSubscription)
	set.Add(c)
	require.Equal(t, int32(1), c.cancels.Load())
	require.Zero(t, set.Len())
}
