package rslot_test

import (
	"testing"

	"github.com/gordian-engine/rill/internal/rslot"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Parallel()

	var s rslot.Set[string]
	require.Zero(t, s.Len())

	a := s.Add("a")
	b := s.Add("b")
	c := s.Add("c")
	require.Equal(t, []uint{0, 1, 2}, []uint{a, b, c})
	require.Equal(t, 3, s.Len())

	require.True(t, s.Remove(b))
	require.False(t, s.Remove(b))
	require.Equal(t, []string{"a", "c"}, s.AppendTo(nil))

	// Freed slot is reused.
	d := s.Add("d")
	require.Equal(t, b, d)
	require.Equal(t, []string{"a", "d", "c"}, s.AppendTo(nil))

	require.False(t, s.Remove(100))
}
