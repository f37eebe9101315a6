package rill_test

import (
	"errors"
	"testing"

	"github.com/gordian-engine/rill"
	"github.com/stretchr/testify/require"
)

func TestDemand_Add(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		a, b rill.Demand
		want rill.Demand
	}{
		{name: "finite", a: 2, b: 3, want: 5},
		{name: "zero", a: 0, b: 0, want: 0},
		{name: "unbounded left", a: rill.Unbounded, b: 1, want: rill.Unbounded},
		{name: "unbounded right", a: 7, b: rill.Unbounded, want: rill.Unbounded},
		{name: "both unbounded", a: rill.Unbounded, b: rill.Unbounded, want: rill.Unbounded},
		{name: "overflow saturates", a: rill.Unbounded - 1, b: 5, want: rill.Unbounded},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Add(tc.b))
			require.Equal(t, tc.want, tc.b.Add(tc.a))
		})
	}
}

func TestDemand_Sub(t *testing.T) {
	t.Parallel()

	require.Equal(t, rill.Demand(2), rill.Demand(5).Sub(3))
	require.Equal(t, rill.Demand(0), rill.Demand(3).Sub(5))
	require.Equal(t, rill.Demand(0), rill.Demand(3).Sub(rill.Unbounded))
	require.Equal(t, rill.Unbounded, rill.Unbounded.Sub(1000))
	require.Equal(t, rill.Unbounded, rill.Unbounded.Sub(rill.Unbounded))

	require.Equal(t, rill.Demand(0), rill.Demand(0).Decrement())
	require.Equal(t, rill.Demand(0), rill.Demand(1).Decrement())
	require.Equal(t, rill.Unbounded, rill.Unbounded.Decrement())
}

func TestDemand_addThenSubNeverNegative(t *testing.T) {
	t.Parallel()

	for a := rill.Demand(0); a < 20; a++ {
		for b := rill.Demand(0); b < 20; b++ {
			got := a.Add(b).Sub(a).Sub(b).Sub(1)
			require.Zero(t, got)
		}
	}
}

func TestDemand_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "unbounded", rill.Unbounded.String())
	require.Equal(t, "42", rill.Demand(42).String())
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	require.False(t, rill.Completed().IsFailed())
	require.Equal(t, rill.Terminal{}, rill.Completed())
	require.Equal(t, "completed", rill.Completed().String())

	err := errors.New("boom")
	f := rill.Failed(err)
	require.True(t, f.IsFailed())
	require.ErrorIs(t, f.Err, err)
	require.Equal(t, "failed: boom", f.String())

	require.Panics(t, func() {
		_ = rill.Failed(nil)
	})
}
