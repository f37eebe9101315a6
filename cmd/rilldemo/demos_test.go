package main

import (
	"context"
	"testing"
	"time"

	"github.com/gordian-engine/rill/internal/rtest"
	"github.com/stretchr/testify/require"
)

func TestRunTimer_completes(t *testing.T) {
	t.Parallel()

	n, err := runTimer(context.Background(), rtest.NewLogger(t), config{
		Interval: time.Millisecond,
		Times:    4,
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestRunTimer_cancelAfter(t *testing.T) {
	t.Parallel()

	n, err := runTimer(context.Background(), rtest.NewLogger(t), config{
		Interval:    time.Hour,
		Times:       -1,
		CancelAfter: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRunPausable(t *testing.T) {
	t.Parallel()

	got, err := runPausable(context.Background(), rtest.NewLogger(t), config{
		Interval: time.Millisecond,
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
}

func TestRunReplay(t *testing.T) {
	t.Parallel()

	got, err := runReplay(context.Background(), rtest.NewLogger(t), config{
		Capacity: 2,
	})
	require.NoError(t, err)
	require.Equal(t, map[string][]int{
		"subscription1": {1, 2, 3, 4, 5},
		"subscription2": {2, 3, 4, 5},
		"subscription3": {4, 5},
	}, got)
}

func TestRootCmd_flagsReachConfig(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	root.SetArgs([]string{"replay", "--capacity", "1", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	root = newRootCmd()
	root.SetArgs([]string{"replay", "--log-level", "nonsense"})
	require.Error(t, root.ExecuteContext(context.Background()))
}
