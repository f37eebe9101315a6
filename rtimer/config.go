package rtimer

import (
	"time"

	"github.com/gordian-engine/rill"
	"github.com/juju/clock"
)

// Config is the configuration passed to [NewSource].
type Config struct {
	// Where tick deliveries run.
	// If nil, ticks are delivered on the subscription's timer goroutine.
	Executor Executor

	// Time between ticks, starting from the first positive request.
	// Must be positive.
	Interval time.Duration

	// How late a tick may fire and still count as on schedule.
	// Ticks are scheduled on a fixed grid of Interval steps;
	// a tick that fires more than Leeway after its grid slot
	// moves the grid to start at the late tick instead.
	Leeway time.Duration

	// Total number of ticks to deliver before completing.
	// Use [rill.Unbounded] for a timer that never completes on its own.
	// Zero completes on the first request without ever starting a timer.
	MaxEmissions rill.Demand

	// Clock used for scheduling.
	// Defaults to [clock.WallClock] when nil.
	Clock clock.Clock
}
