package rshare

import "github.com/gordian-engine/rill/internal/rtrace"

// UnboundedCapacity is the [Config.Capacity] value
// for a hub that never evicts items.
const UnboundedCapacity = -1

// Config is the configuration passed to [NewHub].
type Config struct {
	// Number of most recent items kept for replay to new subscribers.
	// It is also the most undelivered items held for any one subscriber:
	// a subscriber whose demand falls further behind
	// loses its oldest pending items.
	//
	// Zero disables replay entirely.
	// Use [UnboundedCapacity] to keep everything.
	Capacity int

	// Optional metrics sink.
	Metrics *Metrics

	// Optional tracer provider.
	// The hub records one span per upstream subscription.
	TracerProvider rtrace.TracerProvider
}
