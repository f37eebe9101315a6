// Package rill contains the core types for demand-driven,
// in-process reactive streams.
//
// A [Producer] hands each [Consumer] a [Subscription].
// The consumer signals how many items it is willing to accept
// by calling [Subscription.Request] with a [Demand],
// and the producer never delivers more items than that outstanding demand.
// Each stream ends with at most one [Terminal] event,
// unless the consumer cancels first,
// in which case no terminal event is delivered at all.
//
// Concrete producers and consumers live in subpackages:
// rtimer (a demand-throttled timer),
// rsink (pausable and unbounded consumers),
// rshare (a multicast hub with a bounded replay buffer),
// and rpubsub (subjects, sequences, and channel bridges).
package rill
