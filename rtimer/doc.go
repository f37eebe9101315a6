// Package rtimer contains a timer [rill.Producer]
// whose ticks are throttled by subscriber demand.
//
// A tick that fires while its subscriber has no outstanding demand
// is dropped, not queued:
// each scheduled tick is delivered at most once,
// and a later request never catches up on missed ticks.
package rtimer
