// Package rpubsub contains in-process producers
// that feed demand-driven streams.
//
// The [Stream] type is a single-writer, many-reader linked list:
// every reader observes the same sequence of values at its own pace,
// and [StreamSource] exposes a Stream as a [rill.Producer].
//
// [Subject] is a passthrough producer for imperative code
// that pushes values as they happen,
// and [Sequence] produces a fixed slice of values.
package rpubsub
