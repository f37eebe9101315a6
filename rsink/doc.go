// Package rsink contains terminal consumers for rill streams.
//
// [Pausable] pulls one item at a time and lets its handler
// pause the stream until [*Pausable.Resume] is called.
// [Sink] requests everything and hands each item to a callback.
package rsink
