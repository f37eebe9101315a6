// Package rilltest contains utilities for testing
// producers and consumers built on package rill.
package rilltest

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/gordian-engine/rill"
	"github.com/stretchr/testify/require"
)

// Recorder is a [rill.Consumer] that records everything it receives.
//
// It requests InitialDemand when it receives its subscription,
// and grants ItemDemand inline for every item it receives.
type Recorder[T any] struct {
	InitialDemand rill.Demand
	ItemDemand    rill.Demand

	// Optional hook called for every item, outside the recorder's lock,
	// after the item has been recorded.
	// Its return value is added to ItemDemand.
	OnItem func(T) rill.Demand

	mu        sync.Mutex
	sub       rill.Subscription
	subCount  int
	items     []T
	terminals []rill.Terminal
}

// NewRecorder returns a recorder with the given initial demand
// and no inline demand.
func NewRecorder[T any](initial rill.Demand) *Recorder[T] {
	return &Recorder[T]{InitialDemand: initial}
}

func (r *Recorder[T]) ReceiveSubscription(s rill.Subscription) {
	r.mu.Lock()
	r.sub = s
	r.subCount++
	r.mu.Unlock()

	if r.InitialDemand > 0 {
		s.Request(r.InitialDemand)
	}
}

func (r *Recorder[T]) ReceiveItem(item T) rill.Demand {
	r.mu.Lock()
	r.items = append(r.items, item)
	r.mu.Unlock()

	d := r.ItemDemand
	if r.OnItem != nil {
		d = d.Add(r.OnItem(item))
	}
	return d
}

func (r *Recorder[T]) ReceiveTerminal(t rill.Terminal) {
	r.mu.Lock()
	r.terminals = append(r.terminals, t)
	r.mu.Unlock()
}

// Subscription returns the subscription most recently received.
func (r *Recorder[T]) Subscription() rill.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub
}

// SubscriptionCount returns how many times ReceiveSubscription was called.
func (r *Recorder[T]) SubscriptionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subCount
}

// Request is shorthand for r.Subscription().Request(n).
func (r *Recorder[T]) Request(n rill.Demand) {
	r.Subscription().Request(n)
}

// Cancel is shorthand for r.Subscription().Cancel().
func (r *Recorder[T]) Cancel() {
	r.Subscription().Cancel()
}

// Items returns a copy of the items received so far.
func (r *Recorder[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// ItemCount returns the number of items received so far.
func (r *Recorder[T]) ItemCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Terminals returns a copy of the terminal events received so far.
// A well-behaved producer never delivers more than one.
func (r *Recorder[T]) Terminals() []rill.Terminal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.terminals)
}

// WaitItems blocks until at least n items have been received,
// failing t if that takes longer than a second.
// It returns the items received at that point.
func (r *Recorder[T]) WaitItems(t testing.TB, n int) []T {
	t.Helper()

	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return len(r.items) >= n
	}, time.Second, time.Millisecond)

	return r.Items()
}

// WaitTerminal blocks until a terminal event has been received,
// failing t if that takes longer than a second.
func (r *Recorder[T]) WaitTerminal(t testing.TB) rill.Terminal {
	t.Helper()

	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return len(r.terminals) > 0
	}, time.Second, time.Millisecond)

	return r.Terminals()[0]
}
