// Package rslot contains an index-addressed set of values.
package rslot

import "github.com/bits-and-blooms/bitset"

// Set stores values in numbered slots,
// reusing freed slots for later additions.
//
// The slot index is a stable handle for the value
// until the value is removed.
// Set is not safe for concurrent use.
type Set[T any] struct {
	vals []T
	used bitset.BitSet
}

// Add stores v in the lowest free slot and returns that slot's index.
func (s *Set[T]) Add(v T) uint {
	idx, ok := s.used.NextClear(0)
	if !ok || idx >= uint(len(s.vals)) {
		idx = uint(len(s.vals))
		s.vals = append(s.vals, v)
	} else {
		s.vals[idx] = v
	}
	s.used.Set(idx)
	return idx
}

// Remove clears slot idx.
// It reports whether the slot was in use.
func (s *Set[T]) Remove(idx uint) bool {
	if !s.used.Test(idx) {
		return false
	}
	s.used.Clear(idx)

	var zero T
	s.vals[idx] = zero
	return true
}

// Len returns the number of slots in use.
func (s *Set[T]) Len() int {
	return int(s.used.Count())
}

// AppendTo appends every value in use to dst, in slot order.
func (s *Set[T]) AppendTo(dst []T) []T {
	for i, ok := s.used.NextSet(0); ok; i, ok = s.used.NextSet(i + 1) {
		dst = append(dst, s.vals[i])
	}
	return dst
}
