package rill

import (
	"math"
	"strconv"
)

// Demand is the number of items a consumer has authorized a producer to deliver.
//
// Demand arithmetic saturates:
// adding to [Unbounded] stays Unbounded,
// and subtracting from a finite value never goes below zero.
type Demand uint64

// Unbounded is the demand value that never runs out.
const Unbounded Demand = math.MaxUint64

// IsUnbounded reports whether d is [Unbounded].
func (d Demand) IsUnbounded() bool {
	return d == Unbounded
}

// Add returns d+o, saturating at [Unbounded].
func (d Demand) Add(o Demand) Demand {
	if d == Unbounded || o == Unbounded {
		return Unbounded
	}
	sum := d + o
	if sum < d {
		// Overflow.
		return Unbounded
	}
	return sum
}

// Sub returns d-o, saturating at zero.
// Unbounded minus anything stays Unbounded,
// and a finite value minus Unbounded is zero.
func (d Demand) Sub(o Demand) Demand {
	if d == Unbounded {
		return Unbounded
	}
	if o >= d {
		return 0
	}
	return d - o
}

// Decrement is shorthand for d.Sub(1),
// used when a single item has been delivered.
func (d Demand) Decrement() Demand {
	return d.Sub(1)
}

func (d Demand) String() string {
	if d == Unbounded {
		return "unbounded"
	}
	return strconv.FormatUint(uint64(d), 10)
}
