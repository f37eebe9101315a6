package rill

import "sync"

// Canceler is anything that can be canceled,
// such as a [Subscription] or a consumer holding one.
type Canceler interface {
	Cancel()
}

// CancelSet holds cancelable handles on behalf of the code that created them,
// so that they can all be canceled together when that owner is done.
//
// The zero value is ready to use.
type CancelSet struct {
	mu       sync.Mutex
	subs     []Canceler
	canceled bool
}

// Add stores s in the set.
// If the set has already been canceled, s is canceled immediately.
func (c *CancelSet) Add(s Canceler) {
	c.mu.Lock()
	if c.canceled {
		c.mu.Unlock()
		s.Cancel()
		return
	}
	c.subs = append(c.subs, s)
	c.mu.Unlock()
}

// Len returns the number of handles currently held.
func (c *CancelSet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// CancelAll cancels every held handle and empties the set.
// Subsequent calls to Add cancel their argument immediately.
// Calling CancelAll more than once is harmless.
func (c *CancelSet) CancelAll() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.canceled = true
	c.mu.Unlock()

	// Cancel outside the lock,
	// in case a cancellation calls back into the set.
	for _, s := range subs {
		s.Cancel()
	}
}
