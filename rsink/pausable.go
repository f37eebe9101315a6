package rsink

import (
	"sync"

	"github.com/gordian-engine/rill"
)

// Pausable is a [rill.Consumer] that requests one item at a time.
//
// Its item handler returns whether to keep going.
// On true, Pausable grants one more item inline.
// On false, it grants nothing and becomes paused
// until [*Pausable.Resume] requests the next item.
type Pausable[T any] struct {
	receiveItem     func(T) bool
	receiveTerminal func(rill.Terminal)

	mu     sync.Mutex
	sub    rill.Subscription
	paused bool
}

// NewPausable returns an unsubscribed Pausable.
// Use it with a producer's Subscribe method, or use [PausableSink].
func NewPausable[T any](
	receiveTerminal func(rill.Terminal),
	receiveItem func(T) bool,
) *Pausable[T] {
	return &Pausable[T]{
		receiveItem:     receiveItem,
		receiveTerminal: receiveTerminal,
	}
}

// PausableSink subscribes a new Pausable to p and returns it.
func PausableSink[T any](
	p rill.Producer[T],
	receiveTerminal func(rill.Terminal),
	receiveItem func(T) bool,
) *Pausable[T] {
	c := NewPausable(receiveTerminal, receiveItem)
	p.Subscribe(c)
	return c
}

func (p *Pausable[T]) ReceiveSubscription(s rill.Subscription) {
	p.mu.Lock()
	p.sub = s
	p.mu.Unlock()

	s.Request(1)
}

func (p *Pausable[T]) ReceiveItem(item T) rill.Demand {
	keepGoing := p.receiveItem(item)

	p.mu.Lock()
	p.paused = !keepGoing
	p.mu.Unlock()

	if keepGoing {
		return 1
	}
	return 0
}

func (p *Pausable[T]) ReceiveTerminal(t rill.Terminal) {
	p.mu.Lock()
	p.sub = nil
	p.mu.Unlock()

	p.receiveTerminal(t)
}

// Paused reports whether the most recent item handler call returned false
// and no Resume has happened since.
func (p *Pausable[T]) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Resume requests one more item if p is paused.
// Otherwise it does nothing.
func (p *Pausable[T]) Resume() {
	p.mu.Lock()
	if !p.paused || p.sub == nil {
		p.mu.Unlock()
		return
	}
	p.paused = false
	s := p.sub
	p.mu.Unlock()

	s.Request(1)
}

// Cancel cancels the underlying subscription.
// Calling Cancel more than once is harmless.
func (p *Pausable[T]) Cancel() {
	p.mu.Lock()
	s := p.sub
	p.sub = nil
	p.mu.Unlock()

	if s != nil {
		s.Cancel()
	}
}
