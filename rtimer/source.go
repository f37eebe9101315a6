package rtimer

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gordian-engine/rill"
	"github.com/juju/clock"
)

// Source is a [rill.Producer] of tick timestamps.
//
// Each subscription owns its own timer,
// which starts on the subscription's first positive request
// and stops on cancellation or after the configured number of ticks.
type Source struct {
	log *slog.Logger
	cfg Config
}

// NewSource returns a timer source with the given configuration.
// It panics if cfg.Interval is not positive or cfg.Leeway is negative.
func NewSource(log *slog.Logger, cfg Config) *Source {
	if cfg.Interval <= 0 {
		panic(fmt.Errorf("BUG: timer interval must be positive (got %s)", cfg.Interval))
	}
	if cfg.Leeway < 0 {
		panic(fmt.Errorf("BUG: timer leeway must not be negative (got %s)", cfg.Leeway))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	return &Source{log: log, cfg: cfg}
}

func (src *Source) Subscribe(c rill.Consumer[time.Time]) rill.Subscription {
	s := &subscription{
		log: src.log,
		cfg: src.cfg,

		stop: make(chan struct{}),

		consumer:  c,
		remaining: src.cfg.MaxEmissions,
	}

	c.ReceiveSubscription(s)

	return s
}

// subscription owns the timer goroutine for one consumer.
// The goroutine only holds the subscription, never the consumer directly,
// so releasing the consumer on cancel or completion
// immediately cuts off delivery.
type subscription struct {
	log *slog.Logger
	cfg Config

	// Closed exactly once, by release.
	stop chan struct{}

	mu sync.Mutex

	// Nil after cancellation or completion.
	consumer rill.Consumer[time.Time]

	requested rill.Demand
	remaining rill.Demand
	started   bool

	// Set by Cancel, even after release,
	// so that a cancel during the final delivery suppresses completion.
	canceled bool
}

func (s *subscription) Request(n rill.Demand) {
	if n == 0 {
		return
	}

	s.mu.Lock()
	c := s.consumer
	if c == nil {
		s.mu.Unlock()
		return
	}

	if s.remaining == 0 {
		s.release()
		s.mu.Unlock()
		c.ReceiveTerminal(rill.Completed())
		return
	}

	s.requested = s.requested.Add(n)

	if !s.started {
		s.started = true

		start := s.cfg.Clock.Now()
		t := s.cfg.Clock.NewTimer(s.cfg.Interval)
		go s.run(t, start.Add(s.cfg.Interval))

		s.log.Debug(
			"Started timer",
			"interval", s.cfg.Interval,
			"max_emissions", s.cfg.MaxEmissions,
		)
	}
	s.mu.Unlock()
}

func (s *subscription) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canceled = true
	if s.consumer != nil {
		s.release()
	}
}

// release drops the consumer and stops the timer goroutine.
// It must be called with s.mu held and s.consumer non-nil.
func (s *subscription) release() {
	s.consumer = nil
	close(s.stop)
}

// run waits for each scheduled tick until the subscription is released.
// The slot argument is the deadline the timer t is waiting for.
func (s *subscription) run(t clock.Timer, slot time.Time) {
	defer func() {
		t.Stop()
	}()

	for {
		select {
		case <-s.stop:
			return

		case <-t.Chan():
		}

		now := s.cfg.Clock.Now()
		if s.cfg.Executor == nil {
			s.tick(now)
		} else {
			s.cfg.Executor.Execute(func() { s.tick(now) })
		}

		select {
		case <-s.stop:
			return
		default:
		}

		slot = nextSlot(slot, now, s.cfg.Interval, s.cfg.Leeway)
		t = s.cfg.Clock.NewTimer(slot.Sub(now))
	}
}

// tick delivers one timestamp if there is outstanding demand,
// and otherwise drops it.
func (s *subscription) tick(now time.Time) {
	s.mu.Lock()
	c := s.consumer
	if c == nil || s.requested == 0 {
		s.mu.Unlock()
		return
	}

	s.requested = s.requested.Decrement()
	s.remaining = s.remaining.Decrement()
	finished := s.remaining == 0
	if finished {
		s.release()
	}
	s.mu.Unlock()

	more := c.ReceiveItem(now)

	if finished {
		s.mu.Lock()
		canceled := s.canceled
		s.mu.Unlock()
		if canceled {
			return
		}

		s.log.Debug("Timer completed", "emissions", s.cfg.MaxEmissions)
		c.ReceiveTerminal(rill.Completed())
		return
	}

	if more > 0 {
		s.Request(more)
	}
}

// nextSlot returns the deadline following slot, which fired at now.
// If now is more than leeway past slot, the schedule is re-anchored at now.
// Slots that are already in the past are skipped, never caught up.
func nextSlot(slot, now time.Time, interval, leeway time.Duration) time.Time {
	if now.Sub(slot) > leeway {
		slot = now
	}

	slot = slot.Add(interval)
	for !slot.After(now) {
		slot = slot.Add(interval)
	}
	return slot
}
