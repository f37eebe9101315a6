package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gordian-engine/rill"
	"github.com/gordian-engine/rill/rpubsub"
	"github.com/gordian-engine/rill/rshare"
	"github.com/gordian-engine/rill/rsink"
	"github.com/gordian-engine/rill/rtimer"
)

func maxEmissions(times int64) rill.Demand {
	if times < 0 {
		return rill.Unbounded
	}
	return rill.Demand(times)
}

// runTimer logs timer ticks until the timer completes,
// cfg.CancelAfter elapses, or ctx is canceled.
// It returns the number of ticks observed.
func runTimer(ctx context.Context, log *slog.Logger, cfg config) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	q := rtimer.NewQueue(ctx, log, 1)
	defer func() {
		cancel()
		q.Wait()
	}()

	src := rtimer.NewSource(log, rtimer.Config{
		Executor:     q,
		Interval:     cfg.Interval,
		MaxEmissions: maxEmissions(cfg.Times),
	})

	start := time.Now()
	ticks := 0
	done := make(chan struct{})

	// Deliveries run on the queue goroutine, one at a time.
	sink := rsink.NewSink(
		src,
		func(t rill.Terminal) {
			log.Info("Timer finished", "terminal", t)
			close(done)
		},
		func(at time.Time) {
			ticks++
			log.Info("Timer emits", "elapsed", at.Sub(start).Round(time.Millisecond))
		},
	)

	var cancelAfter <-chan time.Time
	if cfg.CancelAfter > 0 {
		cancelAfter = time.After(cfg.CancelAfter)
	}

	select {
	case <-ctx.Done():
		sink.Cancel()
		return 0, context.Cause(ctx)
	case <-cancelAfter:
		log.Info("Canceling timer subscription")
		sink.Cancel()
	case <-done:
	}

	// Ticks are counted on the queue goroutine,
	// so stop it before reading the count.
	cancel()
	q.Wait()

	return ticks, nil
}

// runPausable consumes 1 through 6, pausing after every odd value.
// A second timer resumes the consumer whenever it is paused.
// It returns the values consumed, in order.
func runPausable(ctx context.Context, log *slog.Logger, cfg config) ([]int, error) {
	var got []int
	done := make(chan rill.Terminal, 1)

	p := rsink.PausableSink(
		rpubsub.NewSequence(1, 2, 3, 4, 5, 6),
		func(t rill.Terminal) {
			log.Info("Pausable subscription completed", "terminal", t)
			done <- t
		},
		func(v int) bool {
			got = append(got, v)
			log.Info("Received value", "value", v)
			if v%2 == 1 {
				log.Info("Pausing")
				return false
			}
			return true
		},
	)

	var subs rill.CancelSet
	defer subs.CancelAll()
	subs.Add(p)

	resumer := rtimer.NewSource(log, rtimer.Config{
		Interval:     cfg.Interval,
		MaxEmissions: rill.Unbounded,
	})
	subs.Add(rsink.NewSink(resumer, nil, func(time.Time) {
		if p.Paused() {
			log.Info("Subscription is paused, resuming")
			p.Resume()
		}
	}))

	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	case t := <-done:
		if t.IsFailed() {
			return got, t.Err
		}
	}

	return got, nil
}

// runReplay shares a subject through a replay hub
// among three subscribers joining at different times,
// the last one after the subject has completed.
// It returns what each subscriber received.
func runReplay(ctx context.Context, log *slog.Logger, cfg config) (map[string][]int, error) {
	subj := rpubsub.NewSubject[int]()
	h := rshare.ShareReplay[int](log, subj, cfg.Capacity)

	got := make(map[string][]int)
	subscribe := func(name string) *rsink.Sink[int] {
		return rsink.NewSink[int](
			h,
			func(t rill.Terminal) {
				log.Info("Subscriber completed", "subscriber", name, "terminal", t)
			},
			func(v int) {
				got[name] = append(got[name], v)
				log.Info("Subscriber received", "subscriber", name, "value", v)
			},
		)
	}

	var subs rill.CancelSet
	defer subs.CancelAll()

	send := func(vs ...int) error {
		for _, v := range vs {
			if err := subj.Send(v); err != nil {
				return fmt.Errorf("failed to send %d: %w", v, err)
			}
		}
		return nil
	}

	// Nobody is subscribed yet, so the hub is not connected
	// and this value is lost.
	if err := send(0); err != nil {
		return nil, err
	}

	subs.Add(subscribe("subscription1"))
	if err := send(1, 2, 3); err != nil {
		return nil, err
	}

	subs.Add(subscribe("subscription2"))
	if err := send(4, 5); err != nil {
		return nil, err
	}
	if err := subj.Complete(); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	default:
	}

	log.Info("Subscribing to share-replay after upstream completed")
	subs.Add(subscribe("subscription3"))

	return got, nil
}
