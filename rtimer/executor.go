package rtimer

import (
	"context"
	"log/slog"
)

// Executor runs tick deliveries for a [Source].
//
// Implementations must run tasks one at a time in submission order,
// so that a subscriber never observes concurrent or reordered deliveries.
type Executor interface {
	Execute(task func())
}

// Queue is a serial [Executor] backed by a single goroutine.
//
// Tasks submitted after the queue's context is canceled are discarded.
type Queue struct {
	log *slog.Logger

	tasks chan func()
	done  chan struct{}
	ctx   context.Context
}

// NewQueue starts a queue whose goroutine runs until ctx is canceled.
// Size is the number of tasks that may be pending
// before Execute blocks.
func NewQueue(ctx context.Context, log *slog.Logger, size int) *Queue {
	q := &Queue{
		log: log,

		tasks: make(chan func(), size),
		done:  make(chan struct{}),
		ctx:   ctx,
	}

	go q.mainLoop()

	return q
}

func (q *Queue) mainLoop() {
	defer close(q.done)

	for {
		select {
		case <-q.ctx.Done():
			q.log.Debug(
				"Stopping queue due to context cancellation",
				"cause", context.Cause(q.ctx),
			)
			return

		case task := <-q.tasks:
			task()
		}
	}
}

// Execute enqueues task, blocking while the queue is full.
func (q *Queue) Execute(task func()) {
	select {
	case <-q.ctx.Done():
	case q.tasks <- task:
	}
}

// Wait blocks until the queue's goroutine has stopped.
func (q *Queue) Wait() {
	<-q.done
}
