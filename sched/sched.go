// Package sched runs deferred work on the UI thread. Timer expiries become
// closures on one queue that the UI loop drains, so every callback observes
// the same single-threaded state as the code that armed it.
package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running; a stopped timer never runs, even when its
	// expiry is already sitting in the queue.
	Stop() bool
}

// Scheduler arms timers whose callbacks run on the UI thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

const (
	pending int32 = iota
	stopped
	fired
)

// Queue is a Scheduler backed by time.AfterFunc. Expired callbacks are
// delivered on Events and run by whoever drains it.
type Queue struct {
	events chan func()
	done   chan struct{}
	once   sync.Once
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int) *Queue {
	return &Queue{
		events: make(chan func(), size),
		done:   make(chan struct{}),
	}
}

// Events is drained by the UI loop; each value must be called on the UI thread.
func (q *Queue) Events() <-chan func() {
	return q.events
}

// Post enqueues fn to run on the next drain.
func (q *Queue) Post(fn func()) {
	select {
	case q.events <- fn:
	case <-q.done:
	}
}

// AfterFunc arms a timer that posts fn once d has elapsed.
func (q *Queue) AfterFunc(d time.Duration, fn func()) Timer {
	t := &queueTimer{}
	t.timer = time.AfterFunc(d, func() {
		q.Post(func() {
			if t.state.CompareAndSwap(pending, fired) {
				fn()
			}
		})
	})
	return t
}

// Close stops delivery. Timers that expire afterwards are dropped.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

type queueTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *queueTimer) Stop() bool {
	t.timer.Stop()
	return t.state.CompareAndSwap(pending, stopped)
}
