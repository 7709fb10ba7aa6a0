// Package visibility merges controlled and internal open state and applies
// delayed open/close requests.
package visibility

import (
	"anchor/log"
	"anchor/sched"
	"time"
)

// State is the lifecycle state of a popup.
type State int

const (
	Closed State = iota
	PendingOpen
	Open
	PendingClose
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case PendingOpen:
		return "pending-open"
	case Open:
		return "open"
	case PendingClose:
		return "pending-close"
	default:
		return "unknown"
	}
}

// Coordinator owns the open flag of one popup. At most one delayed request
// is pending at a time; a new request cancels it.
type Coordinator struct {
	sched    sched.Scheduler
	onChange func(open bool)

	controlled *bool
	internal   bool

	timer   sched.Timer
	pending bool
	gen     uint64
	closed  bool
}

// New creates a coordinator. onChange is called whenever a request changes
// the merged open state; in controlled mode the owner is expected to feed
// the new value back through SetControlled.
func New(s sched.Scheduler, defaultOpen bool, onChange func(open bool)) *Coordinator {
	return &Coordinator{
		sched:    s,
		onChange: onChange,
		internal: defaultOpen,
	}
}

// SetControlled sets the externally controlled open flag. nil returns
// control to the internal state. Any change of the controlled value resets
// the internal state to it, or to closed for nil, so requests the owner
// never accepted are not applied later.
func (c *Coordinator) SetControlled(open *bool) {
	if open == nil {
		if c.controlled != nil {
			c.controlled = nil
			c.internal = false
		}
		return
	}
	v := *open
	if c.controlled == nil || *c.controlled != v {
		c.internal = v
	}
	c.controlled = &v
}

// Open returns the merged open state.
func (c *Coordinator) Open() bool {
	if c.controlled != nil {
		return *c.controlled
	}
	return c.internal
}

// State reports the lifecycle state including a pending request.
func (c *Coordinator) State() State {
	open := c.Open()
	switch {
	case c.timer != nil && c.pending && !open:
		return PendingOpen
	case c.timer != nil && !c.pending && open:
		return PendingClose
	case open:
		return Open
	default:
		return Closed
	}
}

// TriggerOpen requests next after delay. Any pending request is cancelled
// first. A request for the current state only cancels; a zero delay applies
// immediately.
func (c *Coordinator) TriggerOpen(next bool, delay time.Duration) {
	if c.closed {
		return
	}
	c.cancel()

	if next == c.Open() {
		return
	}
	if delay <= 0 {
		c.apply(next)
		return
	}

	c.pending = next
	gen := c.gen
	c.timer = c.sched.AfterFunc(delay, func() {
		if c.closed || gen != c.gen {
			log.Debug("visibility: dropped stale timer (gen %d, now %d)", gen, c.gen)
			return
		}
		c.timer = nil
		c.apply(next)
	})
}

// Close cancels any pending request. Further requests are ignored.
func (c *Coordinator) Close() {
	c.cancel()
	c.closed = true
}

func (c *Coordinator) apply(next bool) {
	if next == c.Open() {
		return
	}
	if c.controlled == nil {
		c.internal = next
	}
	if c.onChange != nil {
		c.onChange(next)
	}
}

func (c *Coordinator) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
