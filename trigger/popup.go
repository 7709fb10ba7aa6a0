// Package trigger ties one popup together: its open state, the recompute
// loop, the motion handshake and the pointer wiring around them.
package trigger

import (
	"anchor/align"
	"anchor/geom"
	"anchor/log"
	"anchor/placement"
	"anchor/registry"
	"anchor/sched"
	"anchor/visibility"
	"anchor/watch"
	"strings"
)

// Popup is one popup instance. Like the rest of the runtime it is owned by
// the UI thread.
type Popup struct {
	opts  Options
	host  watch.Host
	id    string
	trace *log.ComponentTrace

	vis      *visibility.Coordinator
	loop     *watch.Loop
	children *registry.Registry

	open     bool
	inMotion bool
	phase    Phase
	inPopup  bool
	pointer  *geom.Vec
	closed   bool
}

// New creates a popup and mounts its target and popup elements.
func New(host watch.Host, s sched.Scheduler, opts Options) *Popup {
	opts = opts.withDefaults()

	p := &Popup{
		opts:     opts,
		host:     host,
		id:       opts.ID,
		trace:    log.TraceComponent("popup " + opts.ID),
		children: registry.New(opts.Parent),
	}
	p.vis = visibility.New(s, opts.DefaultOpen, p.onRequest)
	p.vis.SetControlled(opts.Open)
	p.loop = watch.New(host, s, p.onAlign)

	p.loop.SetTable(opts.Table)
	p.loop.SetRule(p.rule())
	p.loop.SetPlacement(opts.Placement)
	p.loop.SetTarget(opts.Target)
	p.loop.SetPopup(opts.Popup)

	p.open = p.vis.Open()
	if p.open && opts.Motion {
		p.startMotion()
	}
	p.loop.SetOpen(p.open)
	return p
}

// ID returns the popup id.
func (p *Popup) ID() string {
	return p.id
}

// Registry is the registry nested popups should use as their Parent.
func (p *Popup) Registry() *registry.Registry {
	return p.children
}

// Open returns the merged open state.
func (p *Popup) Open() bool {
	return p.open
}

// State returns the lifecycle state, including pending delayed requests.
func (p *Popup) State() visibility.State {
	return p.vis.State()
}

// Result returns the latest alignment result.
func (p *Popup) Result() align.Result {
	return p.loop.Result()
}

// TriggerOpen requests an open change after delay; see visibility.Coordinator.
func (p *Popup) TriggerOpen(next bool, delay float64) {
	p.vis.TriggerOpen(next, seconds(delay))
	p.sync()
}

// SetOpen sets the controlled open flag; nil returns to uncontrolled mode.
func (p *Popup) SetOpen(open *bool) {
	if p.closed {
		return
	}
	p.vis.SetControlled(open)
	p.sync()
}

// SetPlacement changes the placement name and realigns before returning.
func (p *Popup) SetPlacement(name string) {
	if p.closed {
		return
	}
	p.opts.Placement = name
	p.loop.SetRule(p.rule())
	p.loop.SetPlacement(name)
}

// SetRule sets or clears the explicit rule.
func (p *Popup) SetRule(r *placement.Rule) {
	if p.closed {
		return
	}
	p.opts.Rule = r
	p.loop.SetRule(p.rule())
}

// SetTable replaces the placement table.
func (p *Popup) SetTable(t placement.Table) {
	if p.closed {
		return
	}
	if t == nil {
		t = placement.Builtins()
	}
	p.opts.Table = t
	p.loop.SetRule(p.rule())
	p.loop.SetTable(t)
}

// Rule returns the rule the popup is currently aligned with, before flips.
func (p *Popup) Rule() placement.Rule {
	return p.rule()
}

// ForceAlign realigns now, bypassing the input cache. It is a no-op while a
// motion is playing.
func (p *Popup) ForceAlign() {
	if p.closed || p.inMotion {
		return
	}
	p.loop.Force()
}

// TargetResized is called when the target element changes size or moves.
func (p *Popup) TargetResized() {
	p.loop.TargetResized()
}

// PopupResized is called when the popup element changes size.
func (p *Popup) PopupResized() {
	p.loop.PopupResized()
}

// Close tears the popup down: pending timers and frames are cancelled and
// the popup leaves its parent's registry.
func (p *Popup) Close() {
	if p.closed {
		return
	}
	p.vis.Close()
	p.loop.Close()
	if p.opts.Parent != nil {
		p.opts.Parent.Unregister(p.id)
	}
	p.closed = true
	p.trace.Event("closed")
}

// ClassName returns the styling classes for the current alignment.
func (p *Popup) ClassName() string {
	res := p.loop.Result()
	var classes []string
	if c := placement.ClassName(p.opts.ClassPrefix, res.Placement); c != "" {
		classes = append(classes, c)
	}
	if p.opts.ClassFromAlign != nil && res.Ready {
		if c := p.opts.ClassFromAlign(res.Rule); c != "" {
			classes = append(classes, c)
		}
	}
	return strings.Join(classes, " ")
}

func (p *Popup) rule() placement.Rule {
	return placement.Resolve(p.opts.Rule, p.opts.Placement, p.opts.Table, placement.Neutral())
}

// onRequest runs when the coordinator changes the open state, possibly from
// a timer.
func (p *Popup) onRequest(open bool) {
	p.trace.Event("open requested", open)
	if p.opts.OnOpenChange != nil {
		p.opts.OnOpenChange(open)
	}
	p.sync()
}

// sync pushes the merged open state into the loop.
func (p *Popup) sync() {
	if p.closed {
		return
	}
	open := p.vis.Open()
	if open == p.open {
		return
	}
	p.open = open
	log.Debug("popup %s: open=%t", p.id, open)

	if p.opts.Motion {
		p.startMotion()
	}
	p.loop.SetOpen(open)
	if !open && p.opts.Parent != nil {
		p.opts.Parent.Unregister(p.id)
	}
	if !p.opts.Motion {
		p.afterMotion(open)
	}
}

func (p *Popup) onAlign(res align.Result) {
	if p.opts.Parent != nil {
		if r, ok := p.alignedRect(); ok {
			p.opts.Parent.Register(p.id, r)
		}
	}
	if p.opts.OnAlign != nil {
		p.opts.OnAlign(res)
	}
}

// alignedRect is the popup rect at its aligned position.
func (p *Popup) alignedRect() (geom.Rect, bool) {
	res := p.loop.Result()
	if !res.Ready || p.opts.Popup == "" {
		return geom.Rect{}, false
	}
	rest, ok := p.host.Rect(p.opts.Popup)
	if !ok {
		return geom.Rect{}, false
	}
	return geom.RectAt(res.Position(rest.Origin()), rest.Size()), true
}
