package watch

import (
	"anchor/align"
	"anchor/geom"
	"anchor/log"
	"anchor/placement"
	"anchor/sched"
	"time"
)

// FrameInterval is how long scroll and resize recomputes may lag behind
// the event that caused them. Events inside one interval share a pass.
const FrameInterval = 16 * time.Millisecond

// Loop drives the alignment engine for one popup. All methods must be
// called from the UI thread; the scheduler delivers frames there too.
type Loop struct {
	host    Host
	sched   sched.Scheduler
	onAlign func(align.Result)

	open     bool
	inMotion bool
	closed   bool

	target, popup Handle
	placement     string
	rule          placement.Rule
	table         placement.Table
	tableVersion  int
	alignPoint    *geom.Vec

	result align.Result
	flips  align.Flips
	last   *inputs

	frame sched.Timer
	subs  []func()
}

// inputs is the snapshot a pass was computed from.
type inputs struct {
	target, popup geom.Rect
	scale         geom.Scale
	bounds        align.Bounds
	rule          placement.Rule
	placement     string
	tableVersion  int
	pointer       bool
	alignPoint    geom.Vec
}

func (in inputs) equal(o inputs) bool {
	return in.target == o.target && in.popup == o.popup && in.scale == o.scale &&
		in.bounds.Equal(o.bounds) && in.rule == o.rule && in.placement == o.placement &&
		in.tableVersion == o.tableVersion && in.pointer == o.pointer && in.alignPoint == o.alignPoint
}

// New creates a loop. onAlign, if set, is called after every computed pass.
func New(host Host, s sched.Scheduler, onAlign func(align.Result)) *Loop {
	return &Loop{
		host:    host,
		sched:   s,
		onAlign: onAlign,
		rule:    placement.Neutral(),
	}
}

// Result returns the latest result. Ready is false while closed, unmounted
// or not yet measured.
func (l *Loop) Result() align.Result {
	return l.result
}

// SetOpen reports the merged open state. Opening attaches scroll listeners
// and aligns; closing detaches them and resets Ready.
func (l *Loop) SetOpen(open bool) {
	if l.closed || open == l.open {
		return
	}
	l.open = open

	if open {
		l.subscribe()
		l.last = nil
		l.Trigger()
		return
	}

	l.unsubscribe()
	l.cancelFrame()
	l.result.Ready = false
	l.last = nil
}

// SetTarget mounts the target element. The empty handle unmounts it and
// discards the result.
func (l *Loop) SetTarget(h Handle) {
	if l.closed || h == l.target {
		return
	}
	l.target = h
	if h == "" {
		l.discard()
		return
	}
	if l.open {
		// Scrollable ancestors depend on the target.
		l.unsubscribe()
		l.subscribe()
	}
	l.Trigger()
}

// SetPopup mounts the popup element. The empty handle unmounts it.
func (l *Loop) SetPopup(h Handle) {
	if l.closed || h == l.popup {
		return
	}
	l.popup = h
	if h == "" {
		l.discard()
		return
	}
	l.Trigger()
}

// TargetResized is called by the resize observer of the target.
func (l *Loop) TargetResized() {
	l.scheduleFrame()
}

// PopupResized is called by the resize observer of the popup.
func (l *Loop) PopupResized() {
	l.scheduleFrame()
}

// SetPlacement changes the placement name. The new position is computed
// before returning so the popup is never painted at the old one.
func (l *Loop) SetPlacement(name string) {
	if l.closed || name == l.placement {
		return
	}
	l.placement = name
	l.result.Ready = false
	l.Trigger()
}

// SetRule sets the resolved rule. Callers may pass an equal rule on every
// render; only a different value triggers a pass.
func (l *Loop) SetRule(r placement.Rule) {
	if l.closed || r == l.rule {
		return
	}
	l.rule = r
	l.Trigger()
}

// SetTable replaces the placement table used to name the effective placement.
func (l *Loop) SetTable(t placement.Table) {
	if l.closed {
		return
	}
	l.table = t
	l.tableVersion++
	l.Trigger()
}

// SetAlignPoint switches to pointer-anchored mode, or back when p is nil.
func (l *Loop) SetAlignPoint(p *geom.Vec) {
	if l.closed {
		return
	}
	if (p == nil && l.alignPoint == nil) || (p != nil && l.alignPoint != nil && *p == *l.alignPoint) {
		return
	}
	if p != nil {
		v := *p
		p = &v
	}
	l.alignPoint = p
	l.Trigger()
}

// SetInMotion gates recomputation while an enter/leave motion plays.
func (l *Loop) SetInMotion(inMotion bool) {
	l.inMotion = inMotion
}

// Trigger recomputes unless the popup is in motion or nothing changed.
func (l *Loop) Trigger() {
	l.run(false)
}

// Force recomputes regardless of the motion gate and the input cache.
func (l *Loop) Force() {
	l.run(true)
}

// Close cancels pending frames and listeners. The loop is inert afterwards.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.unsubscribe()
	l.cancelFrame()
	l.closed = true
	l.result = align.Result{}
}

func (l *Loop) run(force bool) {
	if l.closed || !l.open {
		return
	}
	if l.inMotion && !force {
		log.AlignTrace("skipped pass for %q: in motion", l.popup)
		log.GetProfiler().RecordPass(string(l.popup), log.PassGated, 0, false)
		return
	}

	req, in := l.request()
	if !force && l.last != nil && l.last.equal(in) {
		log.GetProfiler().RecordPass(string(l.popup), log.PassCached, 0, false)
		return
	}

	start := time.Now()
	res := align.Align(req)
	log.GetProfiler().RecordPass(string(l.popup), log.PassComputed, time.Since(start), res.FlippedX || res.FlippedY)
	l.result = res
	l.flips = res.Flips
	l.last = &in

	log.AlignTrace("%q -> %q ready=%t offset=(%g,%g) placement=%q flipped=(%t,%t)",
		l.target, l.popup, res.Ready, res.OffsetX, res.OffsetY, res.Placement, res.FlippedX, res.FlippedY)

	if l.onAlign != nil && res.Ready {
		l.onAlign(res)
	}
}

func (l *Loop) request() (align.Request, inputs) {
	req := align.Request{
		Rule:       l.rule,
		AlignPoint: l.alignPoint,
		Placement:  l.placement,
		Table:      l.table,
		Prev:       l.flips,
	}
	in := inputs{
		rule:         l.rule,
		placement:    l.placement,
		tableVersion: l.tableVersion,
	}
	if l.alignPoint != nil {
		in.pointer = true
		in.alignPoint = *l.alignPoint
	}

	if l.target != "" {
		if r, ok := l.host.Rect(l.target); ok {
			req.Target = &r
			in.target = r
		}
	}
	if l.popup != "" {
		if r, ok := l.host.Rect(l.popup); ok {
			scale := l.host.Scale(l.popup)
			if !scale.IsZero() && scale != geom.Identity {
				r = scale.Unscale(r)
			}
			req.Popup = &r
			req.Scale = &scale
			req.Bounds = l.host.Bounds(l.popup)
			in.popup = r
			in.scale = scale
			in.bounds = req.Bounds
		}
	}

	return req, in
}

// discard drops the result and the sticky flips of an unmounted element.
func (l *Loop) discard() {
	l.cancelFrame()
	l.result = align.Result{}
	l.flips = align.Flips{}
	l.last = nil
}

func (l *Loop) scheduleFrame() {
	if l.closed || !l.open || l.frame != nil {
		return
	}
	l.frame = l.sched.AfterFunc(FrameInterval, func() {
		l.frame = nil
		l.Trigger()
	})
}

func (l *Loop) cancelFrame() {
	if l.frame != nil {
		l.frame.Stop()
		l.frame = nil
	}
}

func (l *Loop) subscribe() {
	l.subs = append(l.subs, l.host.Subscribe(Window, l.scheduleFrame))
	if l.target == "" {
		return
	}
	for _, h := range l.host.Scrollers(l.target) {
		l.subs = append(l.subs, l.host.Subscribe(h, l.scheduleFrame))
	}
}

func (l *Loop) unsubscribe() {
	for _, cancel := range l.subs {
		if cancel != nil {
			cancel()
		}
	}
	l.subs = nil
}
