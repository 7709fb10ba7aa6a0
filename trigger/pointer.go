package trigger

import (
	"anchor/geom"
	"strings"
	"time"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// TargetEnter opens the popup after the enter delay. In pointer mode the
// popup is anchored at p.
func (p *Popup) TargetEnter(at geom.Vec) {
	if p.closed {
		return
	}
	p.PointerAt(at)
	p.vis.TriggerOpen(true, p.opts.MouseEnterDelay)
	p.sync()
}

// TargetLeave closes the popup after the leave delay, unless the pointer
// moved into the popup.
func (p *Popup) TargetLeave() {
	if p.closed || p.inPopup {
		return
	}
	p.vis.TriggerOpen(false, *p.opts.MouseLeaveDelay)
	p.sync()
}

// PopupEnter keeps the popup open while the pointer is over it.
func (p *Popup) PopupEnter() {
	if p.closed {
		return
	}
	p.inPopup = true
	p.vis.TriggerOpen(true, p.opts.MouseEnterDelay)
	p.sync()
}

// PopupLeave closes the popup after the leave delay.
func (p *Popup) PopupLeave() {
	if p.closed {
		return
	}
	p.inPopup = false
	p.vis.TriggerOpen(false, *p.opts.MouseLeaveDelay)
	p.sync()
}

// PointerAt records the pointer position. It only affects alignment in
// pointer mode.
func (p *Popup) PointerAt(at geom.Vec) {
	if p.closed || !p.opts.AlignPoint {
		return
	}
	v := at
	p.pointer = &v
	p.loop.SetAlignPoint(p.pointer)
}

// InPopupOrChild reports whether at lies inside the target, the aligned
// popup or any nested popup.
func (p *Popup) InPopupOrChild(at geom.Vec) bool {
	if p.opts.Target != "" {
		if r, ok := p.host.Rect(p.opts.Target); ok && r.Contains(at) {
			return true
		}
	}
	if r, ok := p.alignedRect(); ok && r.Contains(at) {
		return true
	}
	return p.children.Contains(at)
}

// ClickOutside handles a click at the given position. It closes the popup
// when the click is outside and either ClickToHide is set or a closable mask
// was clicked, and reports whether it did.
func (p *Popup) ClickOutside(at geom.Vec) bool {
	if p.closed || !p.open || p.InPopupOrChild(at) {
		return false
	}
	if !p.opts.ClickToHide && !(p.opts.Mask && *p.opts.MaskClosable) {
		return false
	}
	p.vis.TriggerOpen(false, 0)
	p.sync()
	return true
}

// StretchSize holds the popup dimensions derived from the target. Zero means
// the dimension is not stretched.
type StretchSize struct {
	Width     float64
	MinWidth  float64
	Height    float64
	MinHeight float64
}

// Stretch returns the popup size constraints requested by Options.Stretch,
// in the popup's unscaled units.
func (p *Popup) Stretch() StretchSize {
	var s StretchSize
	if p.opts.Stretch == "" || p.opts.Target == "" {
		return s
	}
	r, ok := p.host.Rect(p.opts.Target)
	if !ok {
		return s
	}

	res := p.loop.Result()
	w, h := r.Width, r.Height
	if res.ScaleX != 0 {
		w /= res.ScaleX
	}
	if res.ScaleY != 0 {
		h /= res.ScaleY
	}

	if strings.Contains(p.opts.Stretch, "height") {
		s.Height = h
	} else if strings.Contains(p.opts.Stretch, "minHeight") {
		s.MinHeight = h
	}
	if strings.Contains(p.opts.Stretch, "width") {
		s.Width = w
	} else if strings.Contains(p.opts.Stretch, "minWidth") {
		s.MinWidth = w
	}
	return s
}
