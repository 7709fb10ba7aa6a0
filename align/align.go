// Package align implements the alignment engine: given a target, a popup, the
// space around them and an alignment rule, it computes where the popup goes.
package align

import (
	"anchor/geom"
	"anchor/placement"
	"math"
)

// span is one axis of a rectangle.
type span struct {
	lo, hi float64
}

func xSpan(r geom.Rect) span { return span{lo: r.X, hi: r.Right()} }
func ySpan(r geom.Rect) span { return span{lo: r.Y, hi: r.Bottom()} }

// axis carries everything one axis of the adjustment needs, so X and Y are
// computed by the same code and cannot influence each other.
type axis struct {
	near, far byte // 't','b' or 'l','r'

	popupCode, targetCode byte
	popupStart, popupSize float64
	targetStart, targetSize float64
	popupOffset             float64

	area, check, visible span
	visibleFirst         bool

	adjust bool
	shift  placement.Shift
}

func (a axis) visibleLen(offset float64, s span) float64 {
	return geom.Visible(a.popupStart+offset, a.popupSize, s.lo, s.hi)
}

// better reports whether moving from offset to candidate does not shrink the
// visible part of the popup. Ties go to the candidate, so a previous flip
// that is still as good is kept; visibleFirst breaks ties on the viewport.
func (a axis) better(offset, candidate float64) bool {
	orig := a.visibleLen(offset, a.area)
	next := a.visibleLen(candidate, a.area)
	if next != orig {
		return next > orig
	}
	if a.visibleFirst {
		return a.visibleLen(candidate, a.visible) >= a.visibleLen(offset, a.visible)
	}
	return true
}

// flip tries to mirror the popup to the other side of the target.
// nearToFar/farToNear carry the sticky memory in and out.
func (a axis) flip(offset float64, nearToFar, farToNear bool) (float64, bool, bool, bool) {
	start := a.popupStart + offset
	end := start + a.popupSize
	same := a.popupCode == a.targetCode
	flipped := false

	// Popup hangs from its near edge and runs off the far side.
	if a.popupCode == a.near && (end > a.check.hi || nearToFar) {
		candidate := a.targetStart - (a.popupStart + a.popupSize) - a.popupOffset
		if same {
			candidate = offset - (a.popupSize - a.targetSize)
		}
		nearToFar = a.better(offset, candidate)
		if nearToFar {
			offset = candidate
			flipped = true
		}
	}

	// Popup hangs from its far edge and runs off the near side.
	if a.popupCode == a.far && (start < a.check.lo || farToNear) {
		candidate := a.targetStart + a.targetSize - a.popupStart - a.popupOffset
		if same {
			candidate = offset + (a.popupSize - a.targetSize)
		}
		farToNear = a.better(offset, candidate)
		if farToNear {
			offset = candidate
			flipped = true
		}
	}

	return offset, flipped, nearToFar, farToNear
}

// shiftInto translates the popup by the smallest delta that brings it back
// into the containing region. A popup larger than the region is pinned to
// the near edge. With an explicit shift the popup follows a target that has
// left the region by more than the margin.
func (a axis) shiftInto(offset float64) float64 {
	if !a.adjust && !a.shift.Enabled {
		return offset
	}

	start := a.popupStart + offset
	end := start + a.popupSize
	lo, hi := a.area.lo, a.area.hi

	switch {
	case a.popupSize > hi-lo:
		offset += lo - start
	case start < lo:
		offset += lo - start
	case end > hi:
		offset += hi - end
	}

	if a.shift.Enabled {
		if targetEnd := a.targetStart + a.targetSize; targetEnd < lo+a.shift.Margin {
			offset += targetEnd - lo - a.shift.Margin
		}
		if a.targetStart > hi-a.shift.Margin {
			offset += a.targetStart - hi + a.shift.Margin
		}
	}

	return offset
}

// Align runs one alignment pass. It never fails: with a missing measurement
// or a zero scale it returns a zero Result with Ready unset. NaN and Inf in
// the inputs are not validated and propagate into the offsets.
func Align(req Request) Result {
	if req.Target == nil || req.Popup == nil {
		return Result{}
	}

	scale := geom.Identity
	if req.Scale != nil {
		scale = *req.Scale
	}
	if scale.IsZero() {
		return Result{}
	}

	rule := req.Rule
	rule.Region = rule.Region.Normalize()
	popup := *req.Popup
	target := *req.Target
	if req.AlignPoint != nil {
		target = geom.Rect{X: req.AlignPoint.X, Y: req.AlignPoint.Y}
	}

	popupOffset := geom.Vec{
		X: rule.Offset.X.Resolve(popup.Width),
		Y: rule.Offset.Y.Resolve(popup.Height),
	}
	target.X -= rule.TargetOffset.X.Resolve(target.Width)
	target.Y -= rule.TargetOffset.Y.Resolve(target.Height)

	reg := req.Bounds.regions(rule.Region)
	visibleFirst := rule.Region == placement.RegionVisibleFirst

	targetPoint := geom.AnchorPoint(target, rule.TargetAnchor)
	popupPoint := geom.AnchorPoint(popup, rule.PopupAnchor)
	offsetX := targetPoint.X - popupPoint.X + popupOffset.X
	offsetY := targetPoint.Y - popupPoint.Y + popupOffset.Y

	ax := axis{
		near: 'l', far: 'r',
		popupCode: rule.PopupAnchor.Horizontal(), targetCode: rule.TargetAnchor.Horizontal(),
		popupStart: popup.X, popupSize: popup.Width,
		targetStart: target.X, targetSize: target.Width,
		popupOffset: popupOffset.X,
		area:        xSpan(reg.area), check: xSpan(reg.check), visible: xSpan(reg.visible),
		visibleFirst: visibleFirst,
		adjust:       rule.Overflow.AdjustX,
		shift:        rule.Overflow.ShiftX,
	}
	ay := axis{
		near: 't', far: 'b',
		popupCode: rule.PopupAnchor.Vertical(), targetCode: rule.TargetAnchor.Vertical(),
		popupStart: popup.Y, popupSize: popup.Height,
		targetStart: target.Y, targetSize: target.Height,
		popupOffset: popupOffset.Y,
		area:        ySpan(reg.area), check: ySpan(reg.check), visible: ySpan(reg.visible),
		visibleFirst: visibleFirst,
		adjust:       rule.Overflow.AdjustY,
		shift:        rule.Overflow.ShiftY,
	}

	effective := rule
	var flips Flips
	var flippedX, flippedY bool

	if ay.adjust {
		offsetY, flippedY, flips.BottomToTop, flips.TopToBottom = ay.flip(offsetY, req.Prev.BottomToTop, req.Prev.TopToBottom)
		if flippedY {
			effective = effective.FlipVertical()
		}
	}
	if ax.adjust {
		offsetX, flippedX, flips.RightToLeft, flips.LeftToRight = ax.flip(offsetX, req.Prev.RightToLeft, req.Prev.LeftToRight)
		if flippedX {
			effective = effective.FlipHorizontal()
		}
	}

	offsetX = ax.shiftInto(offsetX)
	offsetY = ay.shiftInto(offsetY)

	popupLeft := popup.X + offsetX
	popupTop := popup.Y + offsetY
	arrowX := arrowAlong(popupLeft, popup.Width, target.X, target.Width, rule.ArrowMargin)
	arrowY := arrowAlong(popupTop, popup.Height, target.Y, target.Height, rule.ArrowMargin)

	container := req.Bounds.Visible
	if req.Container != nil {
		container = *req.Container
	}
	offsetRight := container.Right() - (popupLeft + popup.Width)
	offsetBottom := container.Bottom() - (popupTop + popup.Height)

	if scale.X == 1 {
		offsetX = geom.Round(offsetX)
		offsetRight = geom.Round(offsetRight)
	}
	if scale.Y == 1 {
		offsetY = geom.Round(offsetY)
		offsetBottom = geom.Round(offsetBottom)
	}

	res := Result{
		Ready:        true,
		OffsetX:      offsetX,
		OffsetY:      offsetY,
		OffsetRight:  offsetRight,
		OffsetBottom: offsetBottom,
		ArrowX:       arrowX,
		ArrowY:       arrowY,
		ScaleX:       scale.X,
		ScaleY:       scale.Y,
		FlippedX:     flippedX,
		FlippedY:     flippedY,
		Rule:         effective,
		Flips:        flips,
	}
	if rule.AutoArrow {
		res.Arrow = arrowSide(effective)
	}
	if name, ok := placement.Match(req.Table, req.Placement, effective, req.AlignPoint != nil); ok {
		res.Placement = name
	}

	return res
}

// arrowAlong centres the arrow on the overlap of popup and target along one
// axis, relative to the popup, and keeps it margin away from the corners.
func arrowAlong(popupStart, popupSize, targetStart, targetSize, margin float64) float64 {
	lo := math.Max(popupStart, targetStart)
	hi := math.Min(popupStart+popupSize, targetStart+targetSize)
	pos := (lo+hi)/2 - popupStart

	if popupSize < 2*margin {
		return popupSize / 2
	}
	return geom.Clamp(pos, margin, popupSize-margin)
}

// arrowSide picks the popup edge facing the target. When popup and target
// share an anchor code on an axis the popup overlaps the target there and the
// arrow slides along that axis instead.
func arrowSide(r placement.Rule) Side {
	pv, tv := r.PopupAnchor.Vertical(), r.TargetAnchor.Vertical()
	if pv != tv {
		switch pv {
		case 't':
			return SideTop
		case 'b':
			return SideBottom
		}
	}

	ph, th := r.PopupAnchor.Horizontal(), r.TargetAnchor.Horizontal()
	if ph != th {
		switch ph {
		case 'l':
			return SideLeft
		case 'r':
			return SideRight
		}
	}

	return SideNone
}
