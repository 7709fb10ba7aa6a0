package align

import (
	"anchor/geom"
	"anchor/placement"
)

// Bounds describes the space around a popup as seen by the measurement
// layer. Visible is the viewport; Scroll is the full scrollable area in the
// same coordinates (its origin is negative once scrolled); Clips are the
// visible rects of the scrollable ancestors, each of which cuts the region.
type Bounds struct {
	Visible geom.Rect   `json:"visible"`
	Scroll  geom.Rect   `json:"scroll"`
	Clips   []geom.Rect `json:"clips,omitempty"`
}

// Viewport returns bounds for a plain viewport with nothing scrolled.
func Viewport(r geom.Rect) Bounds {
	return Bounds{Visible: r, Scroll: r}
}

// Equal compares two bounds including their clip lists.
func (b Bounds) Equal(o Bounds) bool {
	if b.Visible != o.Visible || b.Scroll != o.Scroll || len(b.Clips) != len(o.Clips) {
		return false
	}
	for i := range b.Clips {
		if b.Clips[i] != o.Clips[i] {
			return false
		}
	}
	return true
}

func (b Bounds) clip(r geom.Rect) geom.Rect {
	for _, c := range b.Clips {
		r = r.Intersect(c)
	}
	return r
}

// regions holds the three areas the engine works with.
type regions struct {
	// area is the containing region: candidates are scored and shifted against it.
	area geom.Rect
	// check decides whether a flip should be attempted.
	check geom.Rect
	// visible is the clipped viewport, used to break ties for visibleFirst.
	visible geom.Rect
}

// Containing derives the containing region for a policy.
func (b Bounds) Containing(policy placement.Region) geom.Rect {
	return b.regions(policy).area
}

func (b Bounds) regions(policy placement.Region) regions {
	visible := b.clip(b.Visible)
	scroll := b.Scroll
	if scroll == (geom.Rect{}) {
		scroll = b.Visible
	}
	scroll = b.clip(scroll)

	switch policy.Normalize() {
	case placement.RegionScroll:
		return regions{area: scroll, check: scroll, visible: visible}
	case placement.RegionVisibleFirst:
		return regions{area: scroll, check: visible, visible: visible}
	default:
		return regions{area: visible, check: visible, visible: visible}
	}
}
