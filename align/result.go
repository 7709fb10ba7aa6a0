package align

import (
	"anchor/geom"
	"anchor/placement"
)

// Side names the popup edge an arrow decoration sits on.
type Side string

const (
	SideNone   Side = ""
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Flips remembers which flips the previous pass applied. Feeding it back
// into the next Request keeps a flipped popup flipped while the flipped
// position is at least as good, so it does not flicker between sides.
type Flips struct {
	BottomToTop bool `json:"bottomToTop,omitempty"`
	TopToBottom bool `json:"topToBottom,omitempty"`
	RightToLeft bool `json:"rightToLeft,omitempty"`
	LeftToRight bool `json:"leftToRight,omitempty"`
}

// Request is one alignment pass.
type Request struct {
	// Target and Popup are nil until measured. Popup is measured at rest,
	// i.e. placed at the origin of its positioning container.
	Target *geom.Rect
	Popup  *geom.Rect
	// Container is the popup's positioning container, used for the
	// right/bottom offsets. Defaults to Bounds.Visible.
	Container *geom.Rect
	Bounds    Bounds
	Rule      placement.Rule
	// AlignPoint switches to pointer-anchored mode.
	AlignPoint *geom.Vec
	// Scale of the popup as detected by the measurement layer; nil means
	// untransformed. A zero axis means the popup is not visible.
	Scale *geom.Scale

	// Placement and Table are only used to name the effective placement.
	Placement string
	Table     placement.Table

	Prev Flips
}

// Result is the outcome of a pass.
type Result struct {
	Ready bool `json:"ready"`

	OffsetX      float64 `json:"offsetX"`
	OffsetY      float64 `json:"offsetY"`
	OffsetRight  float64 `json:"offsetRight"`
	OffsetBottom float64 `json:"offsetBottom"`

	ArrowX float64 `json:"arrowX"`
	ArrowY float64 `json:"arrowY"`
	// Arrow is the popup edge carrying the arrow when the rule has AutoArrow.
	Arrow Side `json:"arrow,omitempty"`

	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`

	// Placement is the effective placement name after flips. It is
	// presentation metadata only.
	Placement string `json:"placement,omitempty"`
	FlippedX  bool   `json:"flippedX"`
	FlippedY  bool   `json:"flippedY"`

	// Rule is the effective rule after flips. A flip on an axis where the
	// target anchor is centred places the popup against the target's edge,
	// not the centre, so Rule then names the side the popup moved to rather
	// than reproducing its offset.
	Rule  placement.Rule `json:"rule"`
	Flips Flips          `json:"flips"`
}

// Position returns the popup's top-left corner for a popup measured at rest
// at origin.
func (r Result) Position(origin geom.Vec) geom.Vec {
	return geom.Vec{X: origin.X + r.OffsetX, Y: origin.Y + r.OffsetY}
}
