package geom

import "math"

// Scale is the rendered-to-layout ratio of an element on each axis.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the scale of an untransformed element.
var Identity = Scale{X: 1, Y: 1}

// DetectScale compares the rendered (visual) size of an element with its
// layout size. A scale(0.6) transform yields 0.6. Ratios are rounded to three
// decimals. A zero layout dimension yields 0 on that axis, which callers
// treat as "not visible".
func DetectScale(visual, layout Size) Scale {
	return Scale{X: ratio(visual.Width, layout.Width), Y: ratio(visual.Height, layout.Height)}
}

func ratio(visual, layout float64) float64 {
	if layout == 0 {
		return 0
	}
	return math.Round(visual/layout*1000) / 1000
}

// IsZero reports whether either axis has zero scale.
func (s Scale) IsZero() bool {
	return s.X == 0 || s.Y == 0
}

// Unscale recovers the layout size of a measured rect by dividing its
// dimensions by the scale. The position is left untouched.
func (s Scale) Unscale(r Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width / s.X, Height: r.Height / s.Y}
}
