// Package geom provides the rectangle and anchor-point math used by the
// alignment engine. All values are float64 logical units; NaN and Inf are
// propagated, not sanitized.
package geom

import "math"

// Vec is a point or a displacement.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Size is a width/height pair as delivered by resize observation.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect represents a rectangle. X and Y are the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectAt places a size at a position.
func RectAt(pos Vec, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec {
	return Vec{X: r.X, Y: r.Y}
}

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Contains returns true if the point is inside the rectangle.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect returns true if other lies fully inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, the result has zero width or height
// positioned at the clamped corner.
func (r Rect) Intersect(other Rect) Rect {
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())

	return Rect{X: x, Y: y, Width: math.Max(0, right-x), Height: math.Max(0, bottom-y)}
}

// Clamp constrains v to [lo, hi]. When hi < lo, lo wins.
// A NaN v is returned unchanged.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Edges holds one value per side of a rectangle.
type Edges struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Overflow returns the signed distance by which r sticks out of region on
// each side. Positive means overflow.
func Overflow(r, region Rect) Edges {
	return Edges{
		Left:   region.X - r.X,
		Top:    region.Y - r.Y,
		Right:  r.Right() - region.Right(),
		Bottom: r.Bottom() - region.Bottom(),
	}
}

// Any reports whether any side overflows.
func (e Edges) Any() bool {
	return e.Left > 0 || e.Top > 0 || e.Right > 0 || e.Bottom > 0
}

// Horizontal reports whether the left or right side overflows.
func (e Edges) Horizontal() bool {
	return e.Left > 0 || e.Right > 0
}

// Vertical reports whether the top or bottom side overflows.
func (e Edges) Vertical() bool {
	return e.Top > 0 || e.Bottom > 0
}

// Visible returns how much of the span [start, start+size) lies inside
// [lo, hi). Never negative.
func Visible(start, size, lo, hi float64) float64 {
	return math.Max(0, math.Min(start+size, hi)-math.Max(start, lo))
}

// Round rounds half away from negative infinity, matching the rounding
// browsers apply to layout offsets (-0.5 rounds to 0, 0.5 rounds to 1).
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}
