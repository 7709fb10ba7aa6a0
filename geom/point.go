package geom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Point is an anchor token: a vertical code (t, c, b) followed by a
// horizontal code (l, c, r). "tl" is the top-left corner, "cc" the centre.
type Point string

const (
	TopLeft      Point = "tl"
	TopCenter    Point = "tc"
	TopRight     Point = "tr"
	CenterLeft   Point = "cl"
	Center       Point = "cc"
	CenterRight  Point = "cr"
	BottomLeft   Point = "bl"
	BottomCenter Point = "bc"
	BottomRight  Point = "br"
)

var pointNames = map[string]Point{
	"top-left":      TopLeft,
	"top-center":    TopCenter,
	"top":           TopCenter,
	"top-right":     TopRight,
	"center-left":   CenterLeft,
	"left":          CenterLeft,
	"center":        Center,
	"center-right":  CenterRight,
	"right":         CenterRight,
	"bottom-left":   BottomLeft,
	"bottom-center": BottomCenter,
	"bottom":        BottomCenter,
	"bottom-right":  BottomRight,
}

// ParsePoint accepts both the two-letter form ("bc") and the long form
// ("bottom-center", "bottom", "center").
func ParsePoint(s string) (Point, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := pointNames[s]; ok {
		return p, nil
	}
	if len(s) == 2 && strings.ContainsRune("tcb", rune(s[0])) && strings.ContainsRune("lcr", rune(s[1])) {
		return Point(s), nil
	}
	return "", fmt.Errorf("invalid anchor point %q", s)
}

// Vertical returns the vertical code: 't', 'c' or 'b'.
func (p Point) Vertical() byte {
	if len(p) < 1 {
		return 'c'
	}
	return p[0]
}

// Horizontal returns the horizontal code: 'l', 'c' or 'r'.
func (p Point) Horizontal() byte {
	if len(p) < 2 {
		return 'c'
	}
	return p[1]
}

var mirror = map[byte]byte{'t': 'b', 'b': 't', 'l': 'r', 'r': 'l'}

// FlipVertical mirrors the vertical code (t <-> b). Centre stays put.
func (p Point) FlipVertical() Point {
	v := p.Vertical()
	if m, ok := mirror[v]; ok {
		v = m
	}
	return Point([]byte{v, p.Horizontal()})
}

// FlipHorizontal mirrors the horizontal code (l <-> r). Centre stays put.
func (p Point) FlipHorizontal() Point {
	h := p.Horizontal()
	if m, ok := mirror[h]; ok {
		h = m
	}
	return Point([]byte{p.Vertical(), h})
}

// Name returns the long form of the point, e.g. "bottom-center".
func (p Point) Name() string {
	var v, h string
	switch p.Vertical() {
	case 't':
		v = "top"
	case 'b':
		v = "bottom"
	default:
		v = "center"
	}
	switch p.Horizontal() {
	case 'l':
		h = "left"
	case 'r':
		h = "right"
	default:
		h = "center"
	}
	if v == "center" && h == "center" {
		return "center"
	}
	return v + "-" + h
}

// UnmarshalText implements encoding.TextUnmarshaler so points can be written
// in either form in JSON and TOML files.
func (p *Point) UnmarshalText(text []byte) error {
	parsed, err := ParsePoint(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON writes the two-letter form.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// AnchorPoint resolves an anchor token to absolute coordinates on r.
// Unknown codes resolve to the centre of that axis.
func AnchorPoint(r Rect, p Point) Vec {
	var out Vec

	switch p.Horizontal() {
	case 'l':
		out.X = r.X
	case 'r':
		out.X = r.X + r.Width
	default:
		out.X = r.X + r.Width/2
	}

	switch p.Vertical() {
	case 't':
		out.Y = r.Y
	case 'b':
		out.Y = r.Y + r.Height
	default:
		out.Y = r.Y + r.Height/2
	}

	return out
}
