package inspect

import (
	"anchor/geom"
	"math"
)

// Node is one component or stage element in the inspection tree.
type Node struct {
	// Type is the component type, e.g. "Stage", "Element" or "Inspector".
	Type string `json:"type"`

	// ID is the element handle for stage elements.
	ID string `json:"id,omitempty"`

	Bounds Bounds `json:"bounds"`

	// Visible is false for elements that exist but are not drawn, such as
	// a closed popup or a target scrolled out of the stage.
	Visible bool `json:"visible"`

	State map[string]interface{} `json:"state,omitempty"`

	Styles *StyleInfo `json:"styles,omitempty"`

	Children []*Node `json:"children,omitempty"`

	// Clipped is set when the element's bounds reach outside its parent.
	Clipped bool `json:"clipped,omitempty"`
}

// Bounds are in terminal cells.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (b Bounds) contains(o Bounds) bool {
	return o.X >= b.X && o.Y >= b.Y && o.X+o.Width <= b.X+b.Width && o.Y+o.Height <= b.Y+b.Height
}

// StyleInfo is what a lipgloss style renders as. Padding is
// [top, right, bottom, left].
type StyleInfo struct {
	Foreground    string   `json:"foreground,omitempty"`
	Background    string   `json:"background,omitempty"`
	Bold          bool     `json:"bold,omitempty"`
	Italic        bool     `json:"italic,omitempty"`
	Underline     bool     `json:"underline,omitempty"`
	Border        string   `json:"border,omitempty"`
	BorderColor   string   `json:"border_color,omitempty"`
	Padding       []int    `json:"padding,omitempty"`
	AppliedStyles []string `json:"applied_styles,omitempty"`
}

// NewNode returns a visible node with no state.
func NewNode(nodeType string) *Node {
	return &Node{Type: nodeType, Visible: true, State: map[string]interface{}{}}
}

// The With methods set one field and return n for chaining.

func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithRect sets the bounds from a layout rect, snapped outwards to whole
// cells.
func (n *Node) WithRect(r geom.Rect) *Node {
	x, y := math.Floor(r.X), math.Floor(r.Y)
	return n.WithBounds(int(x), int(y), int(math.Ceil(r.Right())-x), int(math.Ceil(r.Bottom())-y))
}

func (n *Node) WithVisible(v bool) *Node {
	n.Visible = v
	return n
}

func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = map[string]interface{}{}
	}
	n.State[key] = value
	return n
}

func (n *Node) WithStyles(styles *StyleInfo) *Node {
	n.Styles = styles
	return n
}

// AddChild adds a child node and returns the parent for chaining. The child
// is marked clipped when it does not fit in the parent.
func (n *Node) AddChild(child *Node) *Node {
	child.Clipped = !n.Bounds.contains(child.Bounds)
	n.Children = append(n.Children, child)
	return n
}

// Find returns the first node in the tree with the given ID.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}
