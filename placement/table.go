package placement

import (
	"anchor/geom"
	"fmt"
	"sort"
)

// DefaultGap is the distance between target and popup in the built-in
// placements, in cells.
const DefaultGap = 1

// Table maps placement names to rules.
type Table map[string]Rule

// Builtins returns a fresh copy of the built-in placements.
func Builtins() Table {
	adjust := Overflow{AdjustX: true, AdjustY: true}
	rule := func(popup, target geom.Point, dx, dy float64) Rule {
		return Rule{
			PopupAnchor:  popup,
			TargetAnchor: target,
			Offset:       XY(dx, dy),
			Overflow:     adjust,
			Region:       RegionVisible,
			AutoArrow:    true,
		}
	}

	const g = DefaultGap
	return Table{
		"top":          rule(geom.BottomCenter, geom.TopCenter, 0, -g),
		"top-left":     rule(geom.BottomLeft, geom.TopLeft, 0, -g),
		"top-right":    rule(geom.BottomRight, geom.TopRight, 0, -g),
		"bottom":       rule(geom.TopCenter, geom.BottomCenter, 0, g),
		"bottom-left":  rule(geom.TopLeft, geom.BottomLeft, 0, g),
		"bottom-right": rule(geom.TopRight, geom.BottomRight, 0, g),
		"left":         rule(geom.CenterRight, geom.CenterLeft, -g, 0),
		"left-top":     rule(geom.TopRight, geom.TopLeft, -g, 0),
		"left-bottom":  rule(geom.BottomRight, geom.BottomLeft, -g, 0),
		"right":        rule(geom.CenterLeft, geom.CenterRight, g, 0),
		"right-top":    rule(geom.TopLeft, geom.TopRight, g, 0),
		"right-bottom": rule(geom.BottomLeft, geom.BottomRight, g, 0),
	}
}

// Names returns the placement names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new table with the entries of other layered over t.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for name, r := range t {
		out[name] = r
	}
	for name, r := range other {
		out[name] = r
	}
	return out
}

// Validate checks every rule in the table.
func (t Table) Validate() error {
	for _, name := range t.Names() {
		if err := t[name].Validate(); err != nil {
			return fmt.Errorf("placement %q: %w", name, err)
		}
	}
	return nil
}

// Resolve picks the rule for a popup. An explicit rule always wins; otherwise
// the named table entry is used; otherwise fallback. Unknown names are not an
// error since placement names come from UI authors.
func Resolve(explicit *Rule, name string, table Table, fallback Rule) Rule {
	if explicit != nil {
		return *explicit
	}
	if r, ok := table[name]; ok && name != "" {
		return r
	}
	return fallback
}

// Match finds the placement whose anchors equal the given rule's, so a
// flipped rule can be reported under its own name. preferred is returned when
// it matches. In pointer mode only the popup anchor is compared, since the
// target anchor collapses to the pointer.
func Match(table Table, preferred string, r Rule, pointOnly bool) (string, bool) {
	eq := func(o Rule) bool {
		if pointOnly {
			return o.PopupAnchor == r.PopupAnchor
		}
		return o.SameAnchors(r)
	}

	if p, ok := table[preferred]; ok && eq(p) {
		return preferred, true
	}
	for _, name := range table.Names() {
		if eq(table[name]) {
			return name, true
		}
	}
	return "", false
}

// ClassName returns the styling hook for a placement, e.g.
// "popup-placement-top". Empty names yield an empty class.
func ClassName(prefix, name string) string {
	if name == "" {
		return ""
	}
	return prefix + "-placement-" + name
}
