// Package placement resolves symbolic placement names into alignment rules.
package placement

import (
	"anchor/geom"
	"encoding/json"
	"fmt"
	"strings"
)

// Region selects the containing region the popup must not overflow.
type Region string

const (
	// RegionVisible keeps the popup inside the viewport.
	RegionVisible Region = "visible"
	// RegionScroll keeps the popup inside the whole scrollable area.
	RegionScroll Region = "scroll"
	// RegionVisibleFirst scores candidates on the scrollable area but checks
	// overflow against the viewport, so visible placements win ties.
	RegionVisibleFirst Region = "visibleFirst"
)

// Normalize maps unknown or empty values to RegionVisible.
func (r Region) Normalize() Region {
	switch r {
	case RegionScroll, RegionVisibleFirst:
		return r
	default:
		return RegionVisible
	}
}

// ParseRegion accepts the three region names case-insensitively.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "visible":
		return RegionVisible, nil
	case "scroll":
		return RegionScroll, nil
	case "visiblefirst", "visible-first":
		return RegionVisibleFirst, nil
	}
	return "", fmt.Errorf("invalid region %q (must be visible, scroll or visibleFirst)", s)
}

// Overflow configures how the popup is adjusted when it does not fit.
type Overflow struct {
	// AdjustX flips left/right, then shifts, when the popup overflows horizontally.
	AdjustX bool `json:"adjustX,omitempty" toml:"adjustX"`
	// AdjustY flips top/bottom, then shifts, when the popup overflows vertically.
	AdjustY bool `json:"adjustY,omitempty" toml:"adjustY"`
	// ShiftX translates without flipping.
	ShiftX Shift `json:"shiftX,omitempty" toml:"shiftX"`
	// ShiftY translates without flipping.
	ShiftY Shift `json:"shiftY,omitempty" toml:"shiftY"`
}

// Rule is a complete alignment rule: which anchor of the popup is pinned to
// which anchor of the target, with offsets and overflow policy.
type Rule struct {
	PopupAnchor  geom.Point `json:"popupAnchor" toml:"popupAnchor"`
	TargetAnchor geom.Point `json:"targetAnchor" toml:"targetAnchor"`
	// Offset moves the popup; percentages are of the popup size.
	Offset Offset `json:"offset,omitempty" toml:"offset"`
	// TargetOffset moves the target reference; percentages are of the target size.
	TargetOffset Offset   `json:"targetOffset,omitempty" toml:"targetOffset"`
	Overflow     Overflow `json:"overflow,omitempty" toml:"overflow"`
	Region       Region   `json:"region,omitempty" toml:"region"`

	// UseRight and UseBottom ask the renderer to position from the
	// container's right/bottom edge using OffsetRight/OffsetBottom.
	UseRight  bool `json:"useRight,omitempty" toml:"useRight"`
	UseBottom bool `json:"useBottom,omitempty" toml:"useBottom"`
	// UseTransform asks the renderer to translate instead of moving edges.
	UseTransform bool `json:"useTransform,omitempty" toml:"useTransform"`

	// AutoArrow classifies the popup edge the arrow sits on.
	AutoArrow bool `json:"autoArrow,omitempty" toml:"autoArrow"`
	// ArrowMargin keeps the arrow this far from the popup's corners.
	ArrowMargin float64 `json:"arrowMargin,omitempty" toml:"arrowMargin"`
}

// Neutral is the fallback rule: top-left to top-left, no offsets, no adjustment.
func Neutral() Rule {
	return Rule{PopupAnchor: geom.TopLeft, TargetAnchor: geom.TopLeft, Region: RegionVisible}
}

// SameAnchors reports whether both rules pin the same pair of anchors.
func (r Rule) SameAnchors(o Rule) bool {
	return r.PopupAnchor == o.PopupAnchor && r.TargetAnchor == o.TargetAnchor
}

// FlipVertical mirrors both anchors top/bottom.
func (r Rule) FlipVertical() Rule {
	r.PopupAnchor = r.PopupAnchor.FlipVertical()
	r.TargetAnchor = r.TargetAnchor.FlipVertical()
	return r
}

// FlipHorizontal mirrors both anchors left/right.
func (r Rule) FlipHorizontal() Rule {
	r.PopupAnchor = r.PopupAnchor.FlipHorizontal()
	r.TargetAnchor = r.TargetAnchor.FlipHorizontal()
	return r
}

// Validate checks that both anchors are present.
func (r Rule) Validate() error {
	if _, err := geom.ParsePoint(string(r.PopupAnchor)); err != nil {
		return fmt.Errorf("popupAnchor: %w", err)
	}
	if _, err := geom.ParsePoint(string(r.TargetAnchor)); err != nil {
		return fmt.Errorf("targetAnchor: %w", err)
	}
	return nil
}

// UnmarshalJSON reads a rule. The compact `points: [popup, target]` form
// is accepted as well.
func (r *Rule) UnmarshalJSON(data []byte) error {
	type plain Rule
	aux := struct {
		*plain
		Points []geom.Point `json:"points,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Points) > 0 {
		if len(aux.Points) != 2 {
			return fmt.Errorf("points must have two entries, got %d", len(aux.Points))
		}
		r.PopupAnchor, r.TargetAnchor = aux.Points[0], aux.Points[1]
	}
	return nil
}
