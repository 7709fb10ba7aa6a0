package main

import (
	"anchor/align"
	"anchor/config"
	"anchor/geom"
	"anchor/placement"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type alignOptions struct {
	target       string
	popup        string
	region       string
	scroll       string
	overflow     string
	placement    string
	points       string
	offset       string
	targetOffset string
	point        string
	adjust       string
	scale        float64
	file         string
}

// terminalViewport is the default visible region: the terminal, or 80x24
// when stdout is not one.
func terminalViewport() geom.Rect {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return geom.NewRect(0, 0, 80, 24)
	}
	return geom.NewRect(0, 0, float64(w), float64(h))
}

func parseFloats(flag, s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("--%s: expected %d comma separated numbers, got %q", flag, n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flag, err)
		}
		out[i] = f
	}
	return out, nil
}

func parseRect(flag, s string) (geom.Rect, error) {
	v, err := parseFloats(flag, s, 4)
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}

// parseOffset reads "dx,dy" where each part is a number or a percentage.
func parseOffset(flag, s string) (placement.Offset, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return placement.Offset{}, fmt.Errorf("--%s: expected dx,dy, got %q", flag, s)
	}
	data, err := json.Marshal([]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
	if err != nil {
		return placement.Offset{}, err
	}
	var o placement.Offset
	if err := o.UnmarshalJSON(data); err != nil {
		return placement.Offset{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return o, nil
}

// loadTable returns the built-ins merged with file, if given.
func loadTable(file string) (placement.Table, error) {
	table := placement.Builtins()
	if file == "" {
		return table, nil
	}
	extra, err := config.LoadPlacements(file)
	if err != nil {
		return nil, err
	}
	return table.Merge(extra), nil
}

// buildRule resolves the rule for the flags: --points builds an explicit
// rule, otherwise the placement is looked up in the table.
func buildRule(o alignOptions, table placement.Table) (placement.Rule, error) {
	var explicit *placement.Rule
	if o.points != "" {
		parts := strings.Split(o.points, ",")
		if len(parts) != 2 {
			return placement.Rule{}, fmt.Errorf("--points: expected popup,target anchors, got %q", o.points)
		}
		popupAnchor, err := geom.ParsePoint(parts[0])
		if err != nil {
			return placement.Rule{}, fmt.Errorf("--points: %w", err)
		}
		targetAnchor, err := geom.ParsePoint(parts[1])
		if err != nil {
			return placement.Rule{}, fmt.Errorf("--points: %w", err)
		}
		r := placement.Rule{
			PopupAnchor:  popupAnchor,
			TargetAnchor: targetAnchor,
			Overflow:     placement.Overflow{AdjustX: true, AdjustY: true},
			Region:       placement.RegionVisible,
			AutoArrow:    true,
		}
		explicit = &r
	}

	r := placement.Resolve(explicit, o.placement, table, placement.Neutral())

	if o.offset != "" {
		off, err := parseOffset("offset", o.offset)
		if err != nil {
			return placement.Rule{}, err
		}
		r.Offset = off
	}
	if o.targetOffset != "" {
		off, err := parseOffset("target-offset", o.targetOffset)
		if err != nil {
			return placement.Rule{}, err
		}
		r.TargetOffset = off
	}
	if o.adjust != "" {
		switch strings.ToLower(o.adjust) {
		case "x":
			r.Overflow.AdjustX, r.Overflow.AdjustY = true, false
		case "y":
			r.Overflow.AdjustX, r.Overflow.AdjustY = false, true
		case "xy", "both":
			r.Overflow.AdjustX, r.Overflow.AdjustY = true, true
		case "none":
			r.Overflow.AdjustX, r.Overflow.AdjustY = false, false
		default:
			return placement.Rule{}, fmt.Errorf("--adjust: invalid value %q (must be x, y, xy or none)", o.adjust)
		}
	}
	if o.overflow != "" {
		region, err := placement.ParseRegion(o.overflow)
		if err != nil {
			return placement.Rule{}, fmt.Errorf("--overflow: %w", err)
		}
		r.Region = region
	}
	if err := r.Validate(); err != nil {
		return placement.Rule{}, err
	}
	return r, nil
}

// runAlign runs one alignment pass for the align command. viewport supplies
// the visible region when --region is not set.
func runAlign(o alignOptions, viewport func() geom.Rect) (align.Result, error) {
	table, err := loadTable(o.file)
	if err != nil {
		return align.Result{}, err
	}

	target, err := parseRect("target", o.target)
	if err != nil {
		return align.Result{}, err
	}
	size, err := parseFloats("popup", o.popup, 2)
	if err != nil {
		return align.Result{}, err
	}
	popup := geom.NewRect(0, 0, size[0], size[1])

	visible := viewport()
	if o.region != "" {
		if visible, err = parseRect("region", o.region); err != nil {
			return align.Result{}, err
		}
	}
	bounds := align.Viewport(visible)
	if o.scroll != "" {
		if bounds.Scroll, err = parseRect("scroll", o.scroll); err != nil {
			return align.Result{}, err
		}
	}

	rule, err := buildRule(o, table)
	if err != nil {
		return align.Result{}, err
	}

	req := align.Request{
		Target:    &target,
		Popup:     &popup,
		Bounds:    bounds,
		Rule:      rule,
		Placement: o.placement,
		Table:     table,
	}
	if o.point != "" {
		p, err := parseFloats("point", o.point, 2)
		if err != nil {
			return align.Result{}, err
		}
		req.AlignPoint = &geom.Vec{X: p[0], Y: p[1]}
	}
	if o.scale != 1 {
		if o.scale <= 0 {
			return align.Result{}, fmt.Errorf("--scale: must be positive, got %g", o.scale)
		}
		req.Scale = &geom.Scale{X: o.scale, Y: o.scale}
	}
	return align.Align(req), nil
}

// printTable writes the placement table, one rule per line or as JSON.
func printTable(w io.Writer, table placement.Table, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}
	for _, name := range table.Names() {
		r := table[name]
		line := fmt.Sprintf("%-14s %s -> %s  offset %s,%s", name, r.PopupAnchor, r.TargetAnchor, r.Offset.X, r.Offset.Y)
		var adjust []string
		if r.Overflow.AdjustX {
			adjust = append(adjust, "x")
		}
		if r.Overflow.AdjustY {
			adjust = append(adjust, "y")
		}
		if len(adjust) > 0 {
			line += "  adjust " + strings.Join(adjust, ",")
		}
		if r.Region != "" {
			line += "  region " + string(r.Region)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
