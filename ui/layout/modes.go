// Package layout sizes the playground panels from the terminal dimensions.
package layout

// LayoutMode orders the layouts from roomiest to most cramped, so a larger
// value is always the more restrictive one.
type LayoutMode int

const (
	// LayoutFull shows the full help and a wide inspector.
	LayoutFull LayoutMode = iota
	LayoutStandard
	// LayoutCompact uses one-line help and a narrow inspector.
	LayoutCompact
	// LayoutMinimal is below the minimum size. A too-narrow terminal stacks
	// the inspector under the stage.
	LayoutMinimal
)

var modeNames = [...]string{
	LayoutFull:     "full",
	LayoutStandard: "standard",
	LayoutCompact:  "compact",
	LayoutMinimal:  "minimal",
}

func (m LayoutMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// modeSteps lists the lower bound of each mode, roomiest first.
var modeSteps = []struct {
	mode          LayoutMode
	width, height int
}{
	{LayoutFull, FullWidth, FullHeight},
	{LayoutStandard, StandardWidth, StandardHeight},
	{LayoutCompact, MinWidth, MinHeight},
}

// DetermineMode picks the layout for a terminal. Width and height are rated
// separately and the more cramped rating wins.
func DetermineMode(width, height int) LayoutMode {
	return max(modeFor(width, func(w, _ int) int { return w }),
		modeFor(height, func(_, h int) int { return h }))
}

func modeFor(v int, bound func(w, h int) int) LayoutMode {
	for _, s := range modeSteps {
		if v >= bound(s.width, s.height) {
			return s.mode
		}
	}
	return LayoutMinimal
}
