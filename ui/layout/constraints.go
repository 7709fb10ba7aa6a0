package layout

// Constraints holds the computed layout constraints for all components.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode
	Mode LayoutMode

	// Panel dimensions (computed)
	StageWidth      int
	StageHeight     int
	InspectorWidth  int
	InspectorHeight int
	StatusWidth     int
	StatusHeight    int
	HelpWidth       int
	HelpHeight      int

	// Layout flags
	UseVerticalStack bool // Inspector goes below the stage on narrow terminals
	ShowMinWarning   bool // Terminal is below minimum size
}

// ComputeConstraints calculates layout constraints for the given terminal dimensions.
func ComputeConstraints(width, height int) Constraints {
	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
	}

	c.Mode = DetermineMode(width, height)

	if width < MinWidth || height < MinHeight {
		c.ShowMinWarning = true
	}

	// Footer rows are fixed; the stage and inspector share the rest.
	c.StatusHeight = StatusHeight
	c.StatusWidth = width
	c.HelpHeight = computeHelpHeight(c.Mode)
	c.HelpWidth = width

	contentHeight := max(height-c.StatusHeight-c.HelpHeight, 1)

	if c.Mode == LayoutMinimal && width < MinWidth {
		c.UseVerticalStack = true
		c.InspectorWidth = width
		c.InspectorHeight = min(InspectorStackHeight, max(contentHeight/3, 1))
		c.StageWidth = width
		c.StageHeight = max(contentHeight-c.InspectorHeight, 1)
	} else {
		c.InspectorWidth = computeInspectorWidth(width, c.Mode)
		c.StageWidth = max(width-c.InspectorWidth, 1)
		c.InspectorHeight = contentHeight
		c.StageHeight = contentHeight
	}

	return c
}

// computeInspectorWidth calculates the inspector panel width based on mode.
func computeInspectorWidth(totalWidth int, mode LayoutMode) int {
	var targetPercent float32
	var minWidth, maxWidth int

	switch mode {
	case LayoutFull:
		targetPercent = 0.25
		minWidth = InspectorMinWidth
		maxWidth = InspectorMaxWidth
	case LayoutStandard:
		targetPercent = 0.30
		minWidth = InspectorMinWidth
		maxWidth = InspectorMaxWidth
	case LayoutCompact:
		targetPercent = 0.35
		minWidth = InspectorMinWidth
		maxWidth = InspectorCompactWidth
	default:
		return InspectorMinWidth
	}

	computed := int(float32(totalWidth) * targetPercent)
	return clamp(computed, minWidth, maxWidth)
}

// computeHelpHeight calculates the help footer height based on mode.
func computeHelpHeight(mode LayoutMode) int {
	switch mode {
	case LayoutFull:
		return HelpMaxHeight
	case LayoutStandard:
		return HelpStandardHeight
	default:
		return HelpMinHeight
	}
}

// ComputeStageContent returns the scrollable content size behind a stage.
func ComputeStageContent(c Constraints) (int, int) {
	return c.StageWidth * StageContentScale, c.StageHeight * StageContentScale
}

// ComputePopupSize constrains a popup's preferred size to the stage.
func ComputePopupSize(stageWidth, stageHeight int, preferredWidth, preferredHeight int) (int, int) {
	maxW := stageWidth - PopupMargin*2
	maxH := stageHeight - PopupMargin*2

	w := clamp(preferredWidth, PopupMinWidth, min(maxW, PopupMaxWidth))
	h := clamp(preferredHeight, PopupMinHeight, min(maxH, PopupMaxHeight))

	return w, h
}

// Helper functions

func clamp(value, minVal, maxVal int) int {
	if value > maxVal {
		value = maxVal
	}
	if value < minVal {
		return minVal
	}
	return value
}
