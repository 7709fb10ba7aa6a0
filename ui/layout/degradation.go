package layout

// Degradation holds flags indicating which playground details are dropped
// as the terminal shrinks, first to go listed first.
type Degradation struct {
	// Inspector degradation
	HideRuleDetails bool // Effective anchors and offsets of the rule (height < 35)
	HideFlipInfo    bool // Flip memory lines (height < 30)
	HideEdgeOffsets bool // Right/bottom offsets (width < 100)

	// Component simplification
	SquareBorders        bool // Plain borders instead of rounded ones (width < 90)
	SingleLineHelp       bool // Short help only (height < 26)
	HideScrollIndicators bool // Stage scroll position (height < 28)

	// Critical degradation
	HideArrow        bool // No arrow glyph on the popup (height < 20 or width < 50)
	ShowMinWarning   bool // Terminal too small warning (below MinWidth/MinHeight)
	UseVerticalStack bool // Inspector below the stage (width < 80)
}

// Threshold constants for degradation
const (
	RuleDetailsHideHeight = 35
	FlipInfoHideHeight    = 30
	EdgeOffsetsHideWidth  = 100
	SquareBordersWidth    = 90
	SingleLineHelpHeight  = 26
	ScrollIndicatorHeight = 28
	ArrowHideHeight       = 20
	ArrowHideWidth        = 50
	VerticalStackWidth    = 80
)

// ComputeDegradation calculates which details should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideRuleDetails: c.TerminalHeight < RuleDetailsHideHeight,
		HideFlipInfo:    c.TerminalHeight < FlipInfoHideHeight,
		HideEdgeOffsets: c.TerminalWidth < EdgeOffsetsHideWidth,

		SquareBorders:        c.TerminalWidth < SquareBordersWidth,
		SingleLineHelp:       c.TerminalHeight < SingleLineHelpHeight,
		HideScrollIndicators: c.TerminalHeight < ScrollIndicatorHeight,

		HideArrow:        c.TerminalHeight < ArrowHideHeight || c.TerminalWidth < ArrowHideWidth,
		ShowMinWarning:   c.ShowMinWarning,
		UseVerticalStack: c.UseVerticalStack,
	}
}

// IsCompactMode returns true if the inspector should use compact rendering.
func (d Degradation) IsCompactMode() bool {
	return d.HideRuleDetails || d.HideFlipInfo
}

// ShouldShowRule returns true if the effective rule should be shown.
func (d Degradation) ShouldShowRule() bool {
	return !d.HideRuleDetails
}

// ShouldShowFlips returns true if the flip memory should be shown.
func (d Degradation) ShouldShowFlips() bool {
	return !d.HideFlipInfo
}

// ShouldShowEdgeOffsets returns true if right/bottom offsets should be shown.
func (d Degradation) ShouldShowEdgeOffsets() bool {
	return !d.HideEdgeOffsets
}
