package inspect

import (
	"fmt"
	"strings"
	"time"

	"anchor/ui/layout"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Terminal contains terminal dimensions.
	Terminal TerminalInfo `json:"terminal"`

	// AppState contains application state information.
	AppState AppStateInfo `json:"app_state"`

	// Popups holds one entry per live popup, outermost first.
	Popups []PopupInfo `json:"popups"`

	// Layout contains layout configuration.
	Layout LayoutInfo `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	// Styles maps registered style names to what they render as.
	Styles map[string]*StyleInfo `json:"styles,omitempty"`

	// Breakpoints contains information about responsive breakpoints.
	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// State is the current app state ("default", "picker", "help").
	State string `json:"state"`

	// HasOverlay indicates if an overlay is currently displayed.
	HasOverlay bool `json:"has_overlay"`

	// OverlayType is the type of overlay if one is displayed.
	OverlayType string `json:"overlay_type,omitempty"`

	// Scroll is the stage scroll offset.
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`

	// ErrorMessage is the current error message if any.
	ErrorMessage string `json:"error_message,omitempty"`
}

// PopupInfo is the alignment state of one popup.
type PopupInfo struct {
	ID string `json:"id"`

	// Placement is the requested placement, Effective the one after flips.
	Placement string  `json:"placement"`
	Effective string  `json:"effective,omitempty"`
	State     string  `json:"state"`
	Phase     string  `json:"phase"`
	Ready     bool    `json:"ready"`
	OffsetX   float64 `json:"offset_x"`
	OffsetY   float64 `json:"offset_y"`
	FlippedX  bool    `json:"flipped_x"`
	FlippedY  bool    `json:"flipped_y"`
	Arrow     string  `json:"arrow,omitempty"`
	ClassName string  `json:"class_name,omitempty"`
}

// LayoutInfo contains layout configuration.
type LayoutInfo struct {
	// Mode is the current layout mode.
	Mode string `json:"mode"`

	StageWidth      int `json:"stage_width"`
	StageHeight     int `json:"stage_height"`
	InspectorWidth  int `json:"inspector_width"`
	InspectorHeight int `json:"inspector_height"`
	HelpHeight      int `json:"help_height"`

	// UseVerticalStack indicates if the inspector sits below the stage.
	UseVerticalStack bool `json:"use_vertical_stack"`

	// Degradation contains active degradation flags.
	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HideRuleDetails      bool `json:"hide_rule_details"`
	HideFlipInfo         bool `json:"hide_flip_info"`
	HideEdgeOffsets      bool `json:"hide_edge_offsets"`
	SquareBorders        bool `json:"square_borders"`
	SingleLineHelp       bool `json:"single_line_help"`
	HideScrollIndicators bool `json:"hide_scroll_indicators"`
	HideArrow            bool `json:"hide_arrow"`
	ShowMinWarning       bool `json:"show_min_warning"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	// Name is the breakpoint name.
	Name string `json:"name"`

	// Threshold is the dimension threshold.
	Threshold int `json:"threshold"`

	// Active indicates if this breakpoint is currently triggered.
	Active bool `json:"active"`

	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithAppState sets the application state and returns the snapshot for chaining.
func (s *Snapshot) WithAppState(state AppStateInfo) *Snapshot {
	s.AppState = state
	return s
}

// AddPopup appends a popup entry and returns the snapshot for chaining.
func (s *Snapshot) AddPopup(p PopupInfo) *Snapshot {
	s.Popups = append(s.Popups, p)
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:             c.Mode.String(),
		StageWidth:       c.StageWidth,
		StageHeight:      c.StageHeight,
		InspectorWidth:   c.InspectorWidth,
		InspectorHeight:  c.InspectorHeight,
		HelpHeight:       c.HelpHeight,
		UseVerticalStack: c.UseVerticalStack,
		Degradation: DegradationInfo{
			HideRuleDetails:      d.HideRuleDetails,
			HideFlipInfo:         d.HideFlipInfo,
			HideEdgeOffsets:      d.HideEdgeOffsets,
			SquareBorders:        d.SquareBorders,
			SingleLineHelp:       d.SingleLineHelp,
			HideScrollIndicators: d.HideScrollIndicators,
			HideArrow:            d.HideArrow,
			ShowMinWarning:       d.ShowMinWarning,
		},
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "hide_rule_details", Threshold: layout.RuleDetailsHideHeight, Active: d.HideRuleDetails, Dimension: "height"},
		{Name: "hide_flip_info", Threshold: layout.FlipInfoHideHeight, Active: d.HideFlipInfo, Dimension: "height"},
		{Name: "hide_edge_offsets", Threshold: layout.EdgeOffsetsHideWidth, Active: d.HideEdgeOffsets, Dimension: "width"},
		{Name: "square_borders", Threshold: layout.SquareBordersWidth, Active: d.SquareBorders, Dimension: "width"},
		{Name: "single_line_help", Threshold: layout.SingleLineHelpHeight, Active: d.SingleLineHelp, Dimension: "height"},
		{Name: "vertical_stack", Threshold: layout.VerticalStackWidth, Active: d.UseVerticalStack, Dimension: "width"},
	}

	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// WithStyles attaches the registered styles.
func (s *Snapshot) WithStyles(styles map[string]*StyleInfo) *Snapshot {
	s.Styles = styles
	return s
}

// ToText renders the snapshot for the debug log and for people reading a
// failed test.
func (s *Snapshot) ToText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== anchor %s ===\n", s.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Terminal: %dx%d  state=%s  scroll=%g,%g\n",
		s.Terminal.Width, s.Terminal.Height, s.AppState.State, s.AppState.ScrollX, s.AppState.ScrollY)
	if s.AppState.ErrorMessage != "" {
		fmt.Fprintf(&b, "Error: %s\n", s.AppState.ErrorMessage)
	}

	l := s.Layout
	fmt.Fprintf(&b, "Layout: %s  stage=%dx%d  inspector=%dx%d  stacked=%t\n",
		l.Mode, l.StageWidth, l.StageHeight, l.InspectorWidth, l.InspectorHeight, l.UseVerticalStack)

	var active []string
	for _, bp := range s.Breakpoints {
		if bp.Active {
			active = append(active, fmt.Sprintf("%s(%s<%d)", bp.Name, bp.Dimension, bp.Threshold))
		}
	}
	if len(active) > 0 {
		fmt.Fprintf(&b, "Breakpoints: %s\n", strings.Join(active, " "))
	}

	if len(s.Popups) > 0 {
		b.WriteString("\nPopups:\n")
		for _, p := range s.Popups {
			fmt.Fprintf(&b, "  %s %s (%s) ready=%t", p.ID, p.Placement, p.State, p.Ready)
			if p.Ready {
				fmt.Fprintf(&b, " offset=%g,%g", p.OffsetX, p.OffsetY)
				if p.Effective != "" && p.Effective != p.Placement {
					b.WriteString(" -> " + p.Effective)
				}
			}
			b.WriteByte('\n')
		}
	}

	if s.Components != nil {
		b.WriteString("\nComponents:\n")
		writeNodeText(&b, s.Components, 1)
	}
	return b.String()
}

func writeNodeText(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Type)
	if n.ID != "" {
		fmt.Fprintf(b, " [%s]", n.ID)
	}
	fmt.Fprintf(b, " (%dx%d) @%d,%d", n.Bounds.Width, n.Bounds.Height, n.Bounds.X, n.Bounds.Y)
	if !n.Visible {
		b.WriteString(" hidden")
	}
	if n.Clipped {
		b.WriteString(" CLIPPED")
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		writeNodeText(b, c, depth+1)
	}
}
