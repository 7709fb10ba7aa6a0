package layout

// Width breakpoints
const (
	// MinWidth is the smallest terminal width the playground lays out normally.
	MinWidth = 80

	// CompactWidth triggers compact mode features.
	CompactWidth = 100

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 120

	// FullWidth is the threshold for full layout with all features.
	FullWidth = 140
)

// Height breakpoints
const (
	// MinHeight is the smallest terminal height the playground lays out normally.
	MinHeight = 24

	// CompactHeight triggers compact mode features.
	CompactHeight = 30

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 40

	// FullHeight is the threshold for full layout.
	FullHeight = 50
)

// Inspector panel constraints
const (
	// InspectorMinWidth fits the longest inspector line ("offsetBottom: -1234").
	InspectorMinWidth = 26

	// InspectorMaxWidth keeps the stage from shrinking on wide terminals.
	InspectorMaxWidth = 44

	// InspectorCompactWidth is the inspector width in compact mode.
	InspectorCompactWidth = 30

	// InspectorStackHeight is the inspector height when stacked under the stage.
	InspectorStackHeight = 6
)

// Footer constraints
const (
	// StatusHeight is the fixed status bar height.
	StatusHeight = 1

	// HelpMinHeight is the short, single-line help.
	HelpMinHeight = 1

	// HelpStandardHeight is the help height in standard mode.
	HelpStandardHeight = 3

	// HelpMaxHeight is the full help height.
	HelpMaxHeight = 4
)

// Stage constraints
const (
	// StageContentScale is how many viewports of content the stage scrolls
	// through on each axis.
	StageContentScale = 3
)

// Popup constraints
const (
	// PopupMaxWidth is the maximum popup width.
	PopupMaxWidth = 48

	// PopupMaxHeight is the maximum popup height.
	PopupMaxHeight = 12

	// PopupMinWidth is the minimum popup width.
	PopupMinWidth = 12

	// PopupMinHeight is the minimum popup height (one line + border).
	PopupMinHeight = 3

	// PopupMargin is the minimum margin from the stage edges.
	PopupMargin = 2
)
