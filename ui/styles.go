package ui

import "github.com/charmbracelet/lipgloss"

// Semantic Color Palette
// Designed for accessibility (colorblind-safe) with both color and shape differentiation.

// Lifecycle colors - each popup state has a distinct color and icon
var (
	// StateOpen indicates an aligned, visible popup
	// Color: Green, Icon: "●"
	StateOpen = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

	// StatePending indicates a delayed open or close request
	// Color: Blue, Icon: "○"
	StatePending = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

	// StateFlipped indicates the popup moved to the opposite side
	// Color: Amber, Icon: "⇅"
	StateFlipped = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// StateError indicates a broken placement file or config
	// Color: Red, Icon: "×"
	StateError = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}

	// StateClosed indicates a hidden popup
	// Color: Gray, Icon: "·"
	StateClosed = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
)

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderFocus is the border color for focused elements
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// StageDot is the color of the stage background grid
	StageDot = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#2F2F2F"}

	// BackgroundSubtle is for popups
	BackgroundSubtle = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#2a2a2a"}

	// BackgroundSelected is for a hovered target
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"}
)

// Lifecycle icons for accessibility (shape + color)
const (
	IconOpen    = "●"
	IconPending = "○"
	IconFlipped = "⇅"
	IconError   = "×"
	IconClosed  = "·"
)

// Pre-built styles for common UI elements

// StatusStyles contains pre-built styles for each lifecycle state
var StatusStyles = struct {
	Open    lipgloss.Style
	Pending lipgloss.Style
	Flipped lipgloss.Style
	Error   lipgloss.Style
	Closed  lipgloss.Style
}{
	Open:    lipgloss.NewStyle().Foreground(StateOpen),
	Pending: lipgloss.NewStyle().Foreground(StatePending),
	Flipped: lipgloss.NewStyle().Foreground(StateFlipped),
	Error:   lipgloss.NewStyle().Foreground(StateError),
	Closed:  lipgloss.NewStyle().Foreground(StateClosed),
}

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Title     lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Title:     lipgloss.NewStyle().Foreground(Primary).Bold(true),
}

// TargetStyles contains the styles of a target element on the stage
var TargetStyles = struct {
	Idle    lipgloss.Style
	Hovered lipgloss.Style
	Active  lipgloss.Style
}{
	Idle: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Foreground(TextPrimary).
		Padding(0, 1),
	Hovered: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderFocus).
		Background(BackgroundSelected).
		Foreground(TextPrimary).
		Padding(0, 1),
	Active: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(BorderFocus).
		Foreground(Primary).
		Padding(0, 1),
}

// Spacing constants for consistent layout
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 4
)

// PanelStyle creates a style for the inspector panel
func PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, SpaceXS)
}

// ModalStyle creates a style for modal containers (help, placement picker)
func ModalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(1, SpaceSM)
}
