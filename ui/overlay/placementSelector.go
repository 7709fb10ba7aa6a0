package overlay

import (
	"anchor/placement"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PlacementOption is one entry of the placement picker.
type PlacementOption struct {
	Name        string
	Description string
	// Available is false for rules that fail validation; they are listed
	// but cannot be picked.
	Available bool
}

// PlacementSelectorOverlay lets the user pick a placement from a table.
type PlacementSelectorOverlay struct {
	Dismissed bool
	Selected  string
	options   []PlacementOption
	cursor    int
	width     int
}

// NewPlacementSelectorOverlay lists the placements of table with the cursor
// on current.
func NewPlacementSelectorOverlay(table placement.Table, current string) *PlacementSelectorOverlay {
	var options []PlacementOption
	cursor := 0
	for i, name := range table.Names() {
		r := table[name]
		options = append(options, PlacementOption{
			Name:        name,
			Description: describeRule(r),
			Available:   r.Validate() == nil,
		})
		if name == current {
			cursor = i
		}
	}

	return &PlacementSelectorOverlay{
		options: options,
		cursor:  cursor,
		width:   44,
	}
}

func describeRule(r placement.Rule) string {
	desc := fmt.Sprintf("%s → %s", r.PopupAnchor, r.TargetAnchor)
	if !r.Offset.IsZero() {
		desc += fmt.Sprintf("  offset %s,%s", r.Offset.X, r.Offset.Y)
	}
	var adjust []string
	if r.Overflow.AdjustX {
		adjust = append(adjust, "x")
	}
	if r.Overflow.AdjustY {
		adjust = append(adjust, "y")
	}
	if len(adjust) > 0 {
		desc += "  adjust " + strings.Join(adjust, ",")
	}
	return desc
}

// HandleKeyPress processes a key press and reports whether the overlay is done.
func (m *PlacementSelectorOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
		return false
	case "down", "j":
		m.moveCursor(1)
		return false
	case "enter":
		if len(m.options) > 0 && m.options[m.cursor].Available {
			m.Selected = m.options[m.cursor].Name
			m.Dismissed = true
			return true
		}
		return false
	case "esc", "q":
		m.Dismissed = true
		return true
	default:
		return false
	}
}

// moveCursor moves the cursor up or down, wrapping around and skipping
// unavailable options
func (m *PlacementSelectorOverlay) moveCursor(delta int) {
	if len(m.options) == 0 {
		return
	}
	next := m.cursor
	for attempts := 0; attempts < len(m.options); attempts++ {
		next = (next + delta + len(m.options)) % len(m.options)
		if m.options[next].Available {
			m.cursor = next
			return
		}
	}
}

// Cursor returns the name under the cursor.
func (m *PlacementSelectorOverlay) Cursor() string {
	if len(m.options) == 0 {
		return ""
	}
	return m.options[m.cursor].Name
}

// Render renders the placement picker
func (m *PlacementSelectorOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	unavailableStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Strikethrough(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		PaddingLeft(4)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Placement"))
	content.WriteString("\n\n")

	for i, opt := range m.options {
		prefix := "  "
		nameStyle := normalStyle
		switch {
		case !opt.Available:
			nameStyle = unavailableStyle
		case i == m.cursor:
			prefix = "> "
			nameStyle = selectedStyle
		}

		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(opt.Name))
		if !opt.Available {
			content.WriteString(" (invalid)")
		}
		content.WriteString("\n")
		if i == m.cursor {
			content.WriteString(descStyle.Render(opt.Description))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(
		"[Enter] Select  [Esc] Cancel  [↑/↓] Navigate"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(m.width)

	return borderStyle.Render(content.String())
}

// SetWidth sets the width of the overlay
func (m *PlacementSelectorOverlay) SetWidth(width int) {
	m.width = width
}
