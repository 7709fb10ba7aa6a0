package ui

import (
	"anchor/keys"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	// StatePicker is active while the placement picker is shown.
	StatePicker
	// StateHelp is active while the help screen is shown.
	StateHelp
)

// Menu is the key help footer.
type Menu struct {
	groups        [][]keys.KeyName
	height, width int
	state         MenuState
	singleLine    bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var shortMenuOptions = [][]keys.KeyName{
	{keys.KeyToggle, keys.KeyNextPlacement, keys.KeyPickPlacement, keys.KeyPointer},
	{keys.KeyHelp, keys.KeyQuit},
}
var pickerMenuOptions = [][]keys.KeyName{{keys.KeyUp, keys.KeyDown}}
var helpMenuOptions = [][]keys.KeyName{{keys.KeyHelp}}

func NewMenu() *Menu {
	m := &Menu{keyDown: -1}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

// SetSingleLine switches between the short and the grouped help.
func (m *Menu) SetSingleLine(single bool) {
	m.singleLine = single
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	switch m.state {
	case StatePicker:
		m.groups = pickerMenuOptions
	case StateHelp:
		m.groups = helpMenuOptions
	default:
		if m.singleLine {
			m.groups = shortMenuOptions
		} else {
			m.groups = keys.Groups
		}
	}
}

// SetSize sets the size of the footer. The menu is centered within it.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var lines []string
	var s strings.Builder

	for gi, group := range m.groups {
		// The popup group is the action group and is highlighted.
		inActionGroup := len(m.groups) > 1 && gi == len(m.groups)-2

		for i, k := range group {
			binding := keys.GlobalkeyBindings[k]

			var (
				localActionStyle = actionGroupStyle
				localKeyStyle    = keyStyle
				localDescStyle   = descStyle
			)
			if m.keyDown == k {
				localActionStyle = localActionStyle.Underline(true)
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			if inActionGroup {
				s.WriteString(localActionStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localActionStyle.Render(binding.Help().Desc))
			} else {
				s.WriteString(localKeyStyle.Render(binding.Help().Key))
				s.WriteString(" ")
				s.WriteString(localDescStyle.Render(binding.Help().Desc))
			}

			if i != len(group)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}

		if gi == len(m.groups)-1 {
			break
		}
		// One line per group when the footer is tall enough.
		if len(m.groups) <= m.height {
			lines = append(lines, s.String())
			s.Reset()
		} else {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}
	lines = append(lines, s.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
