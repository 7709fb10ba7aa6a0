package overlay

import (
	"anchor/placement"
	"anchor/testing/snapshot"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlacementSelectorStartsOnCurrent(t *testing.T) {
	m := NewPlacementSelectorOverlay(placement.Builtins(), "right")
	assert.Equal(t, "right", m.Cursor())
}

func TestPlacementSelectorNavigation(t *testing.T) {
	table := placement.Table{
		"a": placement.Builtins()["top"],
		"b": {}, // no anchors, invalid
		"c": placement.Builtins()["bottom"],
	}
	m := NewPlacementSelectorOverlay(table, "a")

	assert.False(t, m.HandleKeyPress(key("down")))
	assert.Equal(t, "c", m.Cursor(), "invalid entries are skipped")

	assert.False(t, m.HandleKeyPress(key("j")))
	assert.Equal(t, "a", m.Cursor(), "wraps around")

	assert.False(t, m.HandleKeyPress(key("up")))
	assert.Equal(t, "c", m.Cursor())

	assert.True(t, m.HandleKeyPress(key("enter")))
	assert.True(t, m.Dismissed)
	assert.Equal(t, "c", m.Selected)
}

func TestPlacementSelectorCancel(t *testing.T) {
	m := NewPlacementSelectorOverlay(placement.Builtins(), "top")
	assert.True(t, m.HandleKeyPress(key("esc")))
	assert.True(t, m.Dismissed)
	assert.Empty(t, m.Selected)
}

func TestPlacementSelectorRender(t *testing.T) {
	m := NewPlacementSelectorOverlay(placement.Builtins(), "bottom")
	out := snapshot.StripANSI(m.Render())

	assert.Contains(t, out, "> bottom")
	assert.Contains(t, out, "tc → bc  offset 0,1  adjust x,y")
	assert.Contains(t, out, "  left-top")
}
