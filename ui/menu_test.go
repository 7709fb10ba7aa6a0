package ui

import (
	"anchor/keys"
	"anchor/testing/snapshot"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenuGroupsOnSeparateLines(t *testing.T) {
	m := NewMenu()
	m.SetSize(200, 3)
	lines := strings.Split(strings.TrimSpace(snapshot.StripANSI(m.String())), "\n")

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "↑/k move up")
	assert.Contains(t, lines[1], "p next placement")
	assert.Contains(t, lines[2], "q quit")
}

func TestMenuSingleLine(t *testing.T) {
	m := NewMenu()
	m.SetSingleLine(true)
	m.SetSize(120, 1)
	out := snapshot.StripANSI(m.String())

	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "space toggle • p next placement")
	assert.Contains(t, out, " │ ? help")
	assert.NotContains(t, out, "move up")
}

func TestMenuStates(t *testing.T) {
	m := NewMenu()
	m.SetSize(120, 1)

	m.SetState(StatePicker)
	assert.Contains(t, snapshot.StripANSI(m.String()), "move down")

	m.SetState(StateHelp)
	assert.Equal(t, "? help", strings.TrimSpace(snapshot.StripANSI(m.String())))

	m.SetState(StateDefault)
	m.Keydown(keys.KeyQuit)
	assert.Contains(t, snapshot.StripANSI(m.String()), "q quit")
	m.ClearKeydown()
}
