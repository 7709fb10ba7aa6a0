package inspect

import (
	"anchor/geom"
	"anchor/ui/layout"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c := layout.ComputeConstraints(120, 40)
	d := layout.ComputeDegradation(c)

	snap := NewSnapshot().
		WithTerminal(120, 40).
		WithLayout(c, d).
		WithAppState(AppStateInfo{State: "default", ScrollY: 3}).
		AddPopup(PopupInfo{ID: "tip", Placement: "bottom", Effective: "top", State: "open", Ready: true, OffsetY: -5, FlippedY: true}).
		WithComponents(NewNode("Root").WithBounds(0, 0, 120, 40))

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, WriteSnapshotToPath(snap, path))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 120, got.Terminal.Width)
	assert.Equal(t, "standard", got.Layout.Mode)
	assert.Equal(t, c.StageWidth, got.Layout.StageWidth)
	assert.Equal(t, 3.0, got.AppState.ScrollY)
	require.Len(t, got.Popups, 1)
	assert.Equal(t, "top", got.Popups[0].Effective)
	assert.True(t, got.Popups[0].FlippedY)
	assert.Equal(t, "Root", got.Components.Type)
}

func TestSnapshotBreakpoints(t *testing.T) {
	c := layout.ComputeConstraints(80, 24)
	d := layout.ComputeDegradation(c)
	snap := NewSnapshot().WithLayout(c, d)

	active := map[string]bool{}
	for _, bp := range snap.Breakpoints {
		active[bp.Name] = bp.Active
	}
	assert.True(t, active["hide_rule_details"])
	assert.True(t, active["single_line_help"])
	assert.True(t, active["square_borders"])
	assert.False(t, active["vertical_stack"])
}

func TestSnapshotToText(t *testing.T) {
	snap := NewSnapshot().
		WithTerminal(100, 30).
		AddPopup(PopupInfo{ID: "tip", Placement: "bottom", Effective: "top", State: "open", Ready: true, OffsetX: 2, OffsetY: -5})
	snap.WithComponents(NewNode("Root").AddChild(NewNode("Stage").WithID("stage").WithBounds(0, 0, 70, 26)))

	text := snap.ToText()
	assert.Contains(t, text, "Terminal: 100x30")
	assert.Contains(t, text, "tip bottom (open) ready=true offset=2,-5 -> top")
	assert.Contains(t, text, "  Stage [stage] (70x26)")
}

func TestNodeTree(t *testing.T) {
	stage := NewNode("Stage").WithID("stage").WithRect(geom.NewRect(0, 0, 40, 20))
	stage.AddChild(NewNode("Element").WithID("button").WithRect(geom.NewRect(2.5, 3, 12, 3)))
	stage.AddChild(NewNode("Popup").WithID("tip").WithRect(geom.NewRect(30, 18, 20, 4)).WithVisible(false))

	btn := stage.Find("button")
	require.NotNil(t, btn)
	assert.Equal(t, Bounds{X: 2, Y: 3, Width: 13, Height: 3}, btn.Bounds, "snapped outwards")
	assert.False(t, btn.Clipped)

	tip := stage.Find("tip")
	require.NotNil(t, tip)
	assert.True(t, tip.Clipped)
	assert.False(t, tip.Visible)
	assert.Nil(t, stage.Find("missing"))

	text := NewSnapshot().WithComponents(stage).ToText()
	assert.Contains(t, text, "Popup [tip] (20x4) @30,18 hidden CLIPPED")
}

func TestWriterDisabled(t *testing.T) {
	var nilWriter *Writer
	for _, w := range []*Writer{nilWriter, NewWriter("")} {
		assert.False(t, w.Enabled())
		assert.Empty(t, w.Path())
		written, err := w.Write(NewSnapshot())
		assert.NoError(t, err)
		assert.False(t, written)
	}
}

func TestWriterSkipsUnchangedSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	w := NewWriter(path)
	require.True(t, w.Enabled())
	assert.Equal(t, path, w.Path())

	snap := NewSnapshot().WithTerminal(80, 24)
	written, err := w.Write(snap)
	require.NoError(t, err)
	assert.True(t, written)

	snap.Timestamp = snap.Timestamp.Add(time.Second)
	written, err = w.Write(snap)
	require.NoError(t, err)
	assert.False(t, written, "only the timestamp changed")

	snap.AddPopup(PopupInfo{ID: "tip", State: "open"})
	written, err = w.Write(snap)
	require.NoError(t, err)
	assert.True(t, written)

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, got.Popups, 1)
	assert.Equal(t, "tip", got.Popups[0].ID)
}

func TestWriterReportsWriteErrors(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing", "snap.json"))
	written, err := w.Write(NewSnapshot())
	assert.Error(t, err)
	assert.False(t, written)
}

func TestExtractStyleInfo(t *testing.T) {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("62"))

	info := ExtractStyleInfo(style, "active")
	assert.Equal(t, "205", info.Foreground)
	assert.True(t, info.Bold)
	assert.Equal(t, []int{0, 1, 0, 1}, info.Padding)
	assert.Equal(t, "thick", info.Border)
	assert.Equal(t, "62", info.BorderColor)
	assert.Equal(t, []string{"active"}, info.AppliedStyles)
}

func TestColorToString(t *testing.T) {
	assert.Equal(t, "", colorToString(nil))
	assert.Equal(t, "#fff", colorToString(lipgloss.Color("#fff")))
	assert.Equal(t, "", colorToString(lipgloss.NoColor{}))
	assert.Equal(t, "adaptive(light=#000, dark=#fff)", colorToString(lipgloss.AdaptiveColor{Light: "#000", Dark: "#fff"}))
	assert.Equal(t, "block", borderName(lipgloss.BlockBorder()))
	assert.Equal(t, "custom", borderName(lipgloss.Border{Top: "~"}))
}

func TestStyleRegistry(t *testing.T) {
	RegisterStyle("zz-test", lipgloss.NewStyle().Italic(true))
	RegisterStyle("aa-test", lipgloss.NewStyle())

	s, ok := GetRegisteredStyle("zz-test")
	require.True(t, ok)
	assert.True(t, s.GetItalic())

	names := ListRegisteredStyles()
	assert.Less(t, indexOf(names, "aa-test"), indexOf(names, "zz-test"))
	all := GetAllStyles()
	assert.True(t, all["zz-test"].Italic)
	assert.Equal(t, []string{"zz-test"}, all["zz-test"].AppliedStyles)

	snap := NewSnapshot().WithStyles(all)
	assert.Contains(t, snap.Styles, "aa-test")
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
