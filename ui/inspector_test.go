package ui

import (
	"anchor/align"
	"anchor/placement"
	"anchor/testing/snapshot"
	"anchor/ui/layout"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func flippedData() InspectorData {
	return InspectorData{
		Placement: "bottom",
		State:     "open",
		Phase:     "idle",
		Region:    "visible",
		Result: align.Result{
			Ready:     true,
			OffsetX:   4,
			OffsetY:   15,
			FlippedY:  true,
			Placement: "top",
			Rule:      placement.Builtins()["top"],
			Flips:     align.Flips{BottomToTop: true},
			Arrow:     align.SideBottom,
			ArrowX:    9,
			ArrowY:    3,
			ScaleX:    1,
			ScaleY:    1,
		},
	}
}

func TestInspectorFull(t *testing.T) {
	i := NewInspector()
	i.SetSize(44, 30)
	i.SetData(flippedData())

	f := snapshot.Capture(i.String())
	assert.Equal(t, 30, f.Height())

	for _, want := range []string{
		"Alignment",
		IconFlipped + " flipped",
		"placement: bottom → top",
		"offset: 4, 15",
		"right/bottom: 0, 0",
		"arrow: bottom @ 9,3",
		"points: bc → tc",
		"rule offset: 0,-1",
		"adjust: x=true y=true",
		"region: visible",
		"flips: bottomToTop",
		"scroll: 0, 0",
	} {
		assert.True(t, f.Contains(want), "missing %q in\n%s", want, f)
	}
	assert.False(t, f.Contains("scale:"))
	assert.False(t, f.Contains("mode:"))
}

func TestInspectorDegraded(t *testing.T) {
	i := NewInspector()
	i.SetSize(30, 20)
	i.SetDegradation(layout.ComputeDegradation(layout.ComputeConstraints(80, 24)))
	i.SetData(flippedData())

	f := snapshot.Capture(i.String())
	assert.True(t, f.Contains("offset: 4, 15"))
	for _, hidden := range []string{"points:", "flips:", "right/bottom:", "scroll:"} {
		assert.False(t, f.Contains(hidden), "%q should be hidden", hidden)
	}
}

func TestInspectorBadges(t *testing.T) {
	tests := []struct {
		name string
		data InspectorData
		want string
	}{
		{name: "closed", data: InspectorData{State: "closed"}, want: IconClosed + " closed"},
		{name: "pending", data: InspectorData{State: "pending-open"}, want: IconPending + " pending-open"},
		{name: "open", data: InspectorData{State: "open", Result: align.Result{Ready: true, ScaleX: 1, ScaleY: 1}}, want: IconOpen + " open"},
		{name: "error wins", data: InspectorData{State: "open", Err: "boom"}, want: IconError + " error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewInspector()
			i.SetSize(40, 20)
			i.SetData(tt.data)
			assert.True(t, snapshot.Capture(i.String()).Contains(tt.want))
		})
	}
}

func TestInspectorModes(t *testing.T) {
	i := NewInspector()
	i.SetSize(40, 30)
	d := flippedData()
	d.Pointer, d.Motion, d.Nested, d.Phase = true, true, true, "moving"
	d.Result.ScaleX, d.Result.ScaleY = 0.5, 0.5
	i.SetData(d)

	f := snapshot.Capture(i.String())
	assert.True(t, f.Contains("mode: pointer motion:moving nested"))
	assert.True(t, f.Contains("scale: 0.5, 0.5"))
}

func TestInspectorClipsToHeight(t *testing.T) {
	i := NewInspector()
	i.SetSize(40, 6)
	i.SetData(flippedData())

	f := snapshot.Capture(i.String())
	assert.Equal(t, 6, f.Height())
	assert.True(t, f.Contains("Alignment"))
	assert.False(t, f.Contains("region:"))

	i.SetSize(2, 2)
	assert.Empty(t, i.String())
}

func TestInspectorNode(t *testing.T) {
	i := NewInspector()
	i.SetSize(40, 20)
	i.SetData(flippedData())

	n := i.InspectNode()
	assert.Equal(t, "Inspector", n.Type)
	assert.Equal(t, "top", n.State["effective_placement"])
	assert.Equal(t, true, n.State["ready"])
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	assert.Empty(t, s.String(), "no width yet")

	s.SetSize(20)
	s.SetInfo("anchor  80x24")
	assert.Equal(t, "anchor  80x24", snapshot.Capture(s.String()).Row(0))

	s.SetError(errors.New("first line\nsecond line"))
	f := snapshot.Capture(s.String())
	assert.Equal(t, 1, f.Height())
	assert.Equal(t, IconError+" first line", f.Row(0))
	assert.Error(t, s.Err())

	s.Clear()
	assert.NoError(t, s.Err())
	assert.True(t, snapshot.Capture(s.String()).Contains("anchor"))
}

func TestStatusBarTruncates(t *testing.T) {
	s := NewStatusBar()
	s.SetSize(10)
	s.SetInfo("a very long status line")

	f := snapshot.Capture(s.String())
	assert.LessOrEqual(t, f.Width(), 10)
	assert.True(t, f.Contains("…"))
}
