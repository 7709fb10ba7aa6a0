package ui

import (
	"anchor/align"
	"anchor/geom"
	"anchor/placement"
	"anchor/testing/fakeclock"
	"anchor/watch"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStageScreen() *Screen {
	s := NewScreen(60, 24)
	s.SetStage(geom.NewRect(0, 0, 40, 20), geom.Size{Width: 120, Height: 60})
	return s
}

func TestScreenRects(t *testing.T) {
	s := newStageScreen()
	s.PlaceInStage("btn", geom.NewRect(10, 5, 8, 3))
	s.Place("status", geom.NewRect(0, 23, 60, 1))
	s.SetPopup("tip", geom.Size{Width: 12, Height: 4})

	r, ok := s.Rect("btn")
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(10, 5, 8, 3), r)

	r, ok = s.Rect("tip")
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(0, 0, 12, 4), r, "popups are reported at rest")

	_, ok = s.Rect("missing")
	assert.False(t, ok)

	assert.Equal(t, []watch.Handle{Stage}, s.Scrollers("btn"))
	assert.Nil(t, s.Scrollers("status"))
	assert.Equal(t, geom.Identity, s.Scale("tip"))
}

func TestScreenScroll(t *testing.T) {
	s := newStageScreen()
	s.PlaceInStage("btn", geom.NewRect(10, 5, 8, 3))

	calls := 0
	cancel := s.Subscribe(Stage, func() { calls++ })

	assert.True(t, s.ScrollBy(0, 3))
	r, _ := s.Rect("btn")
	assert.Equal(t, geom.NewRect(10, 2, 8, 3), r)
	assert.Equal(t, 1, calls)

	b := s.Bounds("tip")
	assert.Equal(t, geom.NewRect(0, 0, 40, 20), b.Visible)
	assert.Equal(t, geom.NewRect(0, -3, 120, 60), b.Scroll)

	// Clamped to the content: 60 - 20 = 40 rows of scroll room.
	s.ScrollBy(0, 100)
	assert.Equal(t, geom.Vec{X: 0, Y: 40}, s.ScrollOffset())
	assert.False(t, s.ScrollBy(0, 1), "already at the end")
	assert.Equal(t, 2, calls)

	cancel()
	s.ScrollBy(0, -10)
	assert.Equal(t, 2, calls)
	assert.Zero(t, s.Listeners(Stage))
}

func TestScreenResizeNotifiesWindow(t *testing.T) {
	s := newStageScreen()
	calls := 0
	s.Subscribe(watch.Window, func() { calls++ })

	s.Resize(60, 24)
	assert.Zero(t, calls, "same size")
	s.Resize(80, 30)
	assert.Equal(t, 1, calls)
	w, h := s.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 30, h)
}

func TestScreenElementAt(t *testing.T) {
	s := newStageScreen()
	s.PlaceInStage("a", geom.NewRect(0, 0, 10, 10))
	s.PlaceInStage("b", geom.NewRect(5, 5, 10, 10))
	s.Place("fixed", geom.NewRect(6, 6, 2, 2))
	s.SetPopup("tip", geom.Size{Width: 50, Height: 50})

	tests := []struct {
		name string
		at   geom.Vec
		want watch.Handle
		ok   bool
	}{
		{name: "single element", at: geom.Vec{X: 1, Y: 1}, want: "a", ok: true},
		{name: "overlap goes to smallest handle", at: geom.Vec{X: 5, Y: 5}, want: "a", ok: true},
		{name: "fixed elements are on top", at: geom.Vec{X: 6, Y: 6}, want: "fixed", ok: true},
		{name: "popups are ignored", at: geom.Vec{X: 30, Y: 30}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := s.ElementAt(tt.at)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestScreenElementAtIgnoresScrolledOut(t *testing.T) {
	s := newStageScreen()
	s.PlaceInStage("btn", geom.NewRect(10, 0, 8, 3))
	s.ScrollBy(0, 2)

	// Row -1 is above the stage viewport even though the target covers it.
	_, ok := s.ElementAt(geom.Vec{X: 11, Y: -1})
	assert.False(t, ok)
	h, ok := s.ElementAt(geom.Vec{X: 11, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, watch.Handle("btn"), h)
}

func newScreenLoop(t *testing.T, s *Screen, ruleName string, region placement.Region) (*watch.Loop, *fakeclock.Clock) {
	t.Helper()
	clock := fakeclock.New()
	loop := watch.New(s, clock, nil)

	table := placement.Builtins()
	rule := table[ruleName]
	rule.Region = region
	loop.SetTable(table)
	loop.SetRule(rule)
	loop.SetPlacement(ruleName)
	loop.SetTarget("btn")
	loop.SetPopup("tip")
	loop.SetOpen(true)
	return loop, clock
}

func TestScreenDrivesLoop(t *testing.T) {
	s := newStageScreen()
	s.PlaceInStage("btn", geom.NewRect(10, 5, 8, 3))
	s.SetPopup("tip", geom.Size{Width: 12, Height: 4})

	loop, clock := newScreenLoop(t, s, "bottom", placement.RegionVisible)
	res := loop.Result()
	require.True(t, res.Ready)
	// Popup top-center (6,0) onto target bottom-center (14,8) plus the gap.
	assert.Equal(t, 8.0, res.OffsetX)
	assert.Equal(t, 9.0, res.OffsetY)
	assert.Equal(t, 1, s.Listeners(Stage))
	assert.Equal(t, 1, s.Listeners(watch.Window))

	s.ScrollBy(0, 3)
	assert.Equal(t, 9.0, loop.Result().OffsetY, "scroll waits for the next frame")
	clock.Advance(watch.FrameInterval)
	assert.Equal(t, 6.0, loop.Result().OffsetY)

	loop.SetOpen(false)
	assert.Zero(t, s.Listeners(Stage))
	assert.Zero(t, s.Listeners(watch.Window))
}

func TestScreenRegionPolicies(t *testing.T) {
	tests := []struct {
		name      string
		region    placement.Region
		wantY     float64
		wantPlace string
		wantFlip  bool
	}{
		// The popup would end at row 24, past the 20-row stage.
		{name: "visible flips to top", region: placement.RegionVisible, wantY: 11, wantPlace: "top", wantFlip: true},
		{name: "scroll has room below", region: placement.RegionScroll, wantY: 20, wantPlace: "bottom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStageScreen()
			s.PlaceInStage("btn", geom.NewRect(10, 16, 8, 3))
			s.SetPopup("tip", geom.Size{Width: 12, Height: 4})

			loop, _ := newScreenLoop(t, s, "bottom", tt.region)
			res := loop.Result()
			require.True(t, res.Ready)
			assert.Equal(t, tt.wantY, res.OffsetY)
			assert.Equal(t, tt.wantPlace, res.Placement)
			assert.Equal(t, tt.wantFlip, res.FlippedY)
		})
	}
}

func TestScreenBoundsWithoutScrollRoom(t *testing.T) {
	s := NewScreen(30, 10)
	assert.Equal(t, align.Viewport(geom.NewRect(0, 0, 30, 10)), s.Bounds("tip"))
}
