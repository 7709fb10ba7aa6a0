package app

import (
	"anchor/config"
	"anchor/geom"
	"anchor/placement"
	"anchor/sched"
	"anchor/testing/fakeclock"
	"anchor/testing/harness"
	"anchor/trigger"
	"anchor/watch"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHome(t *testing.T, cfg *config.Config) (*harness.Harness, *home, *fakeclock.Clock) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clock := fakeclock.New()
	m := newHome(context.Background(), cfg, clock)
	t.Cleanup(m.close)
	h := harness.New(t, m, 120, 40)
	clock.Advance(watch.FrameInterval)
	return h, m, clock
}

func buttonRect(t *testing.T, m *home) geom.Rect {
	t.Helper()
	r, ok := m.screen.Rect(buttonHandle)
	require.True(t, ok)
	return r
}

func TestTipOpensOnStartup(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	require.True(t, m.tip.popup.Open())
	res := m.tip.popup.Result()
	require.True(t, res.Ready)
	assert.Equal(t, "bottom", res.Placement)

	btn := buttonRect(t, m)
	r, ok := m.tip.rect()
	require.True(t, ok)
	assert.Equal(t, btn.Bottom()+placement.DefaultGap, r.Y)

	f := h.Frame()
	assert.True(t, f.Contains("target"))
	x, y, ok := f.Find("Aligned popup")
	require.True(t, ok)
	assert.Equal(t, int(r.X)+2, x, "border and padding")
	assert.Equal(t, int(r.Y)+1, y)
	assert.True(t, f.Contains("popup-placement-bottom"), "class name in the status bar")
}

func TestStartsClosedWhenConfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultOpen = false
	h, m, _ := newTestHome(t, cfg)

	assert.False(t, m.tip.popup.Open())
	assert.False(t, h.Frame().Contains("Aligned popup"))
}

func TestToggle(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	h.SendKey("space")
	assert.False(t, m.tip.popup.Open())
	assert.False(t, m.tip.popup.Result().Ready)
	assert.False(t, h.Frame().Contains("Aligned popup"))

	h.SendKey("space")
	assert.True(t, m.tip.popup.Open())
	assert.True(t, m.tip.popup.Result().Ready, "aligned before the next paint")
	assert.True(t, h.Frame().Contains("Aligned popup"))
}

func TestPlacementCycling(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	h.SendKey("p")
	assert.Equal(t, "bottom-left", m.placement)
	assert.Equal(t, "bottom-left", m.tip.popup.Result().Placement)

	harness.NewKeySequence("P", "P").Play(h)
	assert.Equal(t, "top-right", m.placement, "wraps around")
	// top-right would leave the stage on the left.
	res := m.tip.popup.Result()
	assert.True(t, res.FlippedX)
	assert.Equal(t, "top-left", res.Placement)
}

func TestPlacementPicker(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	h.SendKey("s")
	require.Equal(t, statePicker, m.state)
	assert.True(t, h.Frame().Contains("bottom-left"))

	h.SendKey("down")
	h.SendKey("enter")
	assert.Equal(t, stateDefault, m.state)
	assert.Nil(t, m.picker)
	assert.Equal(t, "bottom-left", m.placement)

	h.SendKey("s")
	h.SendKey("esc")
	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, "bottom-left", m.placement, "dismissed without a selection")
}

func TestHelpScreen(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	h.SendKey("?")
	require.Equal(t, stateHelp, m.state)
	assert.True(t, h.Frame().Contains("pick placement"))

	// Keys only close the help screen.
	h.SendKey("space")
	assert.Equal(t, stateDefault, m.state)
	assert.True(t, m.tip.popup.Open())
}

func TestMovingTheTargetRealignsOnNextFrame(t *testing.T) {
	h, m, clock := newTestHome(t, nil)
	before := m.tip.popup.Result()

	h.SendKey("down")
	h.SendKey("right")
	assert.Equal(t, before, m.tip.popup.Result(), "coalesced into the next frame")

	clock.Advance(watch.FrameInterval)
	after := m.tip.popup.Result()
	assert.Equal(t, before.OffsetX+1, after.OffsetX)
	assert.Equal(t, before.OffsetY+1, after.OffsetY)
}

func TestFlipsAtTheStageEdge(t *testing.T) {
	_, m, clock := newTestHome(t, nil)
	btn := buttonRect(t, m)
	stage := m.screen.StageRect()

	// Bottom edge of the target one row above the end of the stage.
	m.moveButton(0, stage.Bottom()-1-btn.Bottom())
	clock.Advance(watch.FrameInterval)

	res := m.tip.popup.Result()
	require.True(t, res.Ready)
	assert.True(t, res.FlippedY)
	assert.Equal(t, "top", res.Placement)
	assert.Contains(t, m.tip.popup.ClassName(), "popup-placement-top")

	r, ok := m.tip.rect()
	require.True(t, ok)
	assert.Equal(t, buttonRect(t, m).Y-placement.DefaultGap, r.Bottom())
}

func TestAdjustToggleDisablesFlip(t *testing.T) {
	h, m, clock := newTestHome(t, nil)
	btn := buttonRect(t, m)
	m.moveButton(0, m.screen.StageRect().Bottom()-1-btn.Bottom())
	clock.Advance(watch.FrameInterval)
	require.True(t, m.tip.popup.Result().FlippedY)

	h.SendKey("y")
	assert.False(t, m.adjustY)
	require.NotNil(t, m.explicitRule())
	assert.False(t, m.tip.popup.Result().FlippedY)
	assert.Equal(t, "bottom", m.tip.popup.Result().Placement)

	h.SendKey("y")
	assert.Nil(t, m.explicitRule(), "back to the table rule")
}

func TestRegionCycle(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	h.SendKey("g")
	assert.Equal(t, placement.RegionScroll, m.region)
	assert.Equal(t, placement.RegionScroll, m.tip.popup.Rule().Region)

	harness.NewKeySequence("g", "g").Play(h)
	assert.Equal(t, placement.RegionVisible, m.region)
	assert.Nil(t, m.explicitRule())
}

func TestScrollingMovesThePopup(t *testing.T) {
	h, m, clock := newTestHome(t, nil)
	before := m.tip.popup.Result()

	h.Wheel(10, 10, 1)
	assert.Equal(t, geom.Vec{Y: 1}, m.screen.ScrollOffset())
	clock.Advance(watch.FrameInterval)
	assert.Equal(t, before.OffsetY-1, m.tip.popup.Result().OffsetY)

	h.SendKey("pgdown")
	assert.Equal(t, float64(1+m.layout.StageHeight/2), m.screen.ScrollOffset().Y)
}

func TestHoverLeaveClosesAfterDelay(t *testing.T) {
	h, m, clock := newTestHome(t, nil)
	btn := buttonRect(t, m)

	h.Hover(int(btn.X)+1, int(btn.Y)+1)
	assert.True(t, m.overButton)

	h.Hover(110, 30)
	assert.Equal(t, "pending-close", m.tip.popup.State().String())
	assert.True(t, m.tip.popup.Open())

	clock.Advance(100 * time.Millisecond)
	assert.False(t, m.tip.popup.Open())
}

func TestClicks(t *testing.T) {
	h, m, _ := newTestHome(t, nil)
	btn := buttonRect(t, m)

	r, ok := m.tip.rect()
	require.True(t, ok)
	h.Click(int(r.X)+1, int(r.Y)+1)
	assert.True(t, m.tip.popup.Open(), "clicks in the popup keep it open")

	h.Click(110, 30)
	assert.False(t, m.tip.popup.Open(), "click outside")

	h.Click(int(btn.X)+1, int(btn.Y)+1)
	assert.True(t, m.tip.popup.Open(), "click on the target toggles")
}

func TestPointerMode(t *testing.T) {
	h, m, _ := newTestHome(t, nil)
	btn := buttonRect(t, m)

	h.SendKey("a")
	require.True(t, m.pointerMode)
	require.True(t, m.tip.popup.Open(), "open state survives the rebuild")

	px, py := int(btn.X)+10, int(btn.Y)+1
	h.Hover(px, py)
	res := m.tip.popup.Result()
	require.True(t, res.Ready)
	assert.Equal(t, float64(px)-m.tip.size.Width/2, res.OffsetX)
	assert.Equal(t, float64(py)+placement.DefaultGap, res.OffsetY)
}

func TestNestedPopup(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	h.SendKey("n")
	require.NotNil(t, m.child)
	assert.True(t, m.child.popup.Open())
	require.True(t, m.child.popup.Result().Ready)

	cr, ok := m.child.rect()
	require.True(t, ok)
	assert.True(t, m.tip.popup.InPopupOrChild(cr.Center()))

	// A cell of the nested popup outside the tip.
	tr, _ := m.tip.rect()
	cx, cy := int(cr.Right())-2, int(cr.Bottom())-1
	require.False(t, tr.Contains(geom.Vec{X: float64(cx), Y: float64(cy)}))
	h.Click(cx, cy)
	assert.True(t, m.tip.popup.Open(), "clicks in a nested popup keep the parent open")

	h.SendKey("space")
	assert.False(t, m.child.popup.Open(), "follows the parent")

	h.SendKey("space")
	assert.True(t, m.child.popup.Open())

	h.SendKey("n")
	assert.Nil(t, m.child)
	_, ok = m.screen.Rect(nestedHandle)
	assert.False(t, ok)
}

func playMotion(h *harness.Harness, pv *popupView, frames int) {
	for i := 0; i < frames; i++ {
		h.SendMsg(motionFrameMsg{handle: pv.handle, gen: pv.motionGen})
	}
}

func TestMotion(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Motion = true
	h, m, _ := newTestHome(t, cfg)

	require.True(t, m.tip.popup.InMotion())
	assert.Equal(t, trigger.Moving, m.tip.popup.Phase())
	assert.True(t, m.tip.visible())
	assert.Less(t, m.tip.scale, 1.0)

	// Stale frames are dropped.
	h.SendMsg(motionFrameMsg{handle: tipHandle, gen: m.tip.motionGen + 1})
	assert.Equal(t, 0, m.tip.frame)

	playMotion(h, m.tip, motionFrames-1)
	assert.Equal(t, trigger.Moving, m.tip.popup.Phase())
	playMotion(h, m.tip, 1)
	assert.Equal(t, trigger.Idle, m.tip.popup.Phase())
	assert.False(t, m.tip.popup.InMotion())
	assert.Equal(t, 1.0, m.tip.scale)
	assert.True(t, m.tip.popup.Result().Ready)

	h.SendKey("space")
	require.Equal(t, trigger.Moving, m.tip.popup.Phase())
	assert.True(t, m.tip.visible(), "closing motion keeps drawing the last result")
	assert.True(t, h.Frame().Contains("Aligned popup"))

	playMotion(h, m.tip, motionFrames)
	assert.False(t, m.tip.visible())
	assert.False(t, h.Frame().Contains("Aligned popup"))
}

func TestMotionGatesRealign(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Motion = true
	h, m, clock := newTestHome(t, cfg)
	before := m.tip.popup.Result()

	h.SendKey("down")
	clock.Advance(watch.FrameInterval)
	h.SendKey("r")
	assert.Equal(t, before, m.tip.popup.Result(), "no passes while moving")

	playMotion(h, m.tip, motionFrames)
	assert.Equal(t, before.OffsetY+1, m.tip.popup.Result().OffsetY, "realigned once the motion ends")
}

func TestApplyTable(t *testing.T) {
	_, m, _ := newTestHome(t, nil)

	menu := placement.Builtins()["bottom-left"]
	m.applyTable(placement.Table{"menu": menu}, nil)
	assert.Contains(t, m.names, "menu")
	assert.Contains(t, m.names, "bottom", "merged over the built-ins")
	assert.Empty(t, m.pending)

	m.applyTable(nil, errors.New("bad toml"))
	require.Error(t, m.status.Err())
	assert.Contains(t, m.status.Err().Error(), "placements not reloaded")
	assert.Len(t, m.pending, 1)
	assert.Contains(t, m.names, "menu", "the last good table stays")
}

func TestCloseDoesNotWaitOnAFullQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placements.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	cfg := config.DefaultConfig()
	cfg.PlacementsFile = path

	queue := sched.NewQueue(1)
	queue.Post(func() {})
	m := newHome(context.Background(), cfg, queue)
	m.queue = queue
	m.watchPlacements()
	require.NotNil(t, m.watcher)

	// The reload lands in the full queue and blocks the watcher goroutine.
	require.NoError(t, os.WriteFile(path, []byte(`{"menu": {"points": ["tl", "bl"]}}`), 0644))
	time.Sleep(500 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		m.close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("close blocked on the placements watcher")
	}
}

func TestResizeAcrossSizes(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		h, m, clock := newTestHome(t, nil)
		h.Resize(size.Width, size.Height)
		clock.Advance(watch.FrameInterval)

		assert.Equal(t, size.Width, m.layout.TerminalWidth)
		assert.True(t, h.Frame().Contains("target"))
		assert.True(t, m.tip.popup.Result().Ready)
	})
}

func TestInspectNode(t *testing.T) {
	h, m, _ := newTestHome(t, nil)

	n := m.InspectNode()
	tip := n.Find(string(tipHandle))
	require.NotNil(t, tip)
	assert.True(t, tip.Visible)
	assert.Equal(t, "open", tip.State["state"])

	h.SendKey("space")
	tip = m.InspectNode().Find(string(tipHandle))
	require.NotNil(t, tip)
	assert.False(t, tip.Visible)
	assert.NotNil(t, m.InspectNode().Find(string(buttonHandle)).Styles)
}
