package watch_test

import (
	"anchor/align"
	"anchor/geom"
	"anchor/placement"
	"anchor/testing/fakeclock"
	"anchor/watch"
	mock_watch "anchor/watch/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type listener struct {
	h  watch.Handle
	fn func()
}

type fixture struct {
	clock *fakeclock.Clock
	loop  *watch.Loop

	target   geom.Rect
	targetOK bool
	popup    geom.Rect
	scale    geom.Scale
	bounds   align.Bounds

	listeners map[int]listener
	nextID    int
	aligned   []align.Result
}

func bottomRule() placement.Rule {
	return placement.Rule{
		PopupAnchor:  geom.TopCenter,
		TargetAnchor: geom.BottomCenter,
		Offset:       placement.XY(0, 4),
		Overflow:     placement.Overflow{AdjustY: true},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	host := mock_watch.NewMockHost(ctrl)

	f := &fixture{
		clock:     fakeclock.New(),
		target:    geom.NewRect(100, 100, 50, 20),
		targetOK:  true,
		popup:     geom.NewRect(0, 0, 80, 30),
		scale:     geom.Identity,
		bounds:    align.Viewport(geom.NewRect(0, 0, 1000, 1000)),
		listeners: make(map[int]listener),
	}

	host.EXPECT().Rect(gomock.Any()).DoAndReturn(func(h watch.Handle) (geom.Rect, bool) {
		switch h {
		case "target":
			return f.target, f.targetOK
		case "popup":
			return f.popup, true
		}
		return geom.Rect{}, false
	}).AnyTimes()
	host.EXPECT().Scale(watch.Handle("popup")).DoAndReturn(func(watch.Handle) geom.Scale { return f.scale }).AnyTimes()
	host.EXPECT().Bounds(watch.Handle("popup")).DoAndReturn(func(watch.Handle) align.Bounds { return f.bounds }).AnyTimes()
	host.EXPECT().Scrollers(watch.Handle("target")).Return([]watch.Handle{"list"}).AnyTimes()
	host.EXPECT().Subscribe(gomock.Any(), gomock.Any()).DoAndReturn(func(h watch.Handle, fn func()) func() {
		id := f.nextID
		f.nextID++
		f.listeners[id] = listener{h: h, fn: fn}
		return func() { delete(f.listeners, id) }
	}).AnyTimes()

	f.loop = watch.New(host, f.clock, func(r align.Result) { f.aligned = append(f.aligned, r) })
	f.loop.SetRule(bottomRule())
	f.loop.SetTarget("target")
	f.loop.SetPopup("popup")
	return f
}

func (f *fixture) fire(h watch.Handle) {
	for _, l := range f.listeners {
		if l.h == h {
			l.fn()
		}
	}
}

func TestOpenAligns(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.loop.Result().Ready, "closed popups are not aligned")
	assert.Empty(t, f.aligned)

	f.loop.SetOpen(true)

	res := f.loop.Result()
	require.True(t, res.Ready)
	assert.Equal(t, 85.0, res.OffsetX)
	assert.Equal(t, 124.0, res.OffsetY)
	assert.Len(t, f.aligned, 1)
	assert.Len(t, f.listeners, 2, "window and the scrollable ancestor")
}

func TestScrollIsCoalescedIntoOneFrame(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)

	f.target = f.target.Translate(0, -10)
	f.fire("list")
	f.fire("list")
	f.fire(watch.Window)
	assert.Len(t, f.aligned, 1, "scroll recomputes wait for the next frame")
	assert.Equal(t, 1, f.clock.Pending())

	f.clock.Advance(watch.FrameInterval)
	assert.Len(t, f.aligned, 2)
	assert.Equal(t, 114.0, f.loop.Result().OffsetY)
}

func TestResizeRecomputes(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)

	f.popup = geom.NewRect(0, 0, 100, 30)
	f.loop.PopupResized()
	f.loop.TargetResized()
	f.clock.Advance(watch.FrameInterval)

	assert.Len(t, f.aligned, 2)
	assert.Equal(t, 75.0, f.loop.Result().OffsetX)
}

func TestIdenticalInputsAreSkipped(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)

	f.loop.Trigger()
	f.loop.Trigger()
	assert.Len(t, f.aligned, 1)

	f.loop.Force()
	assert.Len(t, f.aligned, 2, "force bypasses the cache")
}

func TestRuleComparedByValue(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)

	f.loop.SetRule(bottomRule())
	assert.Len(t, f.aligned, 1)

	r := bottomRule()
	r.Offset = placement.XY(0, 8)
	f.loop.SetRule(r)
	assert.Len(t, f.aligned, 2)
	assert.Equal(t, 128.0, f.loop.Result().OffsetY)
}

func TestMotionGate(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)
	f.loop.SetInMotion(true)

	f.target = f.target.Translate(10, 0)
	f.loop.Trigger()
	assert.Len(t, f.aligned, 1, "no pass while in motion")
	assert.Equal(t, 85.0, f.loop.Result().OffsetX)

	f.loop.Force()
	assert.Len(t, f.aligned, 2)
	assert.Equal(t, 95.0, f.loop.Result().OffsetX)
}

func TestPlacementChangeIsSynchronous(t *testing.T) {
	f := newFixture(t)
	f.loop.SetTable(placement.Builtins())
	f.loop.SetOpen(true)

	top := placement.Builtins()["top"]
	f.loop.SetRule(top)
	f.loop.SetPlacement("top")

	res := f.loop.Result()
	assert.True(t, res.Ready)
	assert.Equal(t, "top", res.Placement)
	assert.Equal(t, 100.0-30-placement.DefaultGap, res.OffsetY)
	assert.Zero(t, f.clock.Pending())
}

func TestCloseResetsReadyAndDetaches(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)
	require.True(t, f.loop.Result().Ready)

	f.loop.SetOpen(false)
	assert.False(t, f.loop.Result().Ready)
	assert.Empty(t, f.listeners)

	f.loop.TargetResized()
	assert.Zero(t, f.clock.Pending())

	f.loop.SetOpen(true)
	assert.True(t, f.loop.Result().Ready)
	assert.Len(t, f.aligned, 2)
}

func TestUnmountDiscardsResult(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)

	f.loop.SetTarget("")
	assert.Equal(t, align.Result{}, f.loop.Result())

	f.loop.SetTarget("target")
	assert.True(t, f.loop.Result().Ready)
}

func TestCloseCancelsPendingFrame(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)
	f.fire("list")
	require.Equal(t, 1, f.clock.Pending())

	f.loop.Close()
	assert.Zero(t, f.clock.Pending())
	assert.Empty(t, f.listeners)

	f.clock.Advance(watch.FrameInterval)
	f.loop.Force()
	assert.Len(t, f.aligned, 1)
	assert.Equal(t, align.Result{}, f.loop.Result())
}

func TestUnmeasuredTargetIsNotReady(t *testing.T) {
	f := newFixture(t)
	f.targetOK = false
	f.loop.SetOpen(true)

	assert.False(t, f.loop.Result().Ready)
	assert.Empty(t, f.aligned)
}

func TestScaledPopupIsUnscaled(t *testing.T) {
	f := newFixture(t)
	f.popup = geom.NewRect(0, 0, 40, 15)
	f.scale = geom.Scale{X: 0.5, Y: 0.5}
	f.loop.SetOpen(true)

	res := f.loop.Result()
	assert.Equal(t, 85.0, res.OffsetX)
	assert.Equal(t, 124.0, res.OffsetY)
	assert.Equal(t, 0.5, res.ScaleX)
}

func TestFlipsStickAcrossPasses(t *testing.T) {
	f := newFixture(t)
	f.bounds = align.Viewport(geom.NewRect(0, 0, 1000, 140))
	f.loop.SetOpen(true)
	require.True(t, f.loop.Result().FlippedY)

	f.bounds = align.Viewport(geom.NewRect(0, 0, 1000, 1000))
	f.fire(watch.Window)
	f.clock.Advance(watch.FrameInterval)

	assert.Len(t, f.aligned, 2)
	assert.Equal(t, 66.0, f.loop.Result().OffsetY)
}

func TestPointerMode(t *testing.T) {
	f := newFixture(t)
	f.loop.SetOpen(true)

	f.loop.SetAlignPoint(&geom.Vec{X: 10, Y: 20})
	res := f.loop.Result()
	assert.Equal(t, 10.0-40, res.OffsetX)
	assert.Equal(t, 24.0, res.OffsetY)

	f.loop.SetAlignPoint(&geom.Vec{X: 10, Y: 20})
	assert.Len(t, f.aligned, 2, "same point is not a change")

	f.loop.SetAlignPoint(nil)
	assert.Equal(t, 85.0, f.loop.Result().OffsetX)
}
