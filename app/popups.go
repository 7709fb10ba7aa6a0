package app

import (
	"anchor/align"
	"anchor/geom"
	"anchor/placement"
	"anchor/trigger"
	"anchor/ui"
	"anchor/ui/layout"
	"anchor/ui/overlay"
	"anchor/watch"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	buttonHandle watch.Handle = "button"
	tipHandle    watch.Handle = "tip"
	// moreHandle is the last line of the tip; the nested popup hangs off it.
	moreHandle   watch.Handle = "tip.more"
	nestedHandle watch.Handle = "nested"
)

const (
	buttonWidth  = 12
	buttonHeight = 3
)

const tipContent = "Aligned popup\nMove the target with the arrows and scroll the stage to watch it flip.\n▸ more (n)"

const nestedContent = "Nested popup\nClicks in here keep the parent open."

const (
	motionFrames        = 6
	motionFrameInterval = 30 * time.Millisecond
)

// popupView is the rendering side of one popup.
type popupView struct {
	handle  watch.Handle
	popup   *trigger.Popup
	content string

	size     geom.Size
	wrap     int
	maxLines int

	// last is the latest ready result; a closing motion keeps drawing it.
	last align.Result

	scale     float64
	frame     int
	opening   bool
	motionGen int
}

func newPopupView(h watch.Handle, content string) *popupView {
	return &popupView{handle: h, content: content, scale: 1}
}

// visible reports whether the popup is drawn.
func (pv *popupView) visible() bool {
	if pv.popup == nil {
		return false
	}
	if pv.popup.InMotion() {
		return pv.last.Ready && pv.popup.Phase() == trigger.Moving
	}
	return pv.popup.Open() && pv.popup.Result().Ready
}

// rect is the popup at its aligned position.
func (pv *popupView) rect() (geom.Rect, bool) {
	if !pv.visible() {
		return geom.Rect{}, false
	}
	return geom.RectAt(pv.last.Position(geom.Vec{}), pv.size), true
}

func (pv *popupView) setScale(s *ui.Screen, scale float64) {
	pv.scale = scale
	s.SetScale(pv.handle, geom.Scale{X: scale, Y: scale})
}

func (pv *popupView) motionScale() float64 {
	if pv.opening {
		return float64(pv.frame+1) / motionFrames
	}
	return 1 - float64(pv.frame)/motionFrames
}

// render draws the box at its aligned position.
func (pv *popupView) render(d layout.Degradation) (ui.PlacedPopup, bool) {
	if !pv.visible() {
		return ui.PlacedPopup{}, false
	}
	res := pv.last
	opts := overlay.PopupOptions{Width: pv.wrap, MaxHeight: pv.maxLines, Square: d.SquareBorders}
	if !d.HideArrow {
		opts.Arrow = res.Arrow
		opts.ArrowX = res.ArrowX
		opts.ArrowY = res.ArrowY
	}
	box := overlay.RenderPopup(pv.content, opts)
	if pv.scale < 1 {
		lines := strings.Split(box, "\n")
		n := max(int(math.Ceil(float64(len(lines))*pv.scale)), 1)
		box = strings.Join(lines[:n], "\n")
	}
	pos := res.Position(geom.Vec{})
	return ui.PlacedPopup{Box: box, X: int(math.Floor(pos.X)), Y: int(math.Floor(pos.Y))}, true
}

// measure sizes the popup for the current stage and registers it with the
// screen.
func (m *home) measure(pv *popupView) {
	pw, ph := lipgloss.Size(overlay.RenderPopup(pv.content, overlay.PopupOptions{}))
	w, _ := layout.ComputePopupSize(m.layout.StageWidth, m.layout.StageHeight, pw, ph)
	pv.wrap = max(w-4, 1)
	// Wrapping adds lines; the height limit applies to the wrapped box.
	_, wh := lipgloss.Size(overlay.RenderPopup(pv.content, overlay.PopupOptions{Width: pv.wrap}))
	_, h := layout.ComputePopupSize(m.layout.StageWidth, m.layout.StageHeight, w, wh)
	pv.maxLines = max(h-2, 1)

	bw, bh := lipgloss.Size(overlay.RenderPopup(pv.content, overlay.PopupOptions{Width: pv.wrap, MaxHeight: pv.maxLines}))
	size := geom.Size{Width: float64(bw), Height: float64(bh)}
	changed := size != pv.size
	pv.size = size
	m.screen.SetPopup(pv.handle, size)
	if changed && pv.popup != nil {
		pv.popup.PopupResized()
	}
}

// explicitRule returns the table rule with the playground toggles applied,
// or nil when the toggles match the table.
func (m *home) explicitRule() *placement.Rule {
	base := placement.Resolve(nil, m.placement, m.table, placement.Neutral())
	r := base
	r.Overflow.AdjustX = m.adjustX
	r.Overflow.AdjustY = m.adjustY
	r.Region = m.region
	if !m.appConfig.Arrow {
		r.AutoArrow = false
	}
	if r == base {
		return nil
	}
	return &r
}

// buildPopups (re)creates the popups. Toggles that change construction-time
// options go through here; the open state survives.
func (m *home) buildPopups() {
	open := m.appConfig.DefaultOpen
	if m.tip != nil && m.tip.popup != nil {
		open = m.tip.popup.Open()
	}
	m.closePopups()

	m.tip = newPopupView(tipHandle, tipContent)
	m.measure(m.tip)
	tip := m.tip
	tip.popup = trigger.New(m.screen, m.sched, trigger.Options{
		ID:              "tip",
		Target:          buttonHandle,
		Popup:           tipHandle,
		Placement:       m.placement,
		Table:           m.table,
		Rule:            m.explicitRule(),
		AlignPoint:      m.pointerMode,
		DefaultOpen:     open,
		MouseEnterDelay: m.appConfig.EnterDelay(),
		MouseLeaveDelay: trigger.Delay(m.appConfig.LeaveDelay()),
		Motion:          m.motion,
		ClickToHide:     true,
		OnAlign: func(res align.Result) {
			if res.Ready {
				tip.last = res
			}
			m.placeMore(res)
		},
	})
	if m.pointerMode {
		if r, ok := m.screen.Rect(buttonHandle); ok {
			tip.popup.PointerAt(r.Center())
		}
	}
	if m.nested {
		m.buildNested()
	}
}

func (m *home) buildNested() {
	m.child = newPopupView(nestedHandle, nestedContent)
	m.measure(m.child)
	child := m.child
	open := m.nestedOpen()
	child.popup = trigger.New(m.screen, m.sched, trigger.Options{
		ID:        "nested",
		Target:    moreHandle,
		Popup:     nestedHandle,
		Placement: "right-top",
		Table:     m.table,
		Open:      &open,
		Motion:    m.motion,
		Parent:    m.tip.popup.Registry(),
		OnAlign: func(res align.Result) {
			if res.Ready {
				child.last = res
			}
		},
	})
}

func (m *home) closeNested() {
	if m.child == nil {
		return
	}
	m.child.popup.Close()
	m.screen.Remove(nestedHandle)
	m.child = nil
}

func (m *home) closePopups() {
	m.closeNested()
	if m.tip != nil && m.tip.popup != nil {
		m.tip.popup.Close()
	}
	m.screen.Remove(tipHandle)
	m.screen.Remove(moreHandle)
}

func (m *home) nestedOpen() bool {
	return m.nested && m.tip != nil && m.tip.popup != nil &&
		m.tip.popup.Open() && !m.tip.popup.InMotion() && m.tip.last.Ready
}

// syncNested keeps the controlled nested popup open while its parent is.
func (m *home) syncNested() {
	if m.child == nil {
		return
	}
	open := m.nestedOpen()
	m.child.popup.SetOpen(&open)
}

// placeMore moves the nested popup's target along with the tip.
func (m *home) placeMore(res align.Result) {
	if !res.Ready {
		return
	}
	pos := res.Position(geom.Vec{})
	m.screen.Place(moreHandle, geom.NewRect(pos.X+2, pos.Y+m.tip.size.Height-2, max(m.tip.size.Width-4, 1), 1))
	if m.child != nil {
		m.child.popup.TargetResized()
	}
}

func (m *home) popups() []*popupView {
	var out []*popupView
	if m.tip != nil {
		out = append(out, m.tip)
	}
	if m.child != nil {
		out = append(out, m.child)
	}
	return out
}

func (m *home) popupByHandle(h watch.Handle) *popupView {
	for _, pv := range m.popups() {
		if pv.handle == h {
			return pv
		}
	}
	return nil
}

type motionFrameMsg struct {
	handle watch.Handle
	gen    int
}

func motionTick(h watch.Handle, gen int) tea.Cmd {
	return tea.Tick(motionFrameInterval, func(time.Time) tea.Msg {
		return motionFrameMsg{handle: h, gen: gen}
	})
}

// startMotions runs the motion handshake for popups whose open state just
// changed: the popup is aligned against its final rect, then the frames
// start.
func (m *home) startMotions() tea.Cmd {
	var cmds []tea.Cmd
	for _, pv := range m.popups() {
		if !pv.popup.InMotion() || pv.popup.Phase() != trigger.Idle {
			continue
		}
		pv.popup.Prepare(func() {
			pv.motionGen++
			pv.frame = 0
			pv.opening = pv.popup.Open()
			pv.setScale(m.screen, pv.motionScale())
			cmds = append(cmds, motionTick(pv.handle, pv.motionGen))
		})
	}
	return tea.Batch(cmds...)
}

func (m *home) handleMotionFrame(msg motionFrameMsg) tea.Cmd {
	pv := m.popupByHandle(msg.handle)
	if pv == nil || pv.motionGen != msg.gen || pv.popup.Phase() != trigger.Moving {
		return nil
	}
	pv.frame++
	if pv.frame >= motionFrames {
		pv.setScale(m.screen, 1)
		pv.popup.MotionDone(pv.opening)
		return nil
	}
	pv.setScale(m.screen, pv.motionScale())
	return motionTick(pv.handle, pv.motionGen)
}
