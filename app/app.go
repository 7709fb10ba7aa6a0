package app

import (
	"anchor/config"
	"anchor/geom"
	"anchor/inspect"
	"anchor/keys"
	"anchor/log"
	"anchor/placement"
	"anchor/sched"
	"anchor/ui"
	"anchor/ui/layout"
	"anchor/ui/overlay"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run is the main entrypoint into the playground.
func Run(ctx context.Context, cfg *config.Config) error {
	queue := sched.NewQueue(64)
	h := newHome(ctx, cfg, queue)
	h.queue = queue
	h.watchPlacements()
	defer h.close()

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Hover and wheel
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// statePicker is the state when the placement picker is displayed.
	statePicker
	// stateHelp is the state when the help screen is displayed.
	stateHelp
)

func (s state) String() string {
	switch s {
	case statePicker:
		return "picker"
	case stateHelp:
		return "help"
	default:
		return "default"
	}
}

type home struct {
	ctx context.Context

	// -- Configuration --

	appConfig *config.Config
	// table is the built-in placements merged with the placements file.
	table placement.Table
	names []string

	// -- Scheduling --

	// sched arms the popup timers. In the running program it is queue.
	sched sched.Scheduler
	// queue delivers timer callbacks onto the UI thread.
	queue   *sched.Queue
	watcher *config.PlacementWatcher

	// -- State --

	state       state
	layout      layout.Constraints
	degradation layout.Degradation

	placement   string
	adjustX     bool
	adjustY     bool
	region      placement.Region
	pointerMode bool
	motion      bool
	nested      bool

	// button is the target rect in stage content coordinates.
	button     geom.Rect
	overButton bool
	inTip      bool

	// pending commands produced outside of Update, e.g. by queued callbacks.
	pending []tea.Cmd
	// note replaces the status info until the next key press.
	note string

	// -- Elements --

	screen *ui.Screen
	tip    *popupView
	child  *popupView

	// -- UI Components --

	menu      *ui.Menu
	inspector *ui.Inspector
	status    *ui.StatusBar
	help      help.Model
	picker    *overlay.PlacementSelectorOverlay
}

func newHome(ctx context.Context, cfg *config.Config, s sched.Scheduler) *home {
	table := cfg.LoadTable()
	name := cfg.DefaultPlacement
	if _, ok := table[name]; !ok {
		log.WarningLog.Printf("unknown default placement %q, using bottom", name)
		name = "bottom"
	}

	m := &home{
		ctx:       ctx,
		appConfig: cfg,
		table:     table,
		names:     table.Names(),
		sched:     s,
		state:     stateDefault,
		placement: name,
		adjustX:   true,
		adjustY:   true,
		region:    cfg.RegionPolicy(),
		motion:    cfg.Motion,
		screen:    ui.NewScreen(layout.MinWidth, layout.MinHeight),
		menu:      ui.NewMenu(),
		inspector: ui.NewInspector(),
		status:    ui.NewStatusBar(),
		help:      help.New(),
	}
	m.help.ShowAll = true

	if inspect.IsEnabled() {
		inspect.RegisterStyle("target.idle", ui.TargetStyles.Idle)
		inspect.RegisterStyle("target.hovered", ui.TargetStyles.Hovered)
		inspect.RegisterStyle("target.active", ui.TargetStyles.Active)
		inspect.RegisterStyle("panel", ui.PanelStyle())
	}

	m.resize(layout.MinWidth, layout.MinHeight)
	m.buildPopups()
	m.refresh()
	return m
}

// watchPlacements hot-reloads the placements file. Reloads are handed to
// the UI thread through the queue.
func (m *home) watchPlacements() {
	path, err := m.appConfig.PlacementsPath()
	if err != nil || path == "" || m.queue == nil {
		return
	}
	w, err := config.WatchPlacements(path, func(t placement.Table, err error) {
		m.queue.Post(func() { m.applyTable(t, err) })
	})
	if err != nil {
		log.WarningLog.Printf("not watching placements: %v", err)
		return
	}
	m.watcher = w
}

// close shuts the queue before waiting for the watcher, whose goroutine may
// be blocked posting a reload into a full queue.
func (m *home) close() {
	if m.queue != nil {
		m.queue.Close()
	}
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			log.WarningLog.Printf("failed to close placements watcher: %v", err)
		}
	}
	m.closePopups()
}

// applyTable installs a reloaded placements table and realigns right away.
func (m *home) applyTable(t placement.Table, err error) {
	if err != nil {
		m.pending = append(m.pending, m.handleError(fmt.Errorf("placements not reloaded: %w", err)))
		return
	}
	if err := t.Validate(); err != nil {
		m.pending = append(m.pending, m.handleError(err))
		return
	}
	m.table = placement.Builtins().Merge(t)
	m.names = m.table.Names()
	for _, pv := range m.popups() {
		pv.popup.SetTable(m.table)
	}
	m.tip.popup.SetRule(m.explicitRule())
	log.InfoLog.Printf("reloaded %d placements", len(t))
}

// resize lays the panels out for a terminal of the given size.
func (m *home) resize(width, height int) {
	m.layout = layout.ComputeConstraints(width, height)
	m.degradation = layout.ComputeDegradation(m.layout)
	log.LayoutTrace("resize %dx%d mode=%s stage=%dx%d", width, height, m.layout.Mode, m.layout.StageWidth, m.layout.StageHeight)

	cw, ch := layout.ComputeStageContent(m.layout)
	m.screen.SetStage(
		geom.NewRect(0, 0, float64(m.layout.StageWidth), float64(m.layout.StageHeight)),
		geom.Size{Width: float64(cw), Height: float64(ch)},
	)
	if m.button.IsEmpty() {
		m.button = geom.NewRect(
			float64((m.layout.StageWidth-buttonWidth)/2),
			float64((m.layout.StageHeight-buttonHeight)/2),
			buttonWidth, buttonHeight,
		)
	}
	m.moveButton(0, 0)
	m.screen.Resize(width, height)

	if m.layout.UseVerticalStack {
		m.inspector.SetSize(m.layout.InspectorWidth, m.layout.InspectorHeight)
	} else {
		m.inspector.SetSize(m.layout.InspectorWidth, m.layout.StageHeight)
	}
	m.inspector.SetDegradation(m.degradation)
	m.status.SetSize(m.layout.StatusWidth)
	m.menu.SetSize(m.layout.HelpWidth, m.layout.HelpHeight)
	m.menu.SetSingleLine(m.degradation.SingleLineHelp)
	m.help.Width = width
	if m.picker != nil {
		m.picker.SetWidth(min(44, width-4))
	}

	for _, pv := range m.popups() {
		m.measure(pv)
	}
}

// moveButton moves the target within the stage content.
func (m *home) moveButton(dx, dy float64) {
	content := m.screen.ContentSize()
	m.button.X = geom.Clamp(m.button.X+dx, 0, max(content.Width-m.button.Width, 0))
	m.button.Y = geom.Clamp(m.button.Y+dy, 0, max(content.Height-m.button.Height, 0))
	m.screen.PlaceInStage(buttonHandle, m.button)
	if m.tip != nil {
		m.tip.popup.TargetResized()
	}
}

func (m *home) setPlacement(name string) {
	m.placement = name
	m.tip.popup.SetRule(m.explicitRule())
	m.tip.popup.SetPlacement(name)
}

func (m *home) Init() tea.Cmd {
	return m.waitForEvent()
}

// schedMsg carries a queued timer callback onto the UI thread.
type schedMsg func()

func (m *home) waitForEvent() tea.Cmd {
	if m.queue == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case fn := <-m.queue.Events():
			return schedMsg(fn)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.afterUpdate())
}

func (m *home) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case schedMsg:
		msg()
		return m.waitForEvent()
	case motionFrameMsg:
		return m.handleMotionFrame(msg)
	case hideErrMsg:
		m.status.Clear()
	case keyupMsg:
		m.menu.ClearKeydown()
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case error:
		return m.handleError(msg)
	}
	return nil
}

// afterUpdate runs after every message: nested popups follow their parent,
// pending motions start and the panels pick up the new state.
func (m *home) afterUpdate() tea.Cmd {
	m.syncNested()
	cmds := append(m.pending, m.startMotions())
	m.pending = nil
	m.refresh()
	m.writeSnapshot()
	return tea.Batch(cmds...)
}

func (m *home) handleQuit() tea.Cmd {
	m.close()
	return tea.Quit
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state != stateDefault {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	log.InputTrace("key %q state=%s", msg.String(), m.state)
	m.note = ""
	highlightCmd := m.handleMenuHighlighting(msg)

	switch m.state {
	case stateHelp:
		m.state = stateDefault
		m.menu.SetState(ui.StateDefault)
		return nil
	case statePicker:
		if m.picker.HandleKeyPress(msg) {
			if m.picker.Selected != "" {
				m.setPlacement(m.picker.Selected)
			}
			m.picker = nil
			m.state = stateDefault
			m.menu.SetState(ui.StateDefault)
		}
		return nil
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}

	var cmd tea.Cmd
	switch name {
	case keys.KeyUp:
		m.moveButton(0, -1)
	case keys.KeyDown:
		m.moveButton(0, 1)
	case keys.KeyLeft:
		m.moveButton(-1, 0)
	case keys.KeyRight:
		m.moveButton(1, 0)
	case keys.KeyScrollUp:
		m.screen.ScrollBy(0, -float64(max(m.layout.StageHeight/2, 1)))
	case keys.KeyScrollDown:
		m.screen.ScrollBy(0, float64(max(m.layout.StageHeight/2, 1)))
	case keys.KeyToggle:
		m.tip.popup.TriggerOpen(!m.tip.popup.Open(), 0)
	case keys.KeyNextPlacement:
		m.setPlacement(m.cyclePlacement(1))
	case keys.KeyPrevPlacement:
		m.setPlacement(m.cyclePlacement(-1))
	case keys.KeyPickPlacement:
		m.picker = overlay.NewPlacementSelectorOverlay(m.table, m.placement)
		m.picker.SetWidth(min(44, m.layout.TerminalWidth-4))
		m.state = statePicker
		m.menu.SetState(ui.StatePicker)
	case keys.KeyAdjustX:
		m.adjustX = !m.adjustX
		m.tip.popup.SetRule(m.explicitRule())
	case keys.KeyAdjustY:
		m.adjustY = !m.adjustY
		m.tip.popup.SetRule(m.explicitRule())
	case keys.KeyRegion:
		m.region = nextRegion(m.region)
		m.tip.popup.SetRule(m.explicitRule())
	case keys.KeyPointer:
		m.pointerMode = !m.pointerMode
		m.buildPopups()
	case keys.KeyMotion:
		m.motion = !m.motion
		m.buildPopups()
	case keys.KeyNested:
		m.nested = !m.nested
		if m.nested {
			m.buildNested()
		} else {
			m.closeNested()
		}
	case keys.KeyRealign:
		for _, pv := range m.popups() {
			pv.popup.ForceAlign()
		}
	case keys.KeyCopy:
		cmd = m.copyResult()
	case keys.KeyHelp:
		m.state = stateHelp
		m.menu.SetState(ui.StateHelp)
	case keys.KeyQuit:
		return m.handleQuit()
	}
	return tea.Batch(highlightCmd, cmd)
}

func (m *home) cyclePlacement(delta int) string {
	if len(m.names) == 0 {
		return m.placement
	}
	i := 0
	for j, n := range m.names {
		if n == m.placement {
			i = j
			break
		}
	}
	i = (i + delta + len(m.names)) % len(m.names)
	return m.names[i]
}

var regionCycle = []placement.Region{placement.RegionVisible, placement.RegionScroll, placement.RegionVisibleFirst}

func nextRegion(r placement.Region) placement.Region {
	for i, c := range regionCycle {
		if c == r.Normalize() {
			return regionCycle[(i+1)%len(regionCycle)]
		}
	}
	return placement.RegionVisible
}

// copyResult puts the latest alignment result on the clipboard as JSON.
func (m *home) copyResult() tea.Cmd {
	data, err := json.MarshalIndent(m.tip.popup.Result(), "", "  ")
	if err != nil {
		return m.handleError(fmt.Errorf("failed to encode result: %w", err))
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return m.handleError(fmt.Errorf("failed to copy result: %w", err))
	}
	m.note = "alignment result copied"
	return nil
}

func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := geom.Vec{X: float64(msg.X), Y: float64(msg.Y)}
	if m.state != stateDefault {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.pointerMoved(p)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.screen.ScrollBy(0, -1)
		case tea.MouseButtonWheelDown:
			m.screen.ScrollBy(0, 1)
		case tea.MouseButtonWheelLeft:
			m.screen.ScrollBy(-1, 0)
		case tea.MouseButtonWheelRight:
			m.screen.ScrollBy(1, 0)
		case tea.MouseButtonLeft:
			m.click(p)
		}
	}
	return nil
}

// pointerMoved turns pointer motion into enter/leave events for the target
// and the popup.
func (m *home) pointerMoved(p geom.Vec) {
	h, _ := m.screen.ElementAt(p)
	over := h == buttonHandle
	switch {
	case over && !m.overButton:
		m.tip.popup.TargetEnter(p)
	case !over && m.overButton:
		m.tip.popup.TargetLeave()
	case over:
		m.tip.popup.PointerAt(p)
	}
	m.overButton = over

	r, ok := m.tip.rect()
	inTip := ok && r.Contains(p)
	if inTip != m.inTip {
		if inTip {
			m.tip.popup.PopupEnter()
		} else {
			m.tip.popup.PopupLeave()
		}
	}
	m.inTip = inTip
}

func (m *home) click(p geom.Vec) {
	if h, ok := m.screen.ElementAt(p); ok && h == buttonHandle {
		m.tip.popup.PointerAt(p)
		m.tip.popup.TriggerOpen(!m.tip.popup.Open(), 0)
		return
	}
	if m.tip.popup.ClickOutside(p) {
		log.InputTrace("click outside at %v closed the popup", p)
	}
}

// refresh hands the current state to the panels.
func (m *home) refresh() {
	res := m.tip.popup.Result()
	data := ui.InspectorData{
		Placement: m.placement,
		Result:    res,
		State:     m.tip.popup.State().String(),
		Phase:     m.tip.popup.Phase().String(),
		Region:    string(m.region),
		Pointer:   m.pointerMode,
		Motion:    m.motion,
		Nested:    m.nested,
		Scroll:    m.screen.ScrollOffset(),
	}
	if err := m.status.Err(); err != nil {
		data.Err = err.Error()
	}
	m.inspector.SetData(data)

	info := fmt.Sprintf("anchor  %s  %dx%d", m.tip.popup.ClassName(), m.layout.TerminalWidth, m.layout.TerminalHeight)
	if m.note != "" {
		info = m.note
	}
	if m.degradation.ShowMinWarning {
		info = fmt.Sprintf("terminal too small (%dx%d, need %dx%d)", m.layout.TerminalWidth, m.layout.TerminalHeight, layout.MinWidth, layout.MinHeight)
	}
	m.status.SetInfo(info)
}

func (m *home) writeSnapshot() {
	if !inspect.IsEnabled() {
		return
	}
	snap := inspect.NewSnapshot().
		WithTerminal(m.layout.TerminalWidth, m.layout.TerminalHeight).
		WithLayout(m.layout, m.degradation).
		WithAppState(inspect.AppStateInfo{
			State:       m.state.String(),
			HasOverlay:  m.state != stateDefault,
			OverlayType: overlayType(m.state),
			ScrollX:     m.screen.ScrollOffset().X,
			ScrollY:     m.screen.ScrollOffset().Y,
		})
	if err := m.status.Err(); err != nil {
		snap.AppState.ErrorMessage = err.Error()
	}
	for _, pv := range m.popups() {
		res := pv.popup.Result()
		snap.AddPopup(inspect.PopupInfo{
			ID:        pv.popup.ID(),
			Placement: m.placement,
			Effective: res.Placement,
			State:     pv.popup.State().String(),
			Phase:     pv.popup.Phase().String(),
			Ready:     res.Ready,
			OffsetX:   res.OffsetX,
			OffsetY:   res.OffsetY,
			FlippedX:  res.FlippedX,
			FlippedY:  res.FlippedY,
			Arrow:     string(res.Arrow),
			ClassName: pv.popup.ClassName(),
		})
	}
	snap.WithComponents(m.InspectNode()).WithStyles(inspect.GetAllStyles())
	if _, err := inspect.DefaultWriter().Write(snap); err != nil {
		log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
	}
}

func overlayType(s state) string {
	if s == stateDefault {
		return ""
	}
	return s.String()
}

// InspectNode implements inspect.Introspectable.
func (m *home) InspectNode() *inspect.Node {
	stage := m.screen.StageRect()
	root := inspect.NewNode("Home").WithBounds(0, 0, m.layout.TerminalWidth, m.layout.TerminalHeight)
	stageNode := inspect.NewNode("Stage").WithID(string(ui.Stage)).WithRect(stage)

	if r, ok := m.screen.Rect(buttonHandle); ok {
		style := ui.TargetStyles.Idle
		if m.tip.popup.Open() {
			style = ui.TargetStyles.Active
		}
		stageNode.AddChild(inspect.NewNode("Element").
			WithID(string(buttonHandle)).
			WithRect(r).
			WithVisible(!stage.Intersect(r).IsEmpty()).
			WithStyles(inspect.ExtractStyleInfo(style)).
			WithState("hovered", m.overButton))
	}
	for _, pv := range m.popups() {
		r, ok := pv.rect()
		if !ok {
			r, _ = m.screen.Rect(pv.handle)
		}
		stageNode.AddChild(inspect.NewNode("Popup").
			WithID(string(pv.handle)).
			WithRect(r).
			WithVisible(ok).
			WithState("state", pv.popup.State().String()).
			WithState("class", pv.popup.ClassName()))
	}
	return root.AddChild(stageNode).AddChild(m.inspector.InspectNode())
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

type hideErrMsg struct{}

// handleError shows err in the status bar and returns a command that clears
// it after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.status.SetError(err)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}

		return hideErrMsg{}
	}
}

func (m *home) View() string {
	defer log.GetProfiler().TimeView()()

	targets := []ui.Target{{
		Handle:  buttonHandle,
		Label:   "target",
		Hovered: m.overButton,
		Active:  m.tip.popup.Open(),
	}}
	var popups []ui.PlacedPopup
	for _, pv := range m.popups() {
		if p, ok := pv.render(m.degradation); ok {
			popups = append(popups, p)
		}
	}
	stage := ui.RenderStage(m.screen, targets, popups, !m.degradation.HideScrollIndicators)

	var panels string
	if m.layout.UseVerticalStack {
		panels = lipgloss.JoinVertical(lipgloss.Left, stage, m.inspector.String())
	} else {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, stage, m.inspector.String())
	}

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		panels,
		m.status.String(),
		m.menu.String(),
	)

	switch m.state {
	case statePicker:
		if m.picker == nil {
			log.ErrorLog.Printf("placement picker is nil")
			return mainView
		}
		return m.center(m.picker.Render(), mainView)
	case stateHelp:
		box := ui.ModalStyle().Render(m.help.View(keys.KeyMap{}))
		return m.center(box, mainView)
	}
	return mainView
}

func (m *home) center(fg, bg string) string {
	w, h := lipgloss.Size(fg)
	x := max((m.layout.TerminalWidth-w)/2, 0)
	y := max((m.layout.TerminalHeight-h)/2, 0)
	return overlay.PlaceOverlay(x, y, fg, bg)
}
