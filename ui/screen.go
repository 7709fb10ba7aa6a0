package ui

import (
	"anchor/align"
	"anchor/geom"
	"anchor/log"
	"anchor/watch"
	"sort"
)

// Stage is the handle of the scrollable stage that holds the targets.
const Stage watch.Handle = "stage"

type element struct {
	// rect is in stage content coordinates when inStage is set, screen
	// coordinates otherwise. Popups only use the size.
	rect    geom.Rect
	inStage bool
	popup   bool
	scale   geom.Scale
}

// Screen measures a terminal for the alignment loop. Coordinates are cells
// with the origin at the top-left corner of the terminal; popups are placed
// relative to that origin.
type Screen struct {
	width, height int

	stage   geom.Rect
	content geom.Size
	scroll  geom.Vec

	elems   map[watch.Handle]*element
	subs    map[watch.Handle]map[int]func()
	nextSub int
}

// NewScreen returns a screen of the given size with the stage covering it.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		elems: make(map[watch.Handle]*element),
		subs:  make(map[watch.Handle]map[int]func()),
	}
	s.width, s.height = width, height
	s.stage = geom.NewRect(0, 0, float64(width), float64(height))
	s.content = s.stage.Size()
	return s
}

// Size returns the terminal size.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// Resize changes the terminal size and notifies window listeners.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.notify(watch.Window)
}

// SetStage places the stage viewport on the screen and sets the size of the
// content behind it. The scroll offset is clamped to the new content.
func (s *Screen) SetStage(viewport geom.Rect, content geom.Size) {
	s.stage = viewport
	s.content = content
	s.scrollTo(s.scroll)
}

// StageRect returns the stage viewport in screen coordinates.
func (s *Screen) StageRect() geom.Rect {
	return s.stage
}

// ContentSize returns the scrollable size of the stage.
func (s *Screen) ContentSize() geom.Size {
	return s.content
}

// ScrollOffset returns how far the stage is scrolled.
func (s *Screen) ScrollOffset() geom.Vec {
	return s.scroll
}

// ScrollBy scrolls the stage and reports whether the offset changed.
func (s *Screen) ScrollBy(dx, dy float64) bool {
	return s.scrollTo(s.scroll.Add(geom.Vec{X: dx, Y: dy}))
}

func (s *Screen) scrollTo(v geom.Vec) bool {
	maxX := max(s.content.Width-s.stage.Width, 0)
	maxY := max(s.content.Height-s.stage.Height, 0)
	next := geom.Vec{X: geom.Clamp(v.X, 0, maxX), Y: geom.Clamp(v.Y, 0, maxY)}
	if next == s.scroll {
		return false
	}
	s.scroll = next
	log.Debug("stage scrolled to %v", next)
	s.notify(Stage)
	return true
}

// Place puts a fixed element on the screen.
func (s *Screen) Place(h watch.Handle, r geom.Rect) {
	s.put(h, &element{rect: r})
}

// PlaceInStage puts an element into the stage content; it moves with the
// stage scroll.
func (s *Screen) PlaceInStage(h watch.Handle, r geom.Rect) {
	s.put(h, &element{rect: r, inStage: true})
}

// SetPopup registers a popup element of the given size.
func (s *Screen) SetPopup(h watch.Handle, size geom.Size) {
	s.put(h, &element{rect: geom.RectAt(geom.Vec{}, size), popup: true})
}

func (s *Screen) put(h watch.Handle, e *element) {
	e.scale = geom.Identity
	if old, ok := s.elems[h]; ok {
		e.scale = old.scale
	}
	s.elems[h] = e
}

// SetScale sets the rendered-to-layout ratio of an element, e.g. while a
// popup motion plays.
func (s *Screen) SetScale(h watch.Handle, sc geom.Scale) {
	if e, ok := s.elems[h]; ok {
		e.scale = sc
	}
}

// Remove forgets an element.
func (s *Screen) Remove(h watch.Handle) {
	delete(s.elems, h)
}

// ContentRect returns the rect of a stage element in content coordinates.
func (s *Screen) ContentRect(h watch.Handle) (geom.Rect, bool) {
	e, ok := s.elems[h]
	if !ok || !e.inStage {
		return geom.Rect{}, false
	}
	return e.rect, true
}

// ElementAt returns the topmost non-popup element under p. Fixed elements
// are above stage elements; ties go to the smallest handle.
func (s *Screen) ElementAt(p geom.Vec) (watch.Handle, bool) {
	var hits []watch.Handle
	for h, e := range s.elems {
		if e.popup {
			continue
		}
		if r, ok := s.Rect(h); ok && r.Contains(p) {
			if e.inStage && !s.stage.Contains(p) {
				continue
			}
			hits = append(hits, h)
		}
	}
	if len(hits) == 0 {
		return "", false
	}
	sort.Slice(hits, func(i, j int) bool {
		a, b := s.elems[hits[i]], s.elems[hits[j]]
		if a.inStage != b.inStage {
			return !a.inStage
		}
		return hits[i] < hits[j]
	})
	return hits[0], true
}

// Rect implements watch.Host.
func (s *Screen) Rect(h watch.Handle) (geom.Rect, bool) {
	if h == Stage {
		return s.stage, true
	}
	e, ok := s.elems[h]
	if !ok {
		return geom.Rect{}, false
	}
	if e.popup {
		return geom.RectAt(geom.Vec{}, e.rect.Size()), true
	}
	if e.inStage {
		return e.rect.Translate(s.stage.X-s.scroll.X, s.stage.Y-s.scroll.Y), true
	}
	return e.rect, true
}

// Scale implements watch.Host.
func (s *Screen) Scale(h watch.Handle) geom.Scale {
	if e, ok := s.elems[h]; ok {
		return e.scale
	}
	return geom.Identity
}

// Bounds implements watch.Host. Popups live above the stage: the visible
// area is the stage viewport, the scroll area its whole content.
func (s *Screen) Bounds(watch.Handle) align.Bounds {
	return align.Bounds{
		Visible: s.stage,
		Scroll: geom.NewRect(
			s.stage.X-s.scroll.X,
			s.stage.Y-s.scroll.Y,
			max(s.content.Width, s.stage.Width),
			max(s.content.Height, s.stage.Height),
		),
	}
}

// Scrollers implements watch.Host.
func (s *Screen) Scrollers(h watch.Handle) []watch.Handle {
	if e, ok := s.elems[h]; ok && e.inStage {
		return []watch.Handle{Stage}
	}
	return nil
}

// Subscribe implements watch.Host.
func (s *Screen) Subscribe(h watch.Handle, fn func()) func() {
	if s.subs[h] == nil {
		s.subs[h] = make(map[int]func())
	}
	id := s.nextSub
	s.nextSub++
	s.subs[h][id] = fn
	return func() {
		delete(s.subs[h], id)
	}
}

// Listeners returns how many listeners are attached to h.
func (s *Screen) Listeners(h watch.Handle) int {
	return len(s.subs[h])
}

func (s *Screen) notify(h watch.Handle) {
	ids := make([]int, 0, len(s.subs[h]))
	for id := range s.subs[h] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.subs[h][id]; ok {
			fn()
		}
	}
}
