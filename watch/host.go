// Package watch keeps a popup aligned: it observes the inputs of the
// alignment engine and recomputes whenever one of them changes.
package watch

//go:generate mockgen -source=host.go -destination=mocks/mock_host.go

import (
	"anchor/align"
	"anchor/geom"
)

// Handle identifies a measurable element. The empty handle is the window.
type Handle string

// Window is the handle of the top-level viewport.
const Window Handle = ""

// Host measures elements for the loop.
type Host interface {
	// Rect returns the element's current rect. ok is false until the
	// element is laid out. Popups are reported at rest, placed at the origin
	// of their positioning container.
	Rect(h Handle) (geom.Rect, bool)
	// Scale returns the rendered-to-layout ratio of the element.
	Scale(h Handle) geom.Scale
	// Bounds returns the space around the popup h.
	Bounds(h Handle) align.Bounds
	// Scrollers lists the scrollable ancestors of the element.
	Scrollers(h Handle) []Handle
	// Subscribe calls fn whenever h scrolls (or, for Window, resizes).
	Subscribe(h Handle, fn func()) (cancel func())
}
