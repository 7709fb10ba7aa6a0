package ui

import (
	"anchor/ui/overlay"
	"anchor/watch"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Target is a target element drawn on the stage.
type Target struct {
	Handle  watch.Handle
	Label   string
	Hovered bool
	Active  bool
}

// PlacedPopup is a rendered popup box at its aligned screen position.
type PlacedPopup struct {
	Box  string
	X, Y int
}

const (
	dotEveryX = 4
	dotEveryY = 2
)

var stageDotStyle = lipgloss.NewStyle().Foreground(StageDot)

var scrollIndicatorStyle = lipgloss.NewStyle().Foreground(TextMuted)

// RenderStage draws the stage viewport of s: a dotted background that
// moves with the scroll offset, the targets, and the popups on top.
func RenderStage(s *Screen, targets []Target, popups []PlacedPopup, showScroll bool) string {
	stage := s.StageRect()
	width, height := int(stage.Width), int(stage.Height)
	if width <= 0 || height <= 0 {
		return ""
	}
	scroll := s.ScrollOffset()

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		cy := y + int(scroll.Y)
		for x := 0; x < width; x++ {
			cx := x + int(scroll.X)
			if cx%dotEveryX == 0 && cy%dotEveryY == 0 {
				b.WriteString("·")
			} else {
				b.WriteByte(' ')
			}
		}
		rows[y] = stageDotStyle.Render(b.String())
	}
	view := strings.Join(rows, "\n")

	for _, t := range targets {
		r, ok := s.Rect(t.Handle)
		if !ok {
			continue
		}
		style := TargetStyles.Idle
		switch {
		case t.Active:
			style = TargetStyles.Active
		case t.Hovered:
			style = TargetStyles.Hovered
		}
		w, h := int(r.Width)-2, int(r.Height)-2
		if w < 1 || h < 1 {
			continue
		}
		box := style.Width(w).Height(h).Render(t.Label)
		view = overlay.PlaceOverlay(cell(r.X-stage.X), cell(r.Y-stage.Y), box, view)
	}

	for _, p := range popups {
		view = overlay.PlaceOverlay(p.X-int(stage.X), p.Y-int(stage.Y), p.Box, view)
	}

	content := s.ContentSize()
	if showScroll && content.Height > stage.Height {
		maxY := int(content.Height - stage.Height)
		label := scrollIndicatorStyle.Render(fmt.Sprintf("↕ %d/%d", int(scroll.Y), maxY))
		view = overlay.PlaceOverlay(width-lipgloss.Width(label), height-1, label, view)
	}

	return view
}

func cell(v float64) int {
	return int(math.Floor(v))
}
