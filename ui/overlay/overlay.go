// Package overlay composites popups over the rendered stage and draws the
// popup boxes themselves.
package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// whitespace fills the background where a line is shorter than the overlay
// position.
type whitespace struct {
	style termenv.Style
	chars string
}

// render returns whitespace of the given cell width.
func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	if w.chars == "" {
		w.chars = " "
	}

	r := []rune(w.chars)
	j := 0
	b := strings.Builder{}

	for i := 0; i < width; {
		b.WriteRune(r[j])
		j++
		if j >= len(r) {
			j = 0
		}
		i += runewidth.RuneWidth(r[j])
	}

	// Wide runes may overshoot; pad the rest with spaces.
	short := width - ansi.PrintableRuneWidth(b.String())
	if short > 0 {
		b.WriteString(strings.Repeat(" ", short))
	}

	return w.style.Styled(b.String())
}

// WhitespaceOption sets a styling rule for rendering whitespace.
type WhitespaceOption func(*whitespace)

// WithWhitespaceChars sets the characters used to fill gaps.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

// WithWhitespaceForeground colors the fill characters.
func WithWhitespaceForeground(c termenv.Color) WhitespaceOption {
	return func(w *whitespace) {
		w.style = w.style.Foreground(c)
	}
}

// PlaceOverlay draws fg over bg with its top-left corner at (x, y), in
// cells. The overlay may be partly or fully outside bg; whatever falls
// outside is clipped. ANSI styling of both layers is preserved.
func PlaceOverlay(x, y int, fg, bg string, opts ...WhitespaceOption) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)

	if fgWidth == 0 || x >= bgWidth || y >= len(bgLines) || x+fgWidth <= 0 || y+len(fgLines) <= 0 {
		return bg
	}

	ws := &whitespace{}
	for _, opt := range opts {
		opt(ws)
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		row := i - y
		if row < 0 || row >= len(fgLines) {
			b.WriteString(bgLine)
			continue
		}

		fgLine := fgLines[row]
		start := x
		if start < 0 {
			fgLine = cutLeft(fgLine, -start)
			start = 0
		}
		fgLineWidth := ansi.PrintableRuneWidth(fgLine)
		if start+fgLineWidth > bgWidth {
			fgLineWidth = bgWidth - start
			fgLine = truncate.String(fgLine, uint(fgLineWidth))
		}

		bgLineWidth := ansi.PrintableRuneWidth(bgLine)
		if bgLineWidth < bgWidth {
			bgLine += ws.render(bgWidth - bgLineWidth)
		}

		b.WriteString(truncate.String(bgLine, uint(start)))
		b.WriteString(fgLine)
		b.WriteString(cutLeft(bgLine, start+fgLineWidth))
	}

	return b.String()
}

// cutLeft drops the first n cells of a styled line. Escape sequences are
// kept so the remaining text renders with the style it had. A wide rune cut
// in half is replaced by spaces.
func cutLeft(s string, n int) string {
	if n <= 0 {
		return s
	}

	var (
		b     strings.Builder
		pos   int
		inEsc bool
	)
	for _, c := range s {
		if c == ansi.Marker {
			inEsc = true
		}
		if inEsc {
			b.WriteRune(c)
			if ansi.IsTerminator(c) {
				inEsc = false
			}
			continue
		}

		w := runewidth.RuneWidth(c)
		switch {
		case pos >= n:
			b.WriteRune(c)
		case pos+w > n:
			b.WriteString(strings.Repeat(" ", pos+w-n))
		}
		pos += w
	}
	return b.String()
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")

	for _, l := range lines {
		w := ansi.PrintableRuneWidth(l)
		if widest < w {
			widest = w
		}
	}

	return lines, widest
}
