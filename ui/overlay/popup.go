package overlay

import (
	"anchor/align"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Arrow glyphs, keyed by the popup edge they sit on.
const (
	ArrowUp    = "▲"
	ArrowDown  = "▼"
	ArrowLeft  = "◀"
	ArrowRight = "▶"
)

var popupBorderColor = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

var arrowStyle = lipgloss.NewStyle().Foreground(popupBorderColor).Bold(true)

// PopupOptions configure RenderPopup.
type PopupOptions struct {
	// Width wraps the content; zero keeps the content's own width.
	Width int
	// MaxHeight limits the content lines; zero means no limit.
	MaxHeight int

	// Arrow is the edge carrying the arrow. ArrowX and ArrowY position it
	// relative to the box, as reported by the alignment.
	Arrow  align.Side
	ArrowX float64
	ArrowY float64

	// Square uses a plain border instead of a rounded one.
	Square bool
}

// RenderPopup draws a popup box around content, with an arrow glyph on
// the requested edge.
func RenderPopup(content string, opts PopupOptions) string {
	if opts.Width > 0 {
		// wordwrap keeps long words whole; wrap breaks them.
		content = wrap.String(wordwrap.String(content, opts.Width), opts.Width)
	}

	lines := strings.Split(content, "\n")
	if opts.MaxHeight > 0 && len(lines) > opts.MaxHeight {
		lines = append(lines[:opts.MaxHeight-1], "…")
	}

	border := lipgloss.RoundedBorder()
	if opts.Square {
		border = lipgloss.NormalBorder()
	}
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(popupBorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	return placeArrow(box, opts)
}

// placeArrow swaps one border cell of box for an arrow glyph. Corners are
// never replaced.
func placeArrow(box string, opts PopupOptions) string {
	lines := strings.Split(box, "\n")
	h := len(lines)
	w := ansi.PrintableRuneWidth(lines[0])
	if h < 3 || w < 3 {
		return box
	}

	switch opts.Arrow {
	case align.SideTop:
		lines[0] = replaceCell(lines[0], arrowCell(opts.ArrowX, w), ArrowUp)
	case align.SideBottom:
		lines[h-1] = replaceCell(lines[h-1], arrowCell(opts.ArrowX, w), ArrowDown)
	case align.SideLeft:
		row := arrowCell(opts.ArrowY, h)
		lines[row] = replaceCell(lines[row], 0, ArrowLeft)
	case align.SideRight:
		row := arrowCell(opts.ArrowY, h)
		lines[row] = replaceCell(lines[row], w-1, ArrowRight)
	default:
		return box
	}
	return strings.Join(lines, "\n")
}

func arrowCell(pos float64, size int) int {
	c := int(math.Floor(pos))
	return min(max(c, 1), size-2)
}

func replaceCell(line string, col int, glyph string) string {
	return truncate.String(line, uint(col)) + arrowStyle.Render(glyph) + cutLeft(line, col+1)
}
