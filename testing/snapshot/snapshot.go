// Package snapshot captures rendered terminal output as a grid of cells so
// tests can ask where things ended up on screen.
package snapshot

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	oscRegex  = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	s = ansiRegex.ReplaceAllString(s, "")
	return oscRegex.ReplaceAllString(s, "")
}

// Frame is a captured view with escape codes removed, indexed by cell.
type Frame struct {
	rows [][]rune
}

// Capture parses a rendered view. Wide runes occupy two cells; the second
// one holds 0.
func Capture(view string) Frame {
	view = strings.ReplaceAll(StripANSI(view), "\r\n", "\n")
	lines := strings.Split(view, "\n")
	f := Frame{rows: make([][]rune, len(lines))}
	for i, line := range lines {
		var row []rune
		for _, r := range line {
			row = append(row, r)
			for w := runewidth.RuneWidth(r); w > 1; w-- {
				row = append(row, 0)
			}
		}
		f.rows[i] = row
	}
	return f
}

// Height is the number of rows.
func (f Frame) Height() int {
	return len(f.rows)
}

// Width is the widest row in cells.
func (f Frame) Width() int {
	w := 0
	for _, row := range f.rows {
		w = max(w, len(row))
	}
	return w
}

// Row returns row y without trailing blanks, or "" out of range.
func (f Frame) Row(y int) string {
	if y < 0 || y >= len(f.rows) {
		return ""
	}
	return strings.TrimRight(cellsString(f.rows[y]), " ")
}

// Cell returns the rune at x,y, or ' ' out of range.
func (f Frame) Cell(x, y int) rune {
	if y < 0 || y >= len(f.rows) || x < 0 || x >= len(f.rows[y]) {
		return ' '
	}
	if r := f.rows[y][x]; r != 0 {
		return r
	}
	return ' '
}

// Region cuts out a w×h block starting at x,y, padding missing cells with
// blanks. Rows keep their trailing blanks so columns line up.
func (f Frame) Region(x, y, w, h int) string {
	out := make([]string, h)
	for dy := 0; dy < h; dy++ {
		var b strings.Builder
		for dx := 0; dx < w; dx++ {
			b.WriteRune(f.Cell(x+dx, y+dy))
		}
		out[dy] = b.String()
	}
	return strings.Join(out, "\n")
}

// Find returns the cell position of the first occurrence of substr, scanning
// rows top to bottom.
func (f Frame) Find(substr string) (x, y int, ok bool) {
	for y, row := range f.rows {
		line := cellsString(row)
		if i := strings.Index(line, substr); i >= 0 {
			return runewidth.StringWidth(line[:i]), y, true
		}
	}
	return 0, 0, false
}

// Contains reports whether any row contains substr.
func (f Frame) Contains(substr string) bool {
	_, _, ok := f.Find(substr)
	return ok
}

// String renders the frame with trailing blanks trimmed from each row.
func (f Frame) String() string {
	out := make([]string, len(f.rows))
	for i := range f.rows {
		out[i] = f.Row(i)
	}
	return strings.Join(out, "\n")
}

func cellsString(row []rune) string {
	var b strings.Builder
	for _, r := range row {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lines returns the line count of the rendered output
func Lines(s string) int {
	return Capture(s).Height()
}

// Width returns the widest line of the rendered output in cells
func Width(s string) int {
	return Capture(s).Width()
}
