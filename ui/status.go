package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var statusInfoStyle = lipgloss.NewStyle().Foreground(TextMuted)

var statusErrStyle = lipgloss.NewStyle().Foreground(StateError)

// StatusBar is the one-line bar between the panels and the help footer. An
// error replaces the info text until it is cleared.
type StatusBar struct {
	width int
	info  string
	err   error
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

func (s *StatusBar) SetSize(width int) {
	s.width = width
}

func (s *StatusBar) SetInfo(info string) {
	s.info = info
}

func (s *StatusBar) SetError(err error) {
	s.err = err
}

// Clear drops the error.
func (s *StatusBar) Clear() {
	s.err = nil
}

func (s *StatusBar) Err() error {
	return s.err
}

func (s *StatusBar) String() string {
	if s.width <= 0 {
		return ""
	}
	var text string
	style := statusInfoStyle
	if s.err != nil {
		text = IconError + " " + s.err.Error()
		style = statusErrStyle
	} else {
		text = s.info
	}
	// Errors may span lines; only the first one fits.
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = truncate.StringWithTail(text, uint(s.width), "…")
	return style.Width(s.width).Render(text)
}
