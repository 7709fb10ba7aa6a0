package inspect

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ExtractStyleInfo describes what a lipgloss style renders as. names are
// recorded as the style names it was registered under.
func ExtractStyleInfo(style lipgloss.Style, names ...string) *StyleInfo {
	info := &StyleInfo{
		Foreground:    colorToString(style.GetForeground()),
		Background:    colorToString(style.GetBackground()),
		Bold:          style.GetBold(),
		Italic:        style.GetItalic(),
		Underline:     style.GetUnderline(),
		AppliedStyles: names,
	}

	if t, r, b, l := style.GetPadding(); t|r|b|l != 0 {
		info.Padding = []int{t, r, b, l}
	}
	if style.GetBorderTop() || style.GetBorderRight() || style.GetBorderBottom() || style.GetBorderLeft() {
		info.Border = borderName(style.GetBorderStyle())
		info.BorderColor = colorToString(style.GetBorderTopForeground())
	}
	return info
}

var borderNames = []struct {
	name   string
	border lipgloss.Border
}{
	{"rounded", lipgloss.RoundedBorder()},
	{"normal", lipgloss.NormalBorder()},
	{"thick", lipgloss.ThickBorder()},
	{"double", lipgloss.DoubleBorder()},
	{"hidden", lipgloss.HiddenBorder()},
	{"block", lipgloss.BlockBorder()},
}

func borderName(b lipgloss.Border) string {
	for _, n := range borderNames {
		if n.border == b {
			return n.name
		}
	}
	return "custom"
}

func colorToString(c lipgloss.TerminalColor) string {
	switch v := c.(type) {
	case nil, lipgloss.NoColor:
		return ""
	case lipgloss.Color:
		return string(v)
	case lipgloss.AdaptiveColor:
		return fmt.Sprintf("adaptive(light=%s, dark=%s)", v.Light, v.Dark)
	case lipgloss.CompleteColor:
		return fmt.Sprintf("complete(true=%s, ansi=%s, ansi256=%s)", v.TrueColor, v.ANSI, v.ANSI256)
	default:
		return fmt.Sprintf("%v", c)
	}
}

// styles holds the named styles the playground registers for snapshots.
var styles = struct {
	sync.RWMutex
	m map[string]lipgloss.Style
}{m: make(map[string]lipgloss.Style)}

// RegisterStyle records a named style. Registering a name again replaces it.
func RegisterStyle(name string, style lipgloss.Style) {
	styles.Lock()
	defer styles.Unlock()
	styles.m[name] = style
}

func GetRegisteredStyle(name string) (lipgloss.Style, bool) {
	styles.RLock()
	defer styles.RUnlock()
	style, ok := styles.m[name]
	return style, ok
}

// GetAllStyles describes every registered style, keyed by name. It returns
// nil when nothing is registered so snapshots omit the field.
func GetAllStyles() map[string]*StyleInfo {
	styles.RLock()
	defer styles.RUnlock()
	if len(styles.m) == 0 {
		return nil
	}
	result := make(map[string]*StyleInfo, len(styles.m))
	for name, style := range styles.m {
		result[name] = ExtractStyleInfo(style, name)
	}
	return result
}

// ListRegisteredStyles returns the registered names in sorted order.
func ListRegisteredStyles() []string {
	styles.RLock()
	defer styles.RUnlock()
	names := make([]string, 0, len(styles.m))
	for name := range styles.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
