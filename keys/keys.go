package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyLeft
	KeyRight

	KeyScrollUp
	KeyScrollDown

	KeyToggle
	KeyNextPlacement
	KeyPrevPlacement
	KeyPickPlacement
	KeyAdjustX
	KeyAdjustY
	KeyRegion
	KeyPointer
	KeyMotion
	KeyNested
	KeyRealign
	KeyCopy

	KeyHelp
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"left":   KeyLeft,
	"h":      KeyLeft,
	"right":  KeyRight,
	"l":      KeyRight,
	"pgup":   KeyScrollUp,
	"pgdown": KeyScrollDown,
	" ":      KeyToggle,
	"p":      KeyNextPlacement,
	"P":      KeyPrevPlacement,
	"s":      KeyPickPlacement,
	"x":      KeyAdjustX,
	"y":      KeyAdjustY,
	"g":      KeyRegion,
	"a":      KeyPointer,
	"m":      KeyMotion,
	"n":      KeyNested,
	"r":      KeyRealign,
	"c":      KeyCopy,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "move left"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "move right"),
	),
	KeyScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	KeyToggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	KeyNextPlacement: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "next placement"),
	),
	KeyPrevPlacement: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "prev placement"),
	),
	KeyPickPlacement: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "pick placement"),
	),
	KeyAdjustX: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "adjust x"),
	),
	KeyAdjustY: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "adjust y"),
	),
	KeyRegion: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "region"),
	),
	KeyPointer: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "pointer mode"),
	),
	KeyMotion: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "motion"),
	),
	KeyNested: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "nested popup"),
	),
	KeyRealign: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "realign"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy result"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Groups orders the bindings for the help views: movement, popup, system.
var Groups = [][]KeyName{
	{KeyUp, KeyDown, KeyLeft, KeyRight, KeyScrollUp, KeyScrollDown},
	{KeyToggle, KeyNextPlacement, KeyPrevPlacement, KeyPickPlacement, KeyAdjustX, KeyAdjustY, KeyRegion, KeyPointer, KeyMotion, KeyNested, KeyRealign, KeyCopy},
	{KeyHelp, KeyQuit},
}

// KeyMap adapts the bindings to bubbles/help.
type KeyMap struct{}

// ShortHelp implements help.KeyMap.
func (KeyMap) ShortHelp() []key.Binding {
	return bindings([]KeyName{KeyToggle, KeyNextPlacement, KeyPickPlacement, KeyPointer, KeyHelp, KeyQuit})
}

// FullHelp implements help.KeyMap.
func (KeyMap) FullHelp() [][]key.Binding {
	out := make([][]key.Binding, 0, len(Groups))
	for _, g := range Groups {
		out = append(out, bindings(g))
	}
	return out
}

func bindings(names []KeyName) []key.Binding {
	out := make([]key.Binding, 0, len(names))
	for _, n := range names {
		out = append(out, GlobalkeyBindings[n])
	}
	return out
}
