package trigger

import (
	"anchor/align"
	"anchor/placement"
	"anchor/registry"
	"anchor/watch"
	"time"
)

// DefaultMouseLeaveDelay is the close delay after the pointer leaves.
const DefaultMouseLeaveDelay = 100 * time.Millisecond

// DefaultClassPrefix prefixes the placement class names.
const DefaultClassPrefix = "anchor-popup"

// Options configure a Popup.
type Options struct {
	// ID identifies the popup in registries. A random id is used when empty.
	ID string

	Target watch.Handle
	Popup  watch.Handle

	// Placement names an entry of Table.
	Placement string
	// Table defaults to the built-in placements.
	Table placement.Table
	// Rule overrides the placement when set.
	Rule *placement.Rule
	// AlignPoint anchors the popup to the pointer instead of the target.
	AlignPoint bool

	DefaultOpen bool
	// Open puts the popup in controlled mode.
	Open *bool

	MouseEnterDelay time.Duration
	// MouseLeaveDelay defaults to DefaultMouseLeaveDelay when nil. Use
	// Delay(0) to close as soon as the pointer leaves.
	MouseLeaveDelay *time.Duration

	// Motion makes the popup wait for Prepare and MotionDone around every
	// open change.
	Motion bool

	// Stretch sizes the popup from the target: any of "width", "minWidth",
	// "height", "minHeight".
	Stretch string

	// Parent is the registry of the enclosing popup, if any.
	Parent *registry.Registry

	// ClickToHide closes the popup on clicks outside of it.
	ClickToHide bool
	// Mask covers the screen behind the popup. MaskClosable closes the popup
	// when the mask is clicked and defaults to true when nil.
	Mask         bool
	MaskClosable *bool

	ClassPrefix    string
	ClassFromAlign func(placement.Rule) string

	// OnOpenChange is called when a request changes the open state.
	OnOpenChange func(open bool)
	// AfterOpenChange is called once the open change has finished moving.
	AfterOpenChange func(open bool)
	// OnAlign is called after every alignment pass.
	OnAlign func(align.Result)
}

// DefaultOptions returns Options with every defaulted field spelled out.
// New fills in the same values for fields left unset, so starting from
// Options{} behaves the same.
func DefaultOptions() Options {
	return Options{
		MouseLeaveDelay: Delay(DefaultMouseLeaveDelay),
		MaskClosable:    Bool(true),
		ClassPrefix:     DefaultClassPrefix,
	}
}

// Delay returns a pointer to d for MouseLeaveDelay.
func Delay(d time.Duration) *time.Duration {
	return &d
}

// Bool returns a pointer to b for MaskClosable and Open.
func Bool(b bool) *bool {
	return &b
}

// withDefaults fills the unset fields of o.
func (o Options) withDefaults() Options {
	if o.MouseLeaveDelay == nil {
		o.MouseLeaveDelay = Delay(DefaultMouseLeaveDelay)
	}
	if o.MaskClosable == nil {
		o.MaskClosable = Bool(true)
	}
	if o.ClassPrefix == "" {
		o.ClassPrefix = DefaultClassPrefix
	}
	if o.Table == nil {
		o.Table = placement.Builtins()
	}
	if o.ID == "" {
		o.ID = registry.NewID()
	}
	return o
}
