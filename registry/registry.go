// Package registry tracks the rects of nested popups so an ancestor can tell
// whether the pointer is inside any popup it spawned.
package registry

import (
	"anchor/geom"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry holds the popup rects registered by descendants. Registrations
// are forwarded to every ancestor.
type Registry struct {
	mu     sync.RWMutex
	parent *Registry
	rects  map[string]geom.Rect
}

// New creates a registry below parent, which may be nil for a root.
func New(parent *Registry) *Registry {
	return &Registry{
		parent: parent,
		rects:  make(map[string]geom.Rect),
	}
}

// NewID returns a fresh popup id.
func NewID() string {
	return uuid.NewString()
}

// Parent returns the enclosing registry, or nil.
func (r *Registry) Parent() *Registry {
	return r.parent
}

// Register records or updates the rect of popup id here and in all ancestors.
func (r *Registry) Register(id string, rect geom.Rect) {
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.Lock()
		reg.rects[id] = rect
		reg.mu.Unlock()
	}
}

// Unregister removes popup id here and in all ancestors.
func (r *Registry) Unregister(id string) {
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.Lock()
		delete(reg.rects, id)
		reg.mu.Unlock()
	}
}

// Contains reports whether p lies inside any registered rect.
func (r *Registry) Contains(p geom.Vec) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rect := range r.rects {
		if rect.Contains(p) {
			return true
		}
	}
	return false
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rects))
	for id := range r.rects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
