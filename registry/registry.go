// Package registry maps caller-assigned external ids to solver-native
// node handles and back. The two maps are kept as exact inverses; that
// invariant is what makes results extraction a plain walk of the reverse
// map.
package registry

import "github.com/flexwire/layout-engine/flex"

// RootID is the reserved external id of the tree root. Computation fails
// unless it resolves to a live node.
const RootID uint32 = 0

// Registry is the bidirectional id table for one engine instance.
// Not safe for concurrent use, like the instance that owns it.
type Registry struct {
	forward map[uint32]flex.NodeID
	reverse map[flex.NodeID]uint32
}

// New creates a registry pre-sized for capacity nodes.
func New(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{
		forward: make(map[uint32]flex.NodeID, capacity),
		reverse: make(map[flex.NodeID]uint32, capacity),
	}
}

// Insert maps external to handle in both directions. A prior mapping for
// the same external id is replaced; the displaced handle is returned so
// the caller can remove it from the solver tree. Reclamation stays with
// the caller.
func (r *Registry) Insert(external uint32, handle flex.NodeID) (prev flex.NodeID, replaced bool) {
	if old, ok := r.forward[external]; ok {
		delete(r.reverse, old)
		prev, replaced = old, true
	}
	r.forward[external] = handle
	r.reverse[handle] = external
	return prev, replaced
}

// Resolve returns the handle for an external id.
func (r *Registry) Resolve(external uint32) (flex.NodeID, bool) {
	h, ok := r.forward[external]
	return h, ok
}

// External returns the external id owning a handle.
func (r *Registry) External(handle flex.NodeID) (uint32, bool) {
	e, ok := r.reverse[handle]
	return e, ok
}

// Remove deletes the mapping in both directions and returns the handle
// that was mapped. Removing an absent id is a no-op.
func (r *Registry) Remove(external uint32) (flex.NodeID, bool) {
	h, ok := r.forward[external]
	if !ok {
		return 0, false
	}
	delete(r.forward, external)
	delete(r.reverse, h)
	return h, true
}

// Len returns the number of live mappings.
func (r *Registry) Len() int {
	return len(r.forward)
}

// Clear empties both maps. Only the full-buffer rebuild path uses this;
// incremental mutation never does.
func (r *Registry) Clear() {
	clear(r.forward)
	clear(r.reverse)
}

// Each visits every (handle, external) pair in the reverse map. The
// order is Go map order: unspecified and not stable across calls, which
// is exactly the guarantee the results buffer makes.
func (r *Registry) Each(fn func(handle flex.NodeID, external uint32) bool) {
	for h, e := range r.reverse {
		if !fn(h, e) {
			return
		}
	}
}

// Consistent reports whether the two maps are exact inverses. It backs
// the registry's standing invariant in tests.
func (r *Registry) Consistent() bool {
	if len(r.forward) != len(r.reverse) {
		return false
	}
	for e, h := range r.forward {
		if back, ok := r.reverse[h]; !ok || back != e {
			return false
		}
	}
	return true
}
