package flex

import "errors"

var (
	// ErrInvalidNode is returned when a node id does not refer to a live node.
	ErrInvalidNode = errors.New("flex: invalid node id")
	// ErrCycle is returned when a child assignment would make a node its
	// own ancestor.
	ErrCycle = errors.New("flex: children assignment creates a cycle")
)

// NodeID identifies a node within one Tree. The zero id is never valid.
type NodeID uint32

// Tree is a retained layout tree. Nodes live in a slab with a free list;
// removed slots are reused by later NewLeaf calls.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
	free  []NodeID
	live  int
}

type node struct {
	style    Style
	children []NodeID
	parent   NodeID
	layout   Layout
	valid    bool
}

// NewTree creates a tree pre-sized for capacity nodes. The capacity is a
// hint, not a limit.
func NewTree(capacity int) *Tree {
	if capacity < 0 {
		capacity = 0
	}
	return &Tree{
		nodes: make([]node, 0, capacity),
		free:  make([]NodeID, 0, 16),
	}
}

// NewLeaf creates a childless node with the given style.
func (t *Tree) NewLeaf(style Style) NodeID {
	n := node{style: style, valid: true}

	t.live++
	if len(t.free) > 0 {
		id := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[id-1] = n
		return id
	}

	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes))
}

// SetStyle replaces the style of an existing node.
func (t *Tree) SetStyle(id NodeID, style Style) error {
	n, ok := t.lookup(id)
	if !ok {
		return ErrInvalidNode
	}
	n.style = style
	return nil
}

// Style returns the current style of a node.
func (t *Tree) Style(id NodeID) (Style, error) {
	n, ok := t.lookup(id)
	if !ok {
		return Style{}, ErrInvalidNode
	}
	return n.style, nil
}

// SetChildren replaces the ordered child list of a node. Children are
// detached from any previous parent. The assignment is rejected with
// ErrCycle if any child is the node itself or one of its ancestors.
func (t *Tree) SetChildren(id NodeID, children []NodeID) error {
	n, ok := t.lookup(id)
	if !ok {
		return ErrInvalidNode
	}
	for _, c := range children {
		if _, ok := t.lookup(c); !ok {
			return ErrInvalidNode
		}
		if c == id || t.IsAncestor(c, id) {
			return ErrCycle
		}
	}

	// Detach current children.
	for _, c := range n.children {
		if cn, ok := t.lookup(c); ok && cn.parent == id {
			cn.parent = 0
		}
	}

	n.children = append(n.children[:0], children...)
	for _, c := range children {
		cn, _ := t.lookup(c)
		if cn.parent != 0 && cn.parent != id {
			if pn, ok := t.lookup(cn.parent); ok {
				pn.removeChild(c)
			}
		}
		cn.parent = id
	}
	return nil
}

// Children returns a copy of the node's ordered child list.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, ok := t.lookup(id)
	if !ok {
		return nil, ErrInvalidNode
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out, nil
}

// Remove deletes a node. Its slot is recycled. Former children stay in the
// tree with no parent; removing a subtree is the caller's job.
func (t *Tree) Remove(id NodeID) error {
	n, ok := t.lookup(id)
	if !ok {
		return ErrInvalidNode
	}

	if n.parent != 0 {
		if pn, ok := t.lookup(n.parent); ok {
			pn.removeChild(id)
		}
	}
	for _, c := range n.children {
		if cn, ok := t.lookup(c); ok && cn.parent == id {
			cn.parent = 0
		}
	}

	*n = node{}
	t.free = append(t.free, id)
	t.live--
	return nil
}

// Layout returns the most recently computed box for a node.
func (t *Tree) Layout(id NodeID) (Layout, error) {
	n, ok := t.lookup(id)
	if !ok {
		return Layout{}, ErrInvalidNode
	}
	return n.layout, nil
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.live
}

// Clear removes every node. Used by full-buffer rebuilds.
func (t *Tree) Clear() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.live = 0
}

func (t *Tree) lookup(id NodeID) (*node, bool) {
	if id == 0 || int(id) > len(t.nodes) {
		return nil, false
	}
	n := &t.nodes[id-1]
	if !n.valid {
		return nil, false
	}
	return n, true
}

// IsAncestor reports whether candidate appears on the parent chain of id.
// It backs the cycle guard in SetChildren and lets callers name the
// offending node when an assignment is rejected.
func (t *Tree) IsAncestor(candidate, id NodeID) bool {
	n, ok := t.lookup(id)
	for ok && n.parent != 0 {
		if n.parent == candidate {
			return true
		}
		n, ok = t.lookup(n.parent)
	}
	return false
}

func (n *node) removeChild(id NodeID) {
	for i, c := range n.children {
		if c == id {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}
