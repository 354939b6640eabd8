package scene

import (
	"errors"
	"fmt"

	"github.com/udisondev/roguecore/internal/geom"
)

var (
	// ErrStaleHandle is returned when a handle refers to a freed or dying node.
	ErrStaleHandle = errors.New("stale node handle")
	// ErrCycle is returned when attaching a node under its own descendant.
	ErrCycle = errors.New("attach would create a cycle")
)

// Handle is a generational reference to a node. The zero Handle is never valid.
// A handle becomes stale as soon as its node is queued for deletion, and its
// slot may be reused (with a new generation) after Flush.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d#%d)", h.index, h.gen)
}

// Transform is a node's local transform.
type Transform struct {
	Position geom.Vec3
	Rotation geom.Vec3 // Euler angles, radians
	Scale    geom.Vec3
}

// Identity is the zeroed local transform.
var Identity = Transform{Scale: geom.One3}

type node struct {
	gen      uint32
	used     bool
	dying    bool
	name     string
	proto    string
	parent   Handle
	children []Handle
	local    Transform
}

// Tree is an arena of attachment nodes with deferred deletion.
//
// QueueFree detaches a node from its parent immediately, so it is never
// observable as a child again, but keeps its slot reserved until Flush runs at
// the end of the step. Every read through a handle checks liveness first.
//
// Tree is not safe for concurrent use. It is owned by the simulation step.
type Tree struct {
	nodes   []node
	free    []uint32
	pending []Handle
	root    Handle

	// OnFree is called from Flush for every released node.
	OnFree func(h Handle, name string)
}

// NewTree creates a tree with a single root node.
func NewTree(rootName string) *Tree {
	t := &Tree{
		nodes: make([]node, 1, 64), // slot 0 unused so the zero Handle stays invalid
	}
	t.root = t.alloc(rootName)
	return t
}

// Root returns the root node.
func (t *Tree) Root() Handle { return t.root }

func (t *Tree) alloc(name string) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{})
	}

	n := &t.nodes[idx]
	n.gen++
	n.used = true
	n.dying = false
	n.name = name
	n.proto = ""
	n.parent = Handle{}
	n.children = n.children[:0]
	n.local = Identity

	return Handle{index: idx, gen: n.gen}
}

func (t *Tree) get(h Handle) (*node, error) {
	if h.IsZero() || int(h.index) >= len(t.nodes) {
		return nil, ErrStaleHandle
	}
	n := &t.nodes[h.index]
	if !n.used || n.dying || n.gen != h.gen {
		return nil, ErrStaleHandle
	}
	return n, nil
}

// Alive reports whether h refers to a live node (not freed, not queued).
func (t *Tree) Alive(h Handle) bool {
	_, err := t.get(h)
	return err == nil
}

// NewNode creates an empty node under parent. A zero parent creates an orphan.
func (t *Tree) NewNode(parent Handle, name string) (Handle, error) {
	if !parent.IsZero() {
		if _, err := t.get(parent); err != nil {
			return Handle{}, fmt.Errorf("new node %q: parent: %w", name, err)
		}
	}
	h := t.alloc(name)
	if !parent.IsZero() {
		if err := t.Attach(h, parent); err != nil {
			return Handle{}, err
		}
	}
	return h, nil
}

// Attach moves child under parent, detaching it from any previous parent.
func (t *Tree) Attach(child, parent Handle) error {
	c, err := t.get(child)
	if err != nil {
		return fmt.Errorf("attach child: %w", err)
	}
	if _, err := t.get(parent); err != nil {
		return fmt.Errorf("attach parent: %w", err)
	}
	for p := parent; !p.IsZero(); p = t.nodes[p.index].parent {
		if p == child {
			return ErrCycle
		}
	}

	t.detach(child, c)
	c.parent = parent
	pn := &t.nodes[parent.index]
	pn.children = append(pn.children, child)
	return nil
}

func (t *Tree) detach(h Handle, n *node) {
	if n.parent.IsZero() {
		return
	}
	p := &t.nodes[n.parent.index]
	for i, ch := range p.children {
		if ch == h {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = Handle{}
}

// Name returns the node name, or "" for stale handles.
func (t *Tree) Name(h Handle) string {
	n, err := t.get(h)
	if err != nil {
		return ""
	}
	return n.name
}

// Prototype returns the prototype reference the node was instantiated from.
func (t *Tree) Prototype(h Handle) string {
	n, err := t.get(h)
	if err != nil {
		return ""
	}
	return n.proto
}

// Parent returns the parent handle, zero for roots, orphans and stale handles.
func (t *Tree) Parent(h Handle) Handle {
	n, err := t.get(h)
	if err != nil {
		return Handle{}
	}
	return n.parent
}

// Children returns a copy of h's children, safe to iterate while freeing.
func (t *Tree) Children(h Handle) []Handle {
	n, err := t.get(h)
	if err != nil {
		return nil
	}
	out := make([]Handle, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of live children of h.
func (t *Tree) ChildCount(h Handle) int {
	n, err := t.get(h)
	if err != nil {
		return 0
	}
	return len(n.children)
}

// Child returns the direct child with the given name.
func (t *Tree) Child(h Handle, name string) (Handle, bool) {
	n, err := t.get(h)
	if err != nil {
		return Handle{}, false
	}
	for _, ch := range n.children {
		if t.nodes[ch.index].name == name {
			return ch, true
		}
	}
	return Handle{}, false
}

// Find returns the first descendant of h (depth-first, pre-order) with the
// given name. h itself is not considered.
func (t *Tree) Find(h Handle, name string) (Handle, bool) {
	n, err := t.get(h)
	if err != nil {
		return Handle{}, false
	}
	for _, ch := range n.children {
		if t.nodes[ch.index].name == name {
			return ch, true
		}
		if found, ok := t.Find(ch, name); ok {
			return found, true
		}
	}
	return Handle{}, false
}

// Local returns the node's local transform.
func (t *Tree) Local(h Handle) (Transform, error) {
	n, err := t.get(h)
	if err != nil {
		return Transform{}, err
	}
	return n.local, nil
}

// SetLocal replaces the node's local transform.
func (t *Tree) SetLocal(h Handle, tr Transform) error {
	n, err := t.get(h)
	if err != nil {
		return err
	}
	n.local = tr
	return nil
}

// QueueFree detaches h and its subtree and schedules them for release on the
// next Flush. Stale handles are ignored, so double frees are harmless.
func (t *Tree) QueueFree(h Handle) {
	n, err := t.get(h)
	if err != nil {
		return
	}
	if h == t.root {
		return
	}
	t.detach(h, n)
	t.markDying(h)
}

func (t *Tree) markDying(h Handle) {
	n := &t.nodes[h.index]
	n.dying = true
	t.pending = append(t.pending, h)
	for _, ch := range n.children {
		t.markDying(ch)
	}
}

// Pending returns the number of nodes waiting for Flush.
func (t *Tree) Pending() int { return len(t.pending) }

// Flush releases every node queued by QueueFree. Call once at end of step.
func (t *Tree) Flush() int {
	released := len(t.pending)
	for _, h := range t.pending {
		n := &t.nodes[h.index]
		if t.OnFree != nil {
			t.OnFree(h, n.name)
		}
		n.used = false
		n.dying = false
		n.parent = Handle{}
		n.children = n.children[:0]
		t.free = append(t.free, h.index)
	}
	t.pending = t.pending[:0]
	return released
}

// Len returns the number of live nodes, including the root.
func (t *Tree) Len() int {
	live := 0
	for i := 1; i < len(t.nodes); i++ {
		if t.nodes[i].used && !t.nodes[i].dying {
			live++
		}
	}
	return live
}
