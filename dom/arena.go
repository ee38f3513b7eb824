package dom

// NodeHandle is an opaque, stable reference to a node in a Document's arena.
// A handle is only meaningful for the Document that issued it. The zero
// NodeHandle never resolves.
type NodeHandle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h NodeHandle) IsZero() bool {
	return h.gen == 0
}

// node is the tagged variant stored in the arena. Exactly one shape is
// populated based on kind: elements use name/attrs/children, the character
// data kinds use text.
type node struct {
	kind     NodeType
	name     string
	text     string
	attrs    []Attr
	children []NodeHandle
	parent   NodeHandle
}

// slot wraps a node with the generation counter used to detect stale
// handles. A freed slot keeps its generation until reuse bumps it, so
// handles issued for a removed node can never resolve again.
type slot struct {
	node node
	gen  uint32
	live bool
}

// arena owns all node storage for one Document. It does not enforce tree
// invariants; the mutation API on Document is its sole structural mutator.
type arena struct {
	slots []slot
	free  []uint32
}

// allocate stores n and returns a handle for it. Freed slots are reused,
// with their generation bumped so outstanding handles to the old occupant
// stay invalid.
func (a *arena) allocate(n node) NodeHandle {
	if len(a.free) > 0 {
		index := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		s := &a.slots[index]
		s.node = n
		s.gen++
		s.live = true
		return NodeHandle{index: index, gen: s.gen}
	}
	a.slots = append(a.slots, slot{node: n, gen: 1, live: true})
	return NodeHandle{index: uint32(len(a.slots) - 1), gen: 1}
}

// resolve returns the node addressed by h, or a NotFoundError if h is the
// zero handle, was removed, or belongs to a different document.
func (a *arena) resolve(h NodeHandle) (*node, error) {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil, ErrNotFound("no node for handle")
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, ErrNotFound("node has been removed")
	}
	return &s.node, nil
}

// release frees the slot addressed by h. Resolving h afterwards fails.
func (a *arena) release(h NodeHandle) {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return
	}
	s.node = node{}
	s.live = false
	a.free = append(a.free, h.index)
}
