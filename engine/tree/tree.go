/*
Package tree implements the general-purpose tree shared by the document
node tree, the box tree, and the formatting-context tree.

Spec §9 ("Design Notes") flags the source's deep, intrusively-linked,
pointer-based tree as something to recast: "replace raw parent/child/
sibling pointers with indices into a per-document arena of box records;
store parent index and first-child/next-sibling indices. This preserves
O(1) traversal while eliminating cyclic ownership." This package is that
redesign: Node stores indices into an Arena rather than raw pointers, so
an entire subtree can be discarded by dropping the arena (§3 "Arena
heap") without chasing cyclic back-references.

A Node still exposes the pointer-like API the rest of the engine is
written against (AddChild, Children, Parent, IndexOfChild, SetChildAt) —
callers never see the index, only *Node values resolved through the
owning Arena.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tree

// index is a 1-based slot into an Arena's node slice; 0 means "no node".
type index int32

const nilIndex index = 0

// Arena owns every Node of one tree (one document, one box tree, ...).
// Nodes are appended and never individually removed; detaching a node
// only rewrites links, matching §3's "Arena heap" ownership model.
type Arena struct {
	nodes []nodeRec
}

type nodeRec struct {
	parent, firstChild, lastChild, prevSibling, nextSibling index
	node                                                    *Node
}

// NewArena creates an empty tree arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]nodeRec, 1)} // slot 0 reserved as nilIndex
}

// NewNode allocates a new, parentless, childless Node owned by a, with
// the given Payload (the box, DOM node, or context value this tree slot
// represents).
func (a *Arena) NewNode(payload interface{}) *Node {
	n := &Node{arena: a, self: index(len(a.nodes)), Payload: payload}
	a.nodes = append(a.nodes, nodeRec{node: n})
	return n
}

func (a *Arena) rec(i index) *nodeRec {
	if i == nilIndex {
		return nil
	}
	return &a.nodes[i]
}

// Node is one entity of a tree: a document node, a box, or a formatting
// context. Embed Node by value to make a type tree-aware (as the
// teacher's PrincipalBox/TextBox/AnonymousBox embed tree.Node).
type Node struct {
	arena *Arena
	self  index

	// Payload is the tree-node's owner, i.e. the concrete box/DOM-node
	// value this Node is embedded in. Always points back to itself —
	// "tree node -> box" — so that generic tree walks can recover the
	// concrete type without a parallel index.
	Payload interface{}
}

// ensureArena lazily creates a private single-node arena for Nodes built
// without NewNode (e.g. a zero-value Node embedded in a struct literal).
func (n *Node) ensureArena() {
	if n.arena == nil {
		n.arena = NewArena()
		n.self = index(len(n.arena.nodes))
		n.arena.nodes = append(n.arena.nodes, nodeRec{node: n})
	}
}

func (n *Node) rec() *nodeRec {
	n.ensureArena()
	return n.arena.rec(n.self)
}

// Arena returns the tree arena owning n.
func (n *Node) Arena() *Arena {
	n.ensureArena()
	return n.arena
}

// Parent returns n's parent, or nil if n is a root.
func (n *Node) Parent() *Node {
	r := n.rec()
	if r.parent == nilIndex {
		return nil
	}
	return n.arena.rec(r.parent).node
}

// ChildCount returns the number of direct children of n.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChildNode(); c != nil; c = c.nextSiblingNode() {
		count++
	}
	return count
}

// Children returns the direct children of n, in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChildNode(); c != nil; c = c.nextSiblingNode() {
		out = append(out, c)
	}
	return out
}

// Child returns the i-th direct child of n (0-based).
func (n *Node) Child(i int) (*Node, bool) {
	j := 0
	for c := n.firstChildNode(); c != nil; c = c.nextSiblingNode() {
		if j == i {
			return c, true
		}
		j++
	}
	return nil, false
}

// IndexOfChild returns the position of child within n's children, or -1
// if child is not a direct child of n.
func (n *Node) IndexOfChild(child *Node) int {
	i := 0
	for c := n.firstChildNode(); c != nil; c = c.nextSiblingNode() {
		if c == child {
			return i
		}
		i++
	}
	return -1
}

func (n *Node) firstChildNode() *Node {
	r := n.rec()
	if r.firstChild == nilIndex {
		return nil
	}
	return n.arena.rec(r.firstChild).node
}

func (n *Node) lastChildNode() *Node {
	r := n.rec()
	if r.lastChild == nilIndex {
		return nil
	}
	return n.arena.rec(r.lastChild).node
}

func (n *Node) nextSiblingNode() *Node {
	r := n.rec()
	if r.nextSibling == nilIndex {
		return nil
	}
	return n.arena.rec(r.nextSibling).node
}

func (n *Node) prevSiblingNode() *Node {
	r := n.rec()
	if r.prevSibling == nilIndex {
		return nil
	}
	return n.arena.rec(r.prevSibling).node
}

// Detach removes n from its parent's child list. n itself remains a
// valid, childless-of-nothing-changed node that may be reinserted
// elsewhere (§3 invariant: "removing a node detaches it before any
// reinsertion").
func (n *Node) Detach() {
	r := n.rec()
	if r.parent == nilIndex {
		return
	}
	parent := n.arena.rec(r.parent)
	prev, next := r.prevSibling, r.nextSibling
	if prev != nilIndex {
		n.arena.rec(prev).nextSibling = next
	} else {
		parent.firstChild = next
	}
	if next != nilIndex {
		n.arena.rec(next).prevSibling = prev
	} else {
		parent.lastChild = prev
	}
	r.parent, r.prevSibling, r.nextSibling = nilIndex, nilIndex, nilIndex
}

// adopt re-parents child's Node into a's arena if it was built in a
// different (private, lazily-created) arena. Documents are expected to
// share one arena end to end; this only matters for ad-hoc Nodes
// created in tests via struct literals.
func (n *Node) adopt(child *Node) *Node {
	n.ensureArena()
	child.ensureArena()
	if child.arena == n.arena {
		return child
	}
	moved := n.arena.NewNode(child.Payload)
	for _, gc := range child.Children() {
		moved.AddChild(n.adopt(gc))
	}
	return moved
}

// AddChild appends child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		return n
	}
	child = n.adopt(child)
	child.Detach()
	r := n.rec()
	cr := child.rec()
	cr.parent = n.self
	if r.lastChild == nilIndex {
		r.firstChild, r.lastChild = child.self, child.self
		cr.prevSibling, cr.nextSibling = nilIndex, nilIndex
	} else {
		last := n.arena.rec(r.lastChild)
		last.nextSibling = child.self
		cr.prevSibling = r.lastChild
		cr.nextSibling = nilIndex
		r.lastChild = child.self
	}
	return n
}

// SetChildAt inserts or replaces the child at position at (0-based),
// appending to the end if at is beyond the current child count. Used by
// box construction to splice anonymous boxes into a specific slot
// (§4.2).
func (n *Node) SetChildAt(at int, child *Node) {
	existing := n.Children()
	if at >= len(existing) {
		n.AddChild(child)
		return
	}
	child = n.adopt(child)
	anchor := existing[at]
	child.Detach()
	r := n.rec()
	cr := child.rec()
	ar := anchor.rec()
	cr.parent = n.self
	cr.prevSibling = ar.prevSibling
	cr.nextSibling = anchor.self
	if ar.prevSibling == nilIndex {
		r.firstChild = child.self
	} else {
		n.arena.rec(ar.prevSibling).nextSibling = child.self
	}
	ar.prevSibling = child.self
}

// Walk performs a pre-order traversal of n and all its descendants,
// calling visit for each node. Traversal stops early if visit returns
// false.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children() {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}
