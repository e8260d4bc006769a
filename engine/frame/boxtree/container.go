/*
Package boxtree builds the box tree from a document's node tree and a
style cascade (spec §4.2 "Box construction").

Container generalizes the teacher's engine/frame/boxtree.Container
interface from a three-way closed hierarchy (PrincipalBox/AnonymousBox/
TextBox) to the full tagged-variant box hierarchy of spec §3: every box
kind embeds frame.BoxModel, and Container is implemented once, on
frame.BoxModel itself, rather than once per concrete box type.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package boxtree

import (
	"fmt"

	"github.com/npillmayer/quire/engine/dom"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/tree"
)

// Container is the interface every box kind satisfies, replacing the
// teacher's Container built around three concrete struct types (§9
// redesign: one BoxKind tag rather than one Go type per box shape).
type Container interface {
	TreeNode() *tree.Node
	CSSBox() *frame.BoxModel
	DOMNode() *dom.Node
	BoxKind() frame.BoxKind
}

var _ Container = (*frame.BoxModel)(nil)

// ErrNullChild flags an error condition when a non-nil child was
// expected.
var ErrNullChild = fmt.Errorf("boxtree: child box must not be null")

// ErrAnonBoxNotFound flags an error condition where an anonymous box
// should be present but could not be found.
var ErrAnonBoxNotFound = fmt.Errorf("boxtree: no anonymous box found for index")

// BoxOf recovers the Container a tree.Node belongs to.
func BoxOf(n *tree.Node) *frame.BoxModel {
	if n == nil || n.Payload == nil {
		return nil
	}
	b, ok := n.Payload.(*frame.BoxModel)
	if !ok {
		panic(fmt.Sprintf("boxtree: tree node payload is not a box, got %T", n.Payload))
	}
	return b
}

// New allocates a box of the given kind, wired into its own tree node
// (Payload always points back to the box, per the teacher's "tree node
// -> box" convention) and, for non-anonymous kinds, carrying the dom
// node and resolved style it was built from.
func New(arena *tree.Arena, kind frame.BoxKind, elem *dom.Node, s *style.BoxStyle) *frame.BoxModel {
	box := &frame.BoxModel{}
	box.Kind = kind
	box.Elem = elem
	box.Style = s
	if elem == nil {
		box.Flags |= frame.FlagAnonymous
	}
	n := arena.NewNode(box)
	box.Node = *n
	frame.InitZeroBox(box)
	return box
}
