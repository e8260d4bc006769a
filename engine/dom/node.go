/*
Package dom implements the document node tree: text and element nodes
with parent/sibling links and a style-resolution hook (spec §3 "Node").

A Document owns an arena.Heap for its text content and a per-document
arena.Table; tag/attribute/namespace names are interned in the
process-wide table, arena.Global() (§3 "Interned identifier", §5
"Process-wide state"). Building a tree
here never touches an HTML or CSS parser directly — those are named
external collaborators in spec §1/§6; FromHTMLNode is the one narrow
adapter that walks an already-parsed golang.org/x/net/html tree into
this engine's own node representation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dom

import (
	"github.com/npillmayer/quire/core/arena"
	"github.com/npillmayer/quire/engine/tree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// NodeType discriminates the three node kinds spec §3 names: Text,
// Element, Document (root).
type NodeType uint8

const (
	DocumentNodeType NodeType = iota
	ElementNodeType
	TextNodeType
)

// Attribute is one `name -> value` pair of an element; name is unique
// within an element (§3 "Node" invariants).
type Attribute struct {
	Name  arena.Name
	Value string
}

// Node is a polymorphic document-tree entity: one of Text, Element, or
// Document (root). Embeds tree.Node for parent/sibling/child links.
type Node struct {
	tree.Node
	nodeType NodeType
	doc      *Document

	// Element fields.
	namespace  arena.Name
	tag        arena.Name
	id         string
	classes    []string
	attributes []Attribute

	// Text field.
	text string

	// htmlNode is the originating golang.org/x/net/html node, kept
	// alive so a cascadia selector can match against it directly
	// (cascadia walks *html.Node parent/sibling links); nil for nodes
	// built programmatically rather than through FromHTMLNode.
	htmlNode interface{}

	// box is a weak back pointer to the box this node built, set once
	// by box construction (§3: "a weak back pointer to its owning
	// box, set when the box is created"). Typed as interface{} to
	// avoid an import cycle with the box-tree package; callers type-
	// assert to their own box-tree Container interface.
	box interface{}
}

// NodeFromTree recovers a *Node from a generic tree.Node, or nil if n
// does not belong to a dom tree.
func NodeFromTree(n *tree.Node) *Node {
	if n == nil {
		return nil
	}
	if dn, ok := n.Payload.(*Node); ok {
		return dn
	}
	return nil
}

// Type returns which of Document/Element/Text this node is.
func (n *Node) Type() NodeType { return n.nodeType }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// ParentNode returns the dom parent, or nil at the root.
func (n *Node) ParentNode() *Node {
	return NodeFromTree(n.Node.Parent())
}

// ChildNodes returns the direct children, in document order.
func (n *Node) ChildNodes() []*Node {
	kids := n.Node.Children()
	out := make([]*Node, 0, len(kids))
	for _, k := range kids {
		out = append(out, NodeFromTree(k))
	}
	return out
}

// HasChildNodes reports whether n has at least one child.
func (n *Node) HasChildNodes() bool {
	return n.Node.ChildCount() > 0
}

// NodeName returns the element tag name, or "#text"/"#document" for the
// other node types.
func (n *Node) NodeName() string {
	switch n.nodeType {
	case TextNodeType:
		return "#text"
	case DocumentNodeType:
		return "#document"
	default:
		return n.tag.String()
	}
}

// NamespaceURI returns the element's namespace, or the zero Name for
// non-elements.
func (n *Node) NamespaceURI() arena.Name { return n.namespace }

// ID returns the element's `id` attribute value, or "".
func (n *Node) ID() string { return n.id }

// ClassList returns the element's ordered class list.
func (n *Node) ClassList() []string { return n.classes }

// HasClass reports whether cls is present in the element's class list.
func (n *Node) HasClass(cls string) bool {
	for _, c := range n.classes {
		if c == cls {
			return true
		}
	}
	return false
}

// Attributes returns the element's attributes in source order.
func (n *Node) Attributes() []Attribute { return n.attributes }

// Attribute returns the value of the named attribute and whether it was
// present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attributes {
		if a.Name.String() == name {
			return a.Value, true
		}
	}
	return "", false
}

// TextContent returns the raw text for a text node, or "" otherwise.
func (n *Node) TextContent() string { return n.text }

// Box returns the box built for this node, or nil if box construction
// has not reached this node yet.
func (n *Node) Box() interface{} { return n.box }

// SetBox records the box built for this node. Box construction calls
// this exactly once per node (§3 Node invariants).
func (n *Node) SetBox(box interface{}) { n.box = box }

// IsWhitespaceOnly reports whether a text node's content is entirely
// CSS whitespace (space, tab, newline, form-feed, CR) — used by box
// construction to elide collapsible whitespace next to block contexts
// (§4.2).
func (n *Node) IsWhitespaceOnly() bool {
	if n.nodeType != TextNodeType {
		return false
	}
	for _, r := range n.text {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// --- Document ----------------------------------------------------------------

// Document is the root of one document's node tree. It owns the arena
// heap for all of its node/text memory (§3 "Arena heap") and a
// per-document string interning table distinct from the process-wide
// one, mirroring §5's "all document-scoped allocations live in the
// document's arena".
type Document struct {
	Root    *Node
	BaseURL string
	heap    *arena.Heap
	names   *arena.Table
	arena   *tree.Arena

	// UserStyleSheet and AuthorStyleSheet hold raw CSS text, consumed
	// by an external style.Cascade implementation (§6 "Document input").
	UserStyleSheet   string
	AuthorStyleSheet string
}

// NewDocument creates an empty document with a fresh arena heap and a
// root Document node.
func NewDocument(baseURL string) *Document {
	d := &Document{
		BaseURL: baseURL,
		heap:    arena.NewHeap(),
		names:   arena.NewTable(),
		arena:   tree.NewArena(),
	}
	root := d.newNode(DocumentNodeType)
	d.Root = root
	return d
}

// Heap returns the document's arena heap.
func (d *Document) Heap() *arena.Heap { return d.heap }

// Names returns the document-local interning table (distinct from
// arena.Global(), so that two documents never share per-run page/counter
// names while still sharing the ubiquitous tag/attribute names through
// arena.Global()).
func (d *Document) Names() *arena.Table { return d.names }

// Free releases the document's arena heap. Nodes become unsafe to use
// for text access afterwards (§3 "Lifecycles").
func (d *Document) Free() {
	d.heap.Free()
}

func (d *Document) newNode(t NodeType) *Node {
	n := &Node{nodeType: t, doc: d}
	treeNode := d.arena.NewNode(n)
	n.Node = *treeNode
	return n
}

// NewElement creates a detached element node with the given namespace
// and tag, both interned into the process-wide table (§3 "Interned
// identifier").
func (d *Document) NewElement(namespace, tag string) *Node {
	n := d.newNode(ElementNodeType)
	n.namespace = arena.Intern(namespace)
	n.tag = arena.Intern(tag)
	return n
}

// NewText creates a detached text node; the string is copied into the
// document's arena so later mutation of the caller's buffer cannot
// corrupt the tree.
func (d *Document) NewText(s string) *Node {
	n := d.newNode(TextNodeType)
	n.text = d.heap.CopyString(s)
	return n
}

// SetID sets the element's `id` attribute.
func (n *Node) SetID(id string) { n.id = id }

// SetClasses sets the element's ordered class list.
func (n *Node) SetClasses(classes []string) { n.classes = classes }

// SetAttribute sets (or replaces) one attribute, interning its name.
// Per §3's "Node" invariant, an attribute name is unique within an
// element — a repeated SetAttribute for the same name overwrites it.
func (n *Node) SetAttribute(name, value string) {
	interned := arena.Intern(name)
	for i := range n.attributes {
		if n.attributes[i].Name.Equal(interned) {
			n.attributes[i].Value = value
			return
		}
	}
	n.attributes = append(n.attributes, Attribute{Name: interned, Value: value})
}
