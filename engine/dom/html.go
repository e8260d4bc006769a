package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTMLNode walks an already-parsed golang.org/x/net/html tree and
// builds the equivalent dom.Node tree under doc. This is the one place
// an external HTML parser's node representation crosses into the
// engine's own; html.Parse itself stays external, consistent with the
// teacher's `input/html` package, which names golang.org/x/net/html as
// its parser but never re-implements one.
func FromHTMLNode(doc *Document, h *html.Node) *Node {
	var walk func(h *html.Node) *Node
	walk = func(h *html.Node) *Node {
		var n *Node
		switch h.Type {
		case html.TextNode:
			n = doc.NewText(h.Data)
			n.htmlNode = h
		case html.ElementNode:
			n = doc.NewElement(h.Namespace, h.Data)
			n.htmlNode = h
			for _, a := range h.Attr {
				n.SetAttribute(a.Key, a.Val)
			}
			if id, ok := n.Attribute("id"); ok {
				n.SetID(id)
			}
			if cls, ok := n.Attribute("class"); ok {
				n.SetClasses(splitClassList(cls))
			}
		case html.DocumentNode:
			n = doc.Root
		case html.DoctypeNode, html.CommentNode:
			// Not modeled in the node tree: spec §3 names Text, Element,
			// Document only.
			return nil
		default:
			return nil
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := walk(c); child != nil {
				n.Node.AddChild(&child.Node)
			}
		}
		return n
	}
	root := walk(h)
	if root != nil && root != doc.Root {
		doc.Root.Node.AddChild(&root.Node)
	}
	return doc.Root
}

func splitClassList(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	return out
}

// HTMLNode returns the originating golang.org/x/net/html node for a
// node built through FromHTMLNode, or nil. The default style cascade
// uses this to run cascadia selectors, which match directly against
// *html.Node parent/sibling links.
func (n *Node) HTMLNode() *html.Node {
	h, _ := n.htmlNode.(*html.Node)
	return h
}

// TagAtom returns the golang.org/x/net/html/atom for n's tag, for fast
// well-known-tag comparisons (<table>, <tr>, <td>, ...) during box
// construction (§4.2's table anonymous-box materialization needs to
// recognize these without a string compare per node).
func (n *Node) TagAtom() atom.Atom {
	if n.nodeType != ElementNodeType {
		return 0
	}
	return atom.Lookup([]byte(n.tag.String()))
}
