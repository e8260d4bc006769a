/*
Package xpathadapter implements an xpath.NodeNavigator over
engine/dom's own *dom.Node, so the diagnostics layer can run XPath
queries against a built document tree without going through the
originating golang.org/x/net/html node.

For a description of the various methods of interface
xpath.NodeNavigator, see the documentation of antchfx/xpath; it is not
replicated here, mirroring the teacher's own
engine/dom/styledtree/xpathadapter package this is adapted from (that
one navigates styledtree.StyNode through its underlying *html.Node;
this one navigates dom.Node directly, since dom.Node already exposes
Type/NodeName/Attributes/TextContent/ChildNodes without needing the
html.Node it may or may not have originated from).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package xpathadapter

import (
	"errors"
	"fmt"

	"github.com/antchfx/xpath"

	"github.com/npillmayer/quire/engine/dom"
)

// NodeNavigator walks a dom.Node tree for antchfx/xpath query
// evaluation.
type NodeNavigator struct {
	root, current *dom.Node
	chinx         int // index into the current node's sibling list
	attr          int // attribute index, -1 when not positioned on one
}

// NewNavigator creates an xpath.NodeNavigator rooted at node.
func NewNavigator(node *dom.Node) *NodeNavigator {
	return &NodeNavigator{current: node, root: node, attr: -1}
}

// CurrentNode recovers the dom.Node a navigator is positioned at,
// for callers that received an xpath.NodeNavigator back from the
// xpath package (e.g. from an xpath.Expr's Select iterator).
func CurrentNode(nav xpath.NodeNavigator) (*dom.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch nav.current.Type() {
	case dom.DocumentNodeType:
		return xpath.RootNode
	case dom.TextNodeType:
		return xpath.TextNode
	case dom.ElementNodeType:
		if nav.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	}
	panic(fmt.Sprintf("unknown node type: %v", nav.current.Type()))
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.Attributes()[nav.attr].Name.String()
	}
	return nav.current.NodeName()
}

func (*NodeNavigator) Prefix() string { return "" }

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		return nav.current.Attributes()[nav.attr].Value
	}
	switch nav.current.Type() {
	case dom.TextNodeType:
		return nav.current.TextContent()
	case dom.ElementNodeType:
		return nav.current.TextContent()
	}
	return ""
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() { nav.current = nav.root }

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1
		return true
	}
	if nav.current == nav.root {
		return false
	}
	parent := nav.current.ParentNode()
	if parent == nil {
		return false
	}
	nav.current = parent
	nav.chinx = 0
	if grand := parent.ParentNode(); grand != nil {
		for i, k := range grand.ChildNodes() {
			if k == parent {
				nav.chinx = i
				break
			}
		}
	}
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr >= len(nav.current.Attributes())-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	kids := nav.current.ChildNodes()
	if len(kids) == 0 {
		return false
	}
	nav.chinx = 0
	nav.current = kids[0]
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.chinx == 0 {
		return false
	}
	parent := nav.current.ParentNode()
	if parent == nil {
		return false
	}
	kids := parent.ChildNodes()
	if len(kids) == 0 {
		return false
	}
	nav.chinx = 0
	nav.current = kids[0]
	return true
}

func (nav *NodeNavigator) String() string { return nav.Value() }

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 {
		return false
	}
	parent := nav.current.ParentNode()
	if parent == nil {
		return false
	}
	kids := parent.ChildNodes()
	if nav.chinx >= len(kids)-1 {
		return false
	}
	nav.chinx++
	nav.current = kids[nav.chinx]
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.chinx == 0 {
		return false
	}
	parent := nav.current.ParentNode()
	if parent == nil {
		return false
	}
	kids := parent.ChildNodes()
	nav.chinx--
	nav.current = kids[nav.chinx]
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current, nav.attr, nav.chinx = n.current, n.attr, n.chinx
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// QueryAll evaluates an XPath expression against root and returns every
// matching dom.Node, a diagnostic/query helper over the built tree
// (inspecting a node tree without writing a tree.Walk visitor by hand).
func QueryAll(root *dom.Node, expr string) ([]*dom.Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	iter := compiled.Select(NewNavigator(root))
	var out []*dom.Node
	for iter.MoveNext() {
		n, err := CurrentNode(iter.Current().(*NodeNavigator))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
