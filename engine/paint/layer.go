/*
Package paint walks the layer tree a laid-out document produces and
drives a caller-supplied GraphicsContext through it (spec §4.11 "Paint
pipeline"). It builds on engine/frame's BoxLayer (layer existence,
stacking order) and engine/frame/layout's finished geometry; it does
not perform any layout itself.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package paint

import (
	"sort"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
)

// BuildLayerTree links every frame.BoxLayer box construction already
// allocated (boxtree.build's frame.FlagHasLayer pass, §4.2) into a
// single tree rooted at root's own layer — allocating one for root if
// root's style didn't already demand one — then resolves every
// layer's absolute geometry (UpdatePosition, §4.11).
func BuildLayerTree(root *frame.BoxModel) *frame.BoxLayer {
	if root.Layer == nil {
		root.Layer = &frame.BoxLayer{Owner: root}
	}
	linkDescendantLayers(root, root.Layer)
	UpdatePosition(root.Layer)
	return root.Layer
}

func linkDescendantLayers(box *frame.BoxModel, nearest *frame.BoxLayer) {
	for _, cn := range box.Children() {
		child := boxtree.BoxOf(cn)
		if child == nil {
			continue
		}
		under := nearest
		if child.Layer != nil {
			child.Layer.Parent = nearest
			if child.Style != nil {
				child.Layer.ZIndex = child.Style.ZIndex
			}
			nearest.Children = append(nearest.Children, child.Layer)
			under = child.Layer
		}
		linkDescendantLayers(child, under)
	}
}

// ContainingLayer returns the nearest ancestor layer a positioned
// box's offsets are resolved against. This engine does not implement
// `position: absolute|fixed` placement (spec.md names no such module;
// boxes keep their normal-flow position regardless of `position`), so
// every layer's containing layer is simply its nearest layered
// ancestor — there is no separate walk skipping ancestors that
// "cannot contain" a particular position mode.
func ContainingLayer(layer *frame.BoxLayer) *frame.BoxLayer {
	return layer.Parent
}

// UpdatePosition resolves layer's absolute border rectangle, then
// stable-sorts its children by z-index and recurses, unioning each
// non-fixed, non-multi-column-flow child's overflow rectangle into
// layer's own (§4.11 "updatePosition"). Clipping from `overflow:
// hidden` excludes a child's overflow from the union outright, since
// painting later clips that child's contents to the same rectangle
// anyway.
func UpdatePosition(layer *frame.BoxLayer) {
	layer.BorderRect = absoluteBorderRect(layer)
	sort.SliceStable(layer.Children, func(i, j int) bool {
		return layer.Children[i].ZIndex < layer.Children[j].ZIndex
	})
	layer.OverflowRect = layer.BorderRect
	clipsChildren := isOverflowHidden(layer.Owner.Style)
	for _, child := range layer.Children {
		UpdatePosition(child)
		if clipsChildren {
			continue
		}
		if child.Owner.Style != nil && child.Owner.Style.Position == style.PositionFixed {
			continue
		}
		if child.Owner.Kind == frame.KindMultiColumnFlow {
			continue
		}
		layer.OverflowRect = layer.OverflowRect.Union(child.OverflowRect)
	}
}

func isOverflowHidden(s *style.BoxStyle) bool {
	return s != nil && (s.OverflowX != style.OverflowVisible || s.OverflowY != style.OverflowVisible)
}

// absoluteBorderRect accumulates a box's own border rectangle through
// every non-layered ancestor, stopping at (without including) the
// nearest ancestor that owns a layer of its own — the result is
// relative to that containing layer's own border rect, matching the
// source's "stacks border rectangles through non-layered ancestors"
// (§4.11).
func absoluteBorderRect(layer *frame.BoxLayer) dimen.Rect {
	box := layer.Owner
	rect := box.ResolvedBorderRect()
	node := box.TreeNode().Parent()
	for node != nil {
		anc := boxtree.BoxOf(node)
		if anc == nil {
			break
		}
		if anc.Layer != nil {
			break
		}
		rect.TopL.X += anc.TopL.X
		rect.TopL.Y += anc.TopL.Y
		node = node.Parent()
	}
	return rect
}
