package paint

import (
	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/tree"
)

// paintDecorations paints one box's background and border — the
// Decorations phase of §4.11. A border-collapsed table cell paints
// through paintCollapsedCellBorder instead of PaintBorder, so each
// shared interior edge between two cells is drawn exactly once.
func paintDecorations(ctx GraphicsContext, box *frame.BoxModel, offset dimen.Point) {
	w, h := box.BorderBoxWidth(), box.BorderBoxHeight()
	if !w.IsAbsolute() || !h.IsAbsolute() {
		return
	}
	rect := dimen.Rect{TopL: offset, Width: w.Unwrap(), Height: h.Unwrap()}
	if box.Style != nil && box.Style.Background.A > 0 {
		ctx.FillRect(rect, box.Style.Background)
	}
	if box.Flags.Has(frame.FlagBorderCollapsed) {
		paintCollapsedCellBorder(ctx, box, rect)
		return
	}
	PaintBorder(ctx, box, rect)
}

// PaintBorder strokes each of a box's four border sides according to
// its resolved style (solid/double/dashed/dotted/groove/ridge/inset/
// outset), skipping sides with BorderNone/BorderHidden or zero
// resolved width (§4.11 "border drawing renders each of up to four
// sides according to style"). Joining mitred corners across sides of
// differing color/style is GraphicsContext's concern, not this
// package's: StrokeBoxSide receives the full border rect for each
// side so an implementation can compute its own miter.
func PaintBorder(ctx GraphicsContext, box *frame.BoxModel, rect dimen.Rect) {
	if box.Style == nil {
		return
	}
	if radii, uniform, ok := uniformRoundedBorder(box); ok {
		contour := roundedRectContour(rect, radii, 8)
		b := box.Style.Border[frame.Top]
		ctx.StrokePath(contour, b.Style, b.Color, uniform)
		return
	}
	for side := frame.Top; side <= frame.Left; side++ {
		strokeSide(ctx, box, side, rect)
	}
}

// uniformRoundedBorder reports whether box has a non-zero corner
// radius on at least one corner and all four sides share one width,
// style and color — the one shape StrokePath can render as a single
// closed path. Boxes with differing per-side borders still fall back
// to PaintBorder's straight-sided strokeSide, ignoring any radius:
// mitring four independently-styled rounded edges into one path is
// left to a future GraphicsContext extension.
func uniformRoundedBorder(box *frame.BoxModel) (radii [4]dimen.Dimen, width dimen.Dimen, ok bool) {
	anyRadius := false
	for i, r := range box.Style.BorderRadius {
		if r.IsAbsolute() && r.Unwrap() > 0 {
			anyRadius = true
			radii[i] = r.Unwrap()
		}
	}
	if !anyRadius {
		return radii, 0, false
	}
	first := box.Style.Border[frame.Top]
	w := box.BorderWidth[frame.Top]
	if !w.IsAbsolute() || w.Unwrap() <= 0 {
		return radii, 0, false
	}
	for side := frame.Top; side <= frame.Left; side++ {
		b := box.Style.Border[side]
		sw := box.BorderWidth[side]
		if b.Style != first.Style || b.Color != first.Color || !sw.IsAbsolute() || sw.Unwrap() != w.Unwrap() {
			return radii, 0, false
		}
	}
	return radii, w.Unwrap(), true
}

// paintCollapsedCellBorder draws a border-collapsed cell's top and
// left edges unconditionally (the cell above/to the left does not draw
// its own bottom/right edge there; engine/frame/layout/table.go's
// resolveCollapsedBorders resolves each edge against the cell's row and
// the table only, not against that neighbour cell), plus its
// right edge if it is the last cell of its row and its bottom edge if
// its row is the last row of the last section — so every edge of the
// collapsed grid, interior or boundary, is painted exactly once
// (§4.7, §4.11).
func paintCollapsedCellBorder(ctx GraphicsContext, cell *frame.BoxModel, rect dimen.Rect) {
	if cell.Style == nil {
		return
	}
	strokeSide(ctx, cell, frame.Top, rect)
	strokeSide(ctx, cell, frame.Left, rect)

	cellNode := cell.TreeNode()
	if isLastChild(cellNode) {
		strokeSide(ctx, cell, frame.Right, rect)
	}
	if rowNode := cellNode.Parent(); rowNode != nil && isLastChild(rowNode) {
		if sectionNode := rowNode.Parent(); sectionNode == nil || isLastChild(sectionNode) {
			strokeSide(ctx, cell, frame.Bottom, rect)
		}
	}
}

func strokeSide(ctx GraphicsContext, box *frame.BoxModel, side frame.Side, rect dimen.Rect) {
	b := box.Style.Border[side]
	w := box.BorderWidth[side]
	if b.Style == style.BorderNone || b.Style == style.BorderHidden || !w.IsAbsolute() || w.Unwrap() <= 0 {
		return
	}
	ctx.StrokeBoxSide(side, b.Style, b.Color, rect, w.Unwrap())
}

func isLastChild(node *tree.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return true
	}
	return parent.IndexOfChild(node) == parent.ChildCount()-1
}
