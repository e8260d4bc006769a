package layout

import (
	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/tree"
)

// pageSize is a plain width/height pair in design units.
type pageSize struct {
	Width, Height dimen.Dimen
}

// PageDriver resolves the `@page` cascade, sizes the document
// container, paginates the laid-out document flow, and builds each
// PageBox's margin boxes — spec §4.10.
type PageDriver struct {
	FragmentState
	Cascade     style.Cascade
	PageName    string
	ContentArea pageSize // page content-area size at scale 1
	Scale       float64
}

// PageBox is one rendered page: its own box (laid out against the
// content area) plus up to 16 margin boxes.
type PageBox struct {
	Index       int
	Box         *frame.BoxModel
	ContentRect dimen.Rect // in document coordinates, at scale 1
	MarginBoxes map[style.MarginBoxType]*frame.BoxModel
}

// NewPageDriver resolves the first page's @page style and content area.
func NewPageDriver(cascade style.Cascade, pageName string) (*PageDriver, *style.BoxStyle) {
	pageStyle := cascade.StyleForPage(pageName, 0, style.PseudoNone)
	d := &PageDriver{Cascade: cascade, PageName: pageName, Scale: 1.0}
	d.ContentArea = contentAreaOf(pageStyle)
	d.FragmentState.Height = d.ContentArea.Height
	return d, pageStyle
}

// contentAreaOf resolves the page content area from the @page style,
// falling back to US Letter at 72bp/in when no size is specified.
func contentAreaOf(pageStyle *style.BoxStyle) pageSize {
	w, h := 612*dimen.BP, 792*dimen.BP
	if pageStyle == nil {
		return pageSize{Width: w, Height: h}
	}
	if pageStyle.Width.IsAbsolute() {
		w = pageStyle.Width.Unwrap()
	}
	if pageStyle.Height.IsAbsolute() {
		h = pageStyle.Height.Unwrap()
	}
	w -= pageStyle.Margin.Left.Unwrap() + pageStyle.Margin.Right.Unwrap()
	h -= pageStyle.Margin.Top.Unwrap() + pageStyle.Margin.Bottom.Unwrap()
	return pageSize{Width: w, Height: h}
}

// LayoutDocument runs spec §4.10's top-level algorithm: size the
// document container to content-area-width/scale, lay it out once,
// shrink-to-fit when content overflows horizontally and no explicit
// page width was given, then report the page count.
func (d *PageDriver) LayoutDocument(ctx *BlockContext, root *frame.BoxModel, pageStyle *style.BoxStyle, explicitScale bool) (pageCount int, err error) {
	containerWidth := dimen.Dimen(float64(d.ContentArea.Width) / d.Scale)
	if err := LayoutBlock(ctx, root, containerWidth); err != nil {
		return 0, err
	}
	docWidth := root.TotalWidth()
	if !explicitScale && docWidth.IsAbsolute() && docWidth.Unwrap() > containerWidth && containerWidth > 0 {
		d.Scale = float64(containerWidth) / float64(docWidth.Unwrap())
		containerWidth = docWidth.Unwrap()
		if err := LayoutBlock(ctx, root, containerWidth); err != nil {
			return 0, err
		}
	}
	docHeight := boxHeight(root)
	if d.ContentArea.Height <= 0 {
		return 1, nil
	}
	pageCount = int((docHeight + d.ContentArea.Height - 1) / d.ContentArea.Height)
	if pageCount < 1 {
		pageCount = 1
	}
	return pageCount, nil
}

// PageContentRectAt returns the document-coordinate band rendering
// page index shows, at scale 1 (§4.10/§4.11 "pageContentRectAt").
func (d *PageDriver) PageContentRectAt(pageIndex int) dimen.Rect {
	y := dimen.Dimen(pageIndex) * d.ContentArea.Height
	return dimen.Rect{TopL: dimen.Point{X: 0, Y: y}, Width: d.ContentArea.Width, Height: d.ContentArea.Height}
}

// BuildPage resolves pageIndex's @page style (honoring first/left/
// right pseudos), constructs its PageBox, and builds + lays out its
// margin boxes (§4.10).
func (d *PageDriver) BuildPage(arena *tree.Arena, pageIndex int) *PageBox {
	// first/left/right page selectors are resolved by the cascade from
	// pageName+pageIndex alone (§4.1); no separate Pseudo value names them.
	pageStyle := d.Cascade.StyleForPage(d.PageName, pageIndex, style.PseudoNone)
	box := boxtree.New(arena, frame.KindPage, nil, pageStyle)
	pb := &PageBox{Index: pageIndex, Box: box, ContentRect: d.PageContentRectAt(pageIndex),
		MarginBoxes: map[style.MarginBoxType]*frame.BoxModel{}}

	for mt := style.TopLeftCorner; mt <= style.LeftTop; mt++ {
		ms := d.Cascade.StyleForPageMargin(d.PageName, pageIndex, mt, pageStyle)
		if ms == nil {
			continue
		}
		mb := boxtree.New(arena, frame.KindPageMargin, nil, ms)
		box.AddChild(mb.TreeNode())
		pb.MarginBoxes[mt] = mb
	}
	d.layoutMarginBoxes(pb)
	return pb
}

// layoutMarginBoxes places each margin box per §4.10: corner boxes are
// laid out at zero width and placed at their page corner; edge-slot
// boxes (three per edge) are sized and distributed start/center/end
// along the edge by layoutEdgeSlot. Margins of margin boxes are not
// consulted.
func (d *PageDriver) layoutMarginBoxes(pb *PageBox) {
	area := d.ContentArea
	pageW, pageH := area.Width, area.Height

	corners := map[style.MarginBoxType]dimen.Rect{
		style.TopLeftCorner:     {TopL: dimen.Point{X: 0, Y: 0}},
		style.TopRightCorner:    {TopL: dimen.Point{X: pageW, Y: 0}},
		style.BottomLeftCorner:  {TopL: dimen.Point{X: 0, Y: pageH}},
		style.BottomRightCorner: {TopL: dimen.Point{X: pageW, Y: pageH}},
	}
	for mt, rect := range corners {
		box, ok := pb.MarginBoxes[mt]
		if !ok {
			continue
		}
		LayoutBlock(NewBlockContext(nil), box, rect.Width)
		box.TopL = rect.TopL
	}

	edges := []struct {
		start, center, end style.MarginBoxType
		horizontal         bool
		pos                dimen.Dimen
	}{
		{style.TopLeft, style.TopCenter, style.TopRight, true, 0},
		{style.BottomLeft, style.BottomCenter, style.BottomRight, true, pageH},
		{style.LeftTop, style.LeftMiddle, style.LeftBottom, false, 0},
		{style.RightTop, style.RightMiddle, style.RightBottom, false, pageW},
	}
	for _, e := range edges {
		extent := pageW
		if !e.horizontal {
			extent = pageH
		}
		d.layoutEdgeSlot(pb, e.start, e.center, e.end, e.horizontal, e.pos, extent)
	}
}

// layoutEdgeSlot resolves the three boxes of one page edge: each box's
// length along the edge is its absolute width (height on a vertical
// edge), or one third of the edge otherwise; min/max sizes are not
// consulted. Start sits at the edge's start, center is centered, and
// end ends flush with the edge's end.
func (d *PageDriver) layoutEdgeSlot(pb *PageBox, start, center, end style.MarginBoxType, horizontal bool, fixedCoord, extent dimen.Dimen) {
	boxes := []struct {
		mt style.MarginBoxType
	}{{start}, {center}, {end}}

	var widths [3]dimen.Dimen
	var present [3]bool
	for i, b := range boxes {
		box, ok := pb.MarginBoxes[b.mt]
		if !ok {
			continue
		}
		present[i] = true
		w := extent / 3
		if box.Style != nil && box.Style.Width.IsAbsolute() && horizontal {
			w = box.Style.Width.Unwrap()
		} else if box.Style != nil && box.Style.Height.IsAbsolute() && !horizontal {
			w = box.Style.Height.Unwrap()
		}
		widths[i] = w
		LayoutBlock(NewBlockContext(nil), box, w)
	}

	positions := [3]dimen.Dimen{0, (extent - widths[1]) / 2, extent - widths[2]}
	for i, b := range boxes {
		if !present[i] {
			continue
		}
		box := pb.MarginBoxes[b.mt]
		if horizontal {
			box.TopL = dimen.Point{X: positions[i], Y: fixedCoord}
		} else {
			box.TopL = dimen.Point{X: fixedCoord, Y: positions[i]}
		}
	}
}
