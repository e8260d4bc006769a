package layout

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/quire/engine/tree"
)

// MultiColumnFlow holds the original flow children of a box with a
// `columns` style and implements FragmentBuilder, treating each
// column as one fragment (§4.8, §4.9).
type MultiColumnFlow struct {
	FragmentState
	Box          *frame.BoxModel
	ColumnCount  int
	ColumnWidth  dimen.Dimen
	ColumnGap    dimen.Dimen
	Balance      bool
	MaxHeight    dimen.Dimen
}

// MultiColumnRow is one anonymous sibling row of columns, inserted
// around column-spanning children (§4.8 "the first spanner splits the
// initial row into two").
type MultiColumnRow struct {
	Box     *frame.BoxModel
	Flow    *MultiColumnFlow
	Content *arraylist.List // []*tree.Node, children laid out as a single flow within this row
}

// addContent appends a child node to row's content run, lazily
// creating the backing arraylist.List on first use.
func (row *MultiColumnRow) addContent(cn *tree.Node) {
	if row.Content == nil {
		row.Content = arraylist.New()
	}
	row.Content.Add(cn)
}

// nodes returns row's content run as a plain slice for iteration.
func (row *MultiColumnRow) nodes() []*tree.Node {
	if row.Content == nil {
		return nil
	}
	values := row.Content.Values()
	out := make([]*tree.Node, len(values))
	for i, v := range values {
		out[i] = v.(*tree.Node)
	}
	return out
}

// contentLen reports the number of nodes in row's content run.
func (row *MultiColumnRow) contentLen() int {
	if row.Content == nil {
		return 0
	}
	return row.Content.Size()
}

// WrapMultiColumnFlow inserts an anonymous MultiColumnFlowBox (kind
// KindMultiColumnFlow) as box's sole child, moving box's existing
// children under it, when box's style requests columns (§4.8).
func WrapMultiColumnFlow(box *frame.BoxModel) *frame.BoxModel {
	if box.Style == nil || (box.Style.ColumnCount == 0 && box.Style.ColumnWidth.IsNone()) {
		return nil
	}
	arena := box.Arena()
	flowBox := boxtree.New(arena, frame.KindMultiColumnFlow, nil, box.Style)
	children := box.Children()
	for _, c := range children {
		c.Detach()
		flowBox.AddChild(c)
	}
	box.AddChild(flowBox.TreeNode())
	return flowBox
}

// splitIntoRows partitions flowBox's children into a sequence of
// MultiColumnRows, inserting a row boundary around every child flagged
// FlagColumnSpanner (§4.8 "the spanner becomes a sibling of both, and
// subsequent children append to the latter row").
func splitIntoRows(flow *MultiColumnFlow) []*MultiColumnRow {
	var rows []*MultiColumnRow
	cur := &MultiColumnRow{Flow: flow}
	for _, cn := range flow.Box.Children() {
		child := boxtree.BoxOf(cn)
		if child != nil && child.Flags.Has(frame.FlagColumnSpanner) {
			if cur.contentLen() > 0 {
				rows = append(rows, cur)
			}
			spannerRow := &MultiColumnRow{Flow: flow}
			spannerRow.addContent(cn)
			rows = append(rows, spannerRow)
			cur = &MultiColumnRow{Flow: flow}
			continue
		}
		cur.addContent(cn)
	}
	if cur.contentLen() > 0 || len(rows) == 0 {
		rows = append(rows, cur)
	}
	return rows
}

// LayoutMultiColumnFlow implements spec §4.8: split into spanner-
// separated rows, then for each non-spanner row run the lay-out-then-
// balance iteration (steps 1-3) until the column height is stable.
func LayoutMultiColumnFlow(ctx *BlockContext, flowBox *frame.BoxModel, enclosingWidth dimen.Dimen) error {
	flow := &MultiColumnFlow{Box: flowBox, MaxHeight: dimen.Infinity}
	if flowBox.Style != nil {
		flow.ColumnCount = flowBox.Style.ColumnCount
		flow.ColumnWidth = flowBox.Style.ColumnWidth.Unwrap()
		flow.ColumnGap = flowBox.Style.ColumnGap.Unwrap()
		flow.Balance = flowBox.Style.ColumnFill == style.ColumnFillBalance
		if flowBox.Style.Height.IsAbsolute() {
			flow.MaxHeight = flowBox.Style.Height.Unwrap()
		}
	}
	contentWidth := enclosingWidth
	if flowBox.ContentWidth().IsAbsolute() {
		contentWidth = flowBox.ContentWidth().Unwrap()
	}
	colCount, colWidth := resolveColumnGeometry(flow, contentWidth)
	flowBox.ColumnRows = flowBox.ColumnRows[:0]

	rows := splitIntoRows(flow)
	y := flowBox.Padding[frame.Top].Unwrap()
	for _, row := range rows {
		if row.contentLen() == 1 {
			if spanner := boxtree.BoxOf(row.nodes()[0]); spanner != nil {
				spanner.TopL = dimen.Point{X: flowBox.Padding[frame.Left].Unwrap(), Y: y}
				if err := LayoutBlock(NewBlockContext(nil), spanner, contentWidth); err != nil {
					return err
				}
				y += boxHeight(spanner)
				continue
			}
		}
		rh := layoutColumnRow(row, colCount, colWidth, flow.ColumnGap, flow.MaxHeight, y)
		flowBox.ColumnRows = append(flowBox.ColumnRows, frame.ColumnRowGeometry{
			Top: y, Height: rh, ColumnCount: colCount, ColumnWidth: colWidth, Gap: flow.ColumnGap,
		})
		y += rh
	}
	flowBox.W = css.SomeDimen(contentWidth)
	flowBox.H = css.SomeDimen(y)
	return nil
}

func resolveColumnGeometry(flow *MultiColumnFlow, available dimen.Dimen) (count int, width dimen.Dimen) {
	switch {
	case flow.ColumnCount > 0 && flow.ColumnWidth > 0:
		count = flow.ColumnCount
		if maxFit := int(available / (flow.ColumnWidth + flow.ColumnGap)); maxFit < count {
			count = maxFit
		}
		if count < 1 {
			count = 1
		}
	case flow.ColumnCount > 0:
		count = flow.ColumnCount
	case flow.ColumnWidth > 0:
		count = int((available + flow.ColumnGap) / (flow.ColumnWidth + flow.ColumnGap))
		if count < 1 {
			count = 1
		}
	default:
		count = 1
	}
	totalGap := flow.ColumnGap * dimen.Dimen(count-1)
	width = (available - totalGap) / dimen.Dimen(count)
	return count, width
}

// layoutColumnRow performs the §4.8 step 1-3 iteration for one row of
// columns: lay out the row's content as a single flow into a probe
// fragment state, then balance the candidate column height until
// stable, re-laying out each time the height changes.
func layoutColumnRow(row *MultiColumnRow, colCount int, colWidth, gap, maxColumnHeight, startY dimen.Dimen) dimen.Dimen {
	height := estimateContentHeight(row, colWidth)
	for iter := 0; iter < 8; iter++ {
		fb := &FragmentState{Height: height}
		shortage := probeRowAtHeight(row, colWidth, fb)
		candidate := height
		if row.Flow.Balance || height == dimen.Infinity {
			tallest := fb.MaxSpaceShortage() + height
			if tallest > candidate {
				candidate = tallest
			}
			if shortage > 0 {
				add := fb.MinSpaceShortage()
				if add <= 0 {
					add = shortage
				}
				candidate = height + add
			}
		}
		if candidate > maxColumnHeight {
			candidate = maxColumnHeight
		}
		if candidate == height {
			break
		}
		height = candidate
	}
	placeColumnContent(row, colCount, colWidth, gap, height, startY)
	return height
}

// estimateContentHeight sums the natural (unconstrained) height of a
// row's content as the initial balancing guess.
func estimateContentHeight(row *MultiColumnRow, colWidth dimen.Dimen) dimen.Dimen {
	var h dimen.Dimen
	for _, cn := range row.nodes() {
		child := boxtree.BoxOf(cn)
		if child == nil {
			continue
		}
		LayoutBlock(NewBlockContext(nil), child, colWidth)
		h += boxHeight(child)
	}
	if h == 0 {
		return 20 * dimen.PT
	}
	return h
}

// probeRowAtHeight lays out the row's content against a tentative
// per-column height, recording where it would have to break, and
// returns the sum of the shortages of the children that straddle a
// column break.
func probeRowAtHeight(row *MultiColumnRow, colWidth dimen.Dimen, fb *FragmentState) dimen.Dimen {
	var y dimen.Dimen
	var overflow dimen.Dimen
	for _, cn := range row.nodes() {
		child := boxtree.BoxOf(cn)
		if child == nil {
			continue
		}
		breakBefore := style.BreakAuto
		if child.Style != nil {
			breakBefore = child.Style.BreakBefore
		}
		y = applyFragmentBreakBefore(fb, y, boxHeight(child), breakBefore)
		ch := boxHeight(child)
		if fb.Height > 0 {
			remainder := fb.Height - (y % fb.Height)
			if ch > remainder {
				fb.SetFragmentBreak(y, ch-remainder)
				overflow += ch - remainder
			}
		}
		y += ch
	}
	return overflow
}

// placeColumnContent lays out row's content into colCount columns of
// colWidth each and height columnHeight, advancing to the next column
// whenever a child would overflow the current one.
func placeColumnContent(row *MultiColumnRow, colCount int, colWidth, gap, columnHeight, startY dimen.Dimen) {
	col := 0
	y := dimen.Dimen(0)
	left := row.Flow.Box.Padding[frame.Left].Unwrap()
	for _, cn := range row.nodes() {
		child := boxtree.BoxOf(cn)
		if child == nil {
			continue
		}
		LayoutBlock(NewBlockContext(nil), child, colWidth)
		ch := boxHeight(child)
		if columnHeight > 0 && y+ch > columnHeight && y > 0 && col < colCount-1 {
			col++
			y = 0
		}
		x := left + dimen.Dimen(col)*(colWidth+gap)
		child.TopL = dimen.Point{X: x, Y: startY + y}
		y += ch
	}
}
