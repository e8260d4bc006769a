package layout

import (
	"sort"
	"strconv"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
)

// tableColumn accumulates the min/max/fixed/percent bounds a column
// needs for the auto algorithm, and just the fixed width for the fixed
// algorithm (§4.7).
type tableColumn struct {
	Min, Max   dimen.Dimen
	Fixed      css.DimenT
	Percent    float64
	HasPercent bool
	Width      dimen.Dimen // resolved
}

// tableCell is a flattened view of one cell box together with its grid
// position, used by both algorithms and by row-height distribution.
type tableCell struct {
	Box            *frame.BoxModel
	Row, Col       int
	RowSpan, ColSpan int
}

// LayoutTable implements spec §4.7: build the column/row grid, run the
// fixed width algorithm for a `display: table` box with an absolute
// width and the auto algorithm otherwise (`table-layout` is not read), resolve
// row heights, then place every cell.
func LayoutTable(ctx *BlockContext, table *frame.BoxModel, enclosingWidth dimen.Dimen) error {
	if err := resolveWidth(table, enclosingWidth); err != nil {
		return err
	}
	available := table.ContentWidth()
	if available.IsNone() {
		available = css.SomeDimen(enclosingWidth)
	}
	rows, cells, colCount := gatherGrid(table)
	if colCount == 0 {
		return nil
	}
	cols := make([]*tableColumn, colCount)
	for i := range cols {
		cols[i] = &tableColumn{}
	}

	fixedLayout := table.Style != nil && table.Style.Display == style.DisplayTable && tableLayoutIsFixed(table)
	if fixedLayout {
		resolveFixedColumns(cols, cells, available.Unwrap())
	} else {
		resolveAutoColumns(cols, cells, available.Unwrap())
	}

	colX := make([]dimen.Dimen, colCount+1)
	left := table.Padding[frame.Left].Unwrap() + table.BorderWidth[frame.Left].Unwrap()
	colX[0] = left
	for i, c := range cols {
		colX[i+1] = colX[i] + c.Width
	}

	rowHeights := resolveRowHeights(cells, len(rows))
	rowY := make([]dimen.Dimen, len(rows)+1)
	top := table.Padding[frame.Top].Unwrap() + table.BorderWidth[frame.Top].Unwrap()
	rowY[0] = top
	for i, h := range rowHeights {
		rowY[i+1] = rowY[i] + h
	}

	for _, c := range cells {
		c.Box.TopL = dimen.Point{X: colX[c.Col], Y: rowY[c.Row]}
		cw := colX[min(c.Col+c.ColSpan, colCount)] - colX[c.Col]
		ch := rowY[min(c.Row+c.RowSpan, len(rows))] - rowY[c.Row]
		if err := LayoutBlock(NewBlockContext(nil), c.Box, cw); err != nil {
			return err
		}
		c.Box.W = css.SomeDimen(cw)
		c.Box.H = css.SomeDimen(ch)
	}

	for ri, row := range rows {
		row.TopL = dimen.Point{X: left, Y: rowY[ri]}
		row.W = css.SomeDimen(colX[colCount] - left)
		row.H = css.SomeDimen(rowHeights[ri])
	}

	table.W = css.SomeDimen(colX[colCount] - left + table.Padding[frame.Left].Unwrap() + table.Padding[frame.Right].Unwrap())
	table.H = css.SomeDimen(rowY[len(rows)] - top + table.Padding[frame.Top].Unwrap() + table.Padding[frame.Bottom].Unwrap())

	if table.Flags.Has(frame.FlagBorderCollapsed) {
		resolveCollapsedBorders(table, rows, cells)
	}
	return nil
}

func tableLayoutIsFixed(table *frame.BoxModel) bool {
	return table.Style != nil && table.Style.Width.IsAbsolute()
}

// gatherGrid walks the table's section/row/cell box-tree structure
// (materialized by boxtree.wrapTableStructure during box construction)
// into a flat row list, a flat cell list with grid coordinates, and the
// total column count.
func gatherGrid(table *frame.BoxModel) (rows []*frame.BoxModel, cells []*tableCell, colCount int) {
	occupied := map[[2]int]bool{}
	rowIdx := 0
	for _, sn := range table.Children() {
		section := boxtree.BoxOf(sn)
		if section == nil || section.Kind != frame.KindTableSection {
			continue
		}
		for _, rn := range section.Children() {
			row := boxtree.BoxOf(rn)
			if row == nil || row.Kind != frame.KindTableRow {
				continue
			}
			rows = append(rows, row)
			col := 0
			for _, cn := range row.Children() {
				cell := boxtree.BoxOf(cn)
				if cell == nil || cell.Kind != frame.KindTableCell {
					continue
				}
				for occupied[[2]int{rowIdx, col}] {
					col++
				}
				rs, cs := spanOf(cell)
				for r := 0; r < rs; r++ {
					for c := 0; c < cs; c++ {
						occupied[[2]int{rowIdx + r, col + c}] = true
					}
				}
				cells = append(cells, &tableCell{Box: cell, Row: rowIdx, Col: col, RowSpan: rs, ColSpan: cs})
				if col+cs > colCount {
					colCount = col + cs
				}
				col += cs
			}
			rowIdx++
		}
	}
	return rows, cells, colCount
}

func spanOf(cell *frame.BoxModel) (rowSpan, colSpan int) {
	rowSpan, colSpan = 1, 1
	if cell.Elem != nil {
		if v, ok := cell.Elem.Attribute("rowspan"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 1 {
				rowSpan = n
			}
		}
		if v, ok := cell.Elem.Attribute("colspan"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 1 {
				colSpan = n
			}
		}
	}
	return
}

// resolveFixedColumns implements the §4.7 fixed algorithm: widths come
// from the cell in row 0 spanning exactly that column, else auto, then
// the fixed/percent/auto three-pass distribution against the available
// width.
func resolveFixedColumns(cols []*tableColumn, cells []*tableCell, available dimen.Dimen) {
	for _, c := range cells {
		if c.Row != 0 || c.ColSpan != 1 {
			continue
		}
		if c.Box.Style == nil {
			continue
		}
		w := c.Box.Style.Width
		if w.IsAbsolute() {
			cols[c.Col].Fixed = w
		} else if w.IsPercent() {
			cols[c.Col].Percent = w.Percent()
			cols[c.Col].HasPercent = true
		}
	}
	distributeWidths(cols, available)
}

// resolveAutoColumns implements the §4.7 auto algorithm: per-column
// min/max/fixed/percent bounds from non-spanning cells, spanning cells
// distribute their own min/max into the columns they cover via the
// four-guess ladder, then final widths are resolved against available
// width using the same ladder.
func resolveAutoColumns(cols []*tableColumn, cells []*tableCell, available dimen.Dimen) {
	sorted := append([]*tableCell(nil), cells...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ColSpan < sorted[j].ColSpan })

	for _, c := range sorted {
		min, max := intrinsicBounds(c.Box)
		if c.ColSpan == 1 {
			col := cols[c.Col]
			if min > col.Min {
				col.Min = min
			}
			if max > col.Max {
				col.Max = max
			}
			if c.Box.Style != nil {
				if c.Box.Style.Width.IsAbsolute() {
					col.Fixed = c.Box.Style.Width
				} else if c.Box.Style.Width.IsPercent() {
					col.Percent = c.Box.Style.Width.Percent()
					col.HasPercent = true
				}
			}
			continue
		}
		distributeSpanToColumns(cols, c.Col, c.ColSpan, min, max)
	}

	var percentSum float64
	for _, col := range cols {
		if col.HasPercent {
			if percentSum+col.Percent > 100 {
				col.Percent = 100 - percentSum
			}
			percentSum += col.Percent
		}
	}
	distributeWidths(cols, available)
}

// intrinsicBounds estimates a cell's min/max content width from its
// box style — a simplified stand-in for a full intrinsic-sizing pass
// (shrink-to-fit text measurement is out of scope here; min is the
// resolved min-width or zero, raised to half the specified width when
// that width exceeds it; max is the specified width, else max-width,
// else twice min, and never less than min).
func intrinsicBounds(box *frame.BoxModel) (min, max dimen.Dimen) {
	if box.Style == nil {
		return 0, 0
	}
	if box.Style.MinWidth.IsAbsolute() {
		min = box.Style.MinWidth.Unwrap()
	}
	if box.Style.Width.IsAbsolute() {
		max = box.Style.Width.Unwrap()
		if max > min {
			min = max / 2
		}
	} else if box.Style.MaxWidth.IsAbsolute() {
		max = box.Style.MaxWidth.Unwrap()
	} else {
		max = min * 2
	}
	if max < min {
		max = min
	}
	return
}

// distributeSpanToColumns spreads a spanning cell's min/max across the
// columns it covers, using the column's current total as the
// interpolation weight for the four-guess ladder (min, percent,
// specified, max), same as the auto algorithm's final resolution.
func distributeSpanToColumns(cols []*tableColumn, startCol, span int, min, max dimen.Dimen) {
	var curTotal dimen.Dimen
	for i := startCol; i < startCol+span && i < len(cols); i++ {
		curTotal += ladderGuess(cols[i])
	}
	if curTotal == 0 {
		curTotal = 1
	}
	for i := startCol; i < startCol+span && i < len(cols); i++ {
		share := ladderGuess(cols[i])
		colMin := dimen.Dimen(int64(min) * int64(share) / int64(curTotal))
		colMax := dimen.Dimen(int64(max) * int64(share) / int64(curTotal))
		if colMin > cols[i].Min {
			cols[i].Min = colMin
		}
		if colMax > cols[i].Max {
			cols[i].Max = colMax
		}
	}
}

// ladderGuess picks the first defined value of the four-guess ladder
// (min, percent [the percentage number taken as a raw Dimen], fixed,
// max) — the common sizing heuristic both table algorithms consult.
func ladderGuess(col *tableColumn) dimen.Dimen {
	if col.Min > 0 {
		return col.Min
	}
	if col.HasPercent {
		return dimen.Dimen(col.Percent)
	}
	if col.Fixed.IsAbsolute() {
		return col.Fixed.Unwrap()
	}
	if col.Max > 0 {
		return col.Max
	}
	return 1
}

// distributeWidths resolves final column widths from the accumulated
// fixed/percent/min/max bounds against the available width, with
// documented tie-breaks: fixed widths are honored first, each percent
// column takes its percentage of the full available width, the
// remaining columns share what fixed and percent columns leave
// (percent capped at that remainder) equally on top of their min,
// and if the sum still exceeds available width every column is scaled
// down proportionally; if it falls short, auto columns absorb the
// extra equally (§4.7).
func distributeWidths(cols []*tableColumn, available dimen.Dimen) {
	var fixedSum, percentSum, autoMinSum dimen.Dimen
	var percentTotal float64
	var autoCount int
	for _, c := range cols {
		switch {
		case c.Fixed.IsAbsolute():
			fixedSum += c.Fixed.Unwrap()
		case c.HasPercent:
			percentTotal += c.Percent
		default:
			autoMinSum += c.Min
			autoCount++
		}
	}
	remaining := available - fixedSum
	if remaining < 0 {
		remaining = 0
	}
	percentSum = dimen.Dimen(float64(available) * percentTotal / 100)
	if percentSum > remaining {
		percentSum = remaining
	}
	autoAvailable := remaining - percentSum
	extra := autoAvailable - autoMinSum

	for _, c := range cols {
		switch {
		case c.Fixed.IsAbsolute():
			c.Width = c.Fixed.Unwrap()
		case c.HasPercent:
			c.Width = dimen.Dimen(float64(available) * c.Percent / 100)
		default:
			c.Width = c.Min
			if extra > 0 && autoCount > 0 {
				c.Width += extra / dimen.Dimen(autoCount)
			}
		}
	}

	var total dimen.Dimen
	for _, c := range cols {
		total += c.Width
	}
	if total > available && total > 0 {
		for _, c := range cols {
			c.Width = dimen.Dimen(int64(c.Width) * int64(available) / int64(total))
		}
	}
}

// resolveRowHeights implements §4.7's row-height rule: each row's
// height is the max of its non-spanning cells' heightForRowSizing;
// spanning cells distribute any unsatisfied min-height onto their last
// covered row.
func resolveRowHeights(cells []*tableCell, rowCount int) []dimen.Dimen {
	heights := make([]dimen.Dimen, rowCount)
	for _, c := range cells {
		if c.RowSpan != 1 {
			continue
		}
		h := heightForRowSizing(c.Box)
		if c.Row < rowCount && h > heights[c.Row] {
			heights[c.Row] = h
		}
	}
	for _, c := range cells {
		if c.RowSpan == 1 {
			continue
		}
		var covered dimen.Dimen
		last := c.Row
		for r := c.Row; r < c.Row+c.RowSpan && r < rowCount; r++ {
			covered += heights[r]
			last = r
		}
		need := heightForRowSizing(c.Box)
		if need > covered && last < rowCount {
			heights[last] += need - covered
		}
	}
	return heights
}

// heightForRowSizing returns the larger of the cell's resolved
// border-box height (if already laid out) and its specified CSS
// height (§4.7 "border-box height or CSS height, whichever is larger").
func heightForRowSizing(cell *frame.BoxModel) dimen.Dimen {
	var h dimen.Dimen
	if cell.Style != nil && cell.Style.Height.IsAbsolute() {
		h = cell.Style.Height.Unwrap()
	}
	if th := cell.TotalHeight(); th.IsAbsolute() && th.Unwrap() > h {
		h = th.Unwrap()
	}
	if h == 0 {
		h = 20 * dimen.PT // minimum line-box worth of content when unmeasured
	}
	return h
}

// borderWinner is one candidate edge in the collapsed-border
// resolution (§4.7): hidden beats everything, none loses to anything,
// then wider wins, then style rank, then nearer source wins.
type borderWinner struct {
	Border style.Border
	Source int // cell=0, row=1, rowgroup=2, column=3, columngroup=4, table=5 — lower wins ties
}

var styleRank = map[style.BorderStyle]int{
	style.BorderHidden: 100,
	style.BorderDouble: 8, style.BorderSolid: 7, style.BorderDashed: 6,
	style.BorderDotted: 5, style.BorderRidge: 4, style.BorderOutset: 3,
	style.BorderGroove: 2, style.BorderInset: 1, style.BorderNone: -1,
}

// resolveCollapsedBorders computes the winning edge for every cell edge
// by the §4.7 ordering: a cell's own border competes against its row's
// and the table's border on the same side, the winner decided by
// hidden-wins/none-loses, then larger width, then style rank, then
// nearer source (cell beats row beats table). The winning width
// replaces the cell's resolved border width on that side so painting
// draws the correct edge.
func resolveCollapsedBorders(table *frame.BoxModel, rows []*frame.BoxModel, cells []*tableCell) {
	for _, c := range cells {
		row := rows[c.Row]
		for side := 0; side < 4; side++ {
			s := frame.Side(side)
			candidates := []borderWinner{{Border: c.Box.Style.Border[s], Source: 0}}
			if row.Style != nil {
				candidates = append(candidates, borderWinner{Border: row.Style.Border[s], Source: 1})
			}
			if table.Style != nil {
				candidates = append(candidates, borderWinner{Border: table.Style.Border[s], Source: 5})
			}
			winner := pickWinningBorder(candidates)
			c.Box.Style.Border[s] = winner.Border
			c.Box.BorderWidth[s] = winner.Border.Width
		}
	}
}

// pickWinningBorder applies the §4.7 edge ordering to a set of
// candidate borders for the same physical edge.
// pickWinningBorder finds the collapsed-border winner among candidates
// by sorting them with the borderBeats ordering and taking the front —
// the same gods container the teacher's khipu/linebreak/knuthplass.go
// reaches for an ordered collection (there, a hashset for seen nodes;
// here, an arraylist.List sorted with a borderBeats comparator).
func pickWinningBorder(candidates []borderWinner) borderWinner {
	list := arraylist.New()
	for _, c := range candidates {
		list.Add(c)
	}
	list.Sort(func(a, b interface{}) int {
		ca, cb := a.(borderWinner), b.(borderWinner)
		switch {
		case borderBeats(ca, cb):
			return -1
		case borderBeats(cb, ca):
			return 1
		default:
			return 0
		}
	})
	winner, _ := list.Get(0)
	return winner.(borderWinner)
}

// borderBeats reports whether a beats b under the collapsed-border
// ordering (hidden wins outright, none always loses, then width, then
// style rank, then nearer source — lower Source is nearer).
func borderBeats(a, b borderWinner) bool {
	if a.Border.Style == style.BorderHidden {
		return true
	}
	if b.Border.Style == style.BorderHidden {
		return false
	}
	if a.Border.Style == style.BorderNone {
		return false
	}
	if b.Border.Style == style.BorderNone {
		return true
	}
	aw, bw := resolveBorderWidth(a.Border), resolveBorderWidth(b.Border)
	if aw != bw {
		return aw > bw
	}
	ar, br := styleRank[a.Border.Style], styleRank[b.Border.Style]
	if ar != br {
		return ar > br
	}
	return a.Source < b.Source
}

func resolveBorderWidth(b style.Border) dimen.Dimen {
	if b.Width.IsAbsolute() {
		return b.Width.Unwrap()
	}
	return 0
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
