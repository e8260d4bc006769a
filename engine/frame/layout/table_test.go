package layout

import (
	"testing"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/dom"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/quire/engine/tree"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func tableBox(arena *tree.Arena, kind frame.BoxKind, s *style.BoxStyle) *frame.BoxModel {
	if s == nil {
		s = &style.BoxStyle{}
	}
	return boxtree.New(arena, kind, nil, s)
}

func elemWithAttr(name, value string) *dom.Node {
	doc := dom.NewDocument("")
	e := doc.NewElement("", "td")
	e.SetAttribute(name, value)
	return e
}

func cellWithHeight(arena *tree.Arena, h dimen.Dimen) *frame.BoxModel {
	s := &style.BoxStyle{}
	s.Height = css.SomeDimen(h)
	return tableBox(arena, frame.KindTableCell, s)
}

func TestSpanOfDefaultsToOneWithoutAttributes(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	cell := tableBox(arena, frame.KindTableCell, nil)
	rs, cs := spanOf(cell)
	assert.Equal(t, 1, rs)
	assert.Equal(t, 1, cs)
}

func TestGatherGridFlattensRowsCellsAndColumnCount(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	table := tableBox(arena, frame.KindBlock, nil)
	section := tableBox(arena, frame.KindTableSection, nil)
	table.AddChild(section.TreeNode())
	for r := 0; r < 2; r++ {
		row := tableBox(arena, frame.KindTableRow, nil)
		section.AddChild(row.TreeNode())
		for c := 0; c < 3; c++ {
			cell := tableBox(arena, frame.KindTableCell, nil)
			row.AddChild(cell.TreeNode())
		}
	}
	rows, cells, colCount := gatherGrid(table)
	assert.Len(t, rows, 2)
	assert.Len(t, cells, 6)
	assert.Equal(t, 3, colCount)
	assert.Equal(t, 1, cells[3].Row)
	assert.Equal(t, 0, cells[3].Col)
}

func TestGatherGridSkipsOccupiedColumnsAfterColspan(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	table := tableBox(arena, frame.KindBlock, nil)
	section := tableBox(arena, frame.KindTableSection, nil)
	table.AddChild(section.TreeNode())
	row := tableBox(arena, frame.KindTableRow, nil)
	section.AddChild(row.TreeNode())

	spanning := tableBox(arena, frame.KindTableCell, nil)
	spanning.Elem = elemWithAttr("colspan", "2")
	row.AddChild(spanning.TreeNode())
	next := tableBox(arena, frame.KindTableCell, nil)
	row.AddChild(next.TreeNode())

	_, cells, colCount := gatherGrid(table)
	assert.Equal(t, 3, colCount)
	assert.Equal(t, 0, cells[0].Col)
	assert.Equal(t, 2, cells[1].Col, "second cell starts after the two columns the span occupies")
}

func TestDistributeWidthsHonorsFixedThenSplitsAutoEqually(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cols := []*tableColumn{
		{Fixed: css.SomeDimen(50 * dimen.PT)},
		{Min: 20 * dimen.PT},
		{Min: 20 * dimen.PT},
	}
	distributeWidths(cols, 150*dimen.PT)
	assert.Equal(t, 50*dimen.PT, cols[0].Width)
	// remaining 100pt, autoMinSum 40pt, extra 60pt split 2 ways -> +30 each
	assert.Equal(t, 50*dimen.PT, cols[1].Width)
	assert.Equal(t, 50*dimen.PT, cols[2].Width)
}

func TestDistributeWidthsScalesDownWhenOverflowing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cols := []*tableColumn{
		{Fixed: css.SomeDimen(80 * dimen.PT)},
		{Fixed: css.SomeDimen(80 * dimen.PT)},
	}
	distributeWidths(cols, 100*dimen.PT)
	// fixedSum 160 > available 100: remaining clamps to 0, both scaled by 100/160
	assert.Equal(t, 50*dimen.PT, cols[0].Width)
	assert.Equal(t, 50*dimen.PT, cols[1].Width)
}

func TestDistributeWidthsSplitsPercentAgainstAvailable(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cols := []*tableColumn{
		{Percent: 50, HasPercent: true},
		{Min: 10 * dimen.PT},
	}
	distributeWidths(cols, 200*dimen.PT)
	assert.Equal(t, 100*dimen.PT, cols[0].Width)
	assert.Equal(t, 100*dimen.PT, cols[1].Width, "auto column absorbs all 100pt left after the percent column")
}

func TestLadderGuessPrefersMinThenPercentThenFixedThenMax(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.Equal(t, 5*dimen.PT, ladderGuess(&tableColumn{Min: 5 * dimen.PT, Max: 99 * dimen.PT}))
	assert.Equal(t, dimen.Dimen(30), ladderGuess(&tableColumn{Percent: 30, HasPercent: true}))
	assert.Equal(t, 7*dimen.PT, ladderGuess(&tableColumn{Fixed: css.SomeDimen(7 * dimen.PT)}))
	assert.Equal(t, 9*dimen.PT, ladderGuess(&tableColumn{Max: 9 * dimen.PT}))
	assert.Equal(t, dimen.Dimen(1), ladderGuess(&tableColumn{}))
}

func TestIntrinsicBoundsDerivesMinFromHalfOfSpecifiedWidth(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	s := &style.BoxStyle{}
	s.Width = css.SomeDimen(40 * dimen.PT)
	box := tableBox(arena, frame.KindTableCell, s)
	min, max := intrinsicBounds(box)
	assert.Equal(t, 20*dimen.PT, min)
	assert.Equal(t, 40*dimen.PT, max)
}

func TestIntrinsicBoundsZeroWithoutStyle(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	box := tableBox(arena, frame.KindTableCell, nil)
	box.Style = nil
	min, max := intrinsicBounds(box)
	assert.Equal(t, dimen.Dimen(0), min)
	assert.Equal(t, dimen.Dimen(0), max)
}

func TestResolveRowHeightsTakesMaxOfNonSpanningCells(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	short := cellWithHeight(arena, 10*dimen.PT)
	tall := cellWithHeight(arena, 40*dimen.PT)
	heights := resolveRowHeights([]*tableCell{
		{Box: short, Row: 0, RowSpan: 1},
		{Box: tall, Row: 0, RowSpan: 1},
	}, 1)
	assert.Equal(t, 40*dimen.PT, heights[0])
}

func TestResolveRowHeightsSpreadsSpanningShortfallOntoLastRow(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	r0 := cellWithHeight(arena, 10*dimen.PT)
	r1 := cellWithHeight(arena, 10*dimen.PT)
	spanning := cellWithHeight(arena, 50*dimen.PT)
	heights := resolveRowHeights([]*tableCell{
		{Box: r0, Row: 0, RowSpan: 1},
		{Box: r1, Row: 1, RowSpan: 1},
		{Box: spanning, Row: 0, RowSpan: 2},
	}, 2)
	assert.Equal(t, 10*dimen.PT, heights[0])
	assert.Equal(t, 40*dimen.PT, heights[1], "covered 20pt short of the spanning cell's 50pt need, added to the last covered row")
}

func TestHeightForRowSizingFallsBackToMinimumLineHeight(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	arena := tree.NewArena()
	box := tableBox(arena, frame.KindTableCell, nil)
	assert.Equal(t, 20*dimen.PT, heightForRowSizing(box))
}

func TestPickWinningBorderHiddenBeatsEverything(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	hidden := borderWinner{Border: style.Border{Style: style.BorderHidden}, Source: 5}
	solid := borderWinner{Border: style.Border{Style: style.BorderSolid, Width: css.SomeDimen(10 * dimen.PT)}, Source: 0}
	assert.Equal(t, hidden, pickWinningBorder([]borderWinner{solid, hidden}))
}

func TestPickWinningBorderWiderWinsOverNearerSource(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	thin := borderWinner{Border: style.Border{Style: style.BorderSolid, Width: css.SomeDimen(1 * dimen.PT)}, Source: 0}
	thick := borderWinner{Border: style.Border{Style: style.BorderSolid, Width: css.SomeDimen(5 * dimen.PT)}, Source: 5}
	assert.Equal(t, thick, pickWinningBorder([]borderWinner{thin, thick}))
}

func TestPickWinningBorderNearerSourceWinsTies(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	row := borderWinner{Border: style.Border{Style: style.BorderSolid, Width: css.SomeDimen(2 * dimen.PT)}, Source: 1}
	table := borderWinner{Border: style.Border{Style: style.BorderSolid, Width: css.SomeDimen(2 * dimen.PT)}, Source: 5}
	assert.Equal(t, row, pickWinningBorder([]borderWinner{table, row}))
}

func TestPickWinningBorderNoneLosesToAnyOtherStyle(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	none := borderWinner{Border: style.Border{Style: style.BorderNone}, Source: 0}
	dotted := borderWinner{Border: style.Border{Style: style.BorderDotted}, Source: 5}
	assert.Equal(t, dotted, pickWinningBorder([]borderWinner{none, dotted}))
}
