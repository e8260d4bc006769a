package boxtree

import (
	"github.com/npillmayer/quire/engine/dom"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/tree"

	"github.com/npillmayer/quire/engine/frame"
)

// Build walks doc's node tree and produces the box tree, resolving
// styles through cascade as it goes (§4.2 "Box construction"). The
// returned box is the BoxView root (kind KindBoxView); its CSSBox()
// embeds the full page-less flow tree. Page/fragment boxes are added
// later by the layout package, not here.
func Build(doc *dom.Document, cascade style.Cascade) *frame.BoxModel {
	arena := tree.NewArena()
	root := New(arena, frame.KindBoxView, nil, nil)
	if doc == nil || doc.Root == nil {
		return root
	}
	for _, child := range doc.Root.ChildNodes() {
		if b := buildElement(arena, child, nil, cascade); b != nil {
			root.AddChild(b.TreeNode())
		}
	}
	normalizeChildren(root)
	return root
}

func kindForDisplay(d style.Display) frame.BoxKind {
	switch d {
	case style.DisplayBlock, style.DisplayInlineBlock:
		return frame.KindBlockFlow
	case style.DisplayInline:
		return frame.KindBlockFlow // inline-level principal box, still a flow box
	case style.DisplayFlex, style.DisplayInlineFlex:
		return frame.KindFlexible
	case style.DisplayTable, style.DisplayInlineTable:
		return frame.KindTable
	case style.DisplayTableRowGroup, style.DisplayTableHeaderGroup, style.DisplayTableFooterGroup:
		return frame.KindTableSection
	case style.DisplayTableRow:
		return frame.KindTableRow
	case style.DisplayTableCell:
		return frame.KindTableCell
	case style.DisplayTableColumnGroup, style.DisplayTableColumn:
		return frame.KindTableColumn
	case style.DisplayTableCaption:
		return frame.KindTableCaption
	case style.DisplayListItem:
		return frame.KindListItem
	}
	return frame.KindBlockFlow
}

// buildElement resolves elem's style and, for element nodes, its
// subtree; returns nil for `display: none` (§4.2).
func buildElement(arena *tree.Arena, elem *dom.Node, parentStyle *style.BoxStyle, cascade style.Cascade) *frame.BoxModel {
	if elem.Type() == dom.TextNodeType {
		return buildText(arena, elem, parentStyle)
	}
	s := cascade.StyleFor(elem, parentStyle)
	if s.IsNone() {
		return nil
	}
	kind := kindForDisplay(s.Display)
	box := New(arena, kind, elem, s)
	box.BorderBoxSizing = false
	if s.Display == style.DisplayInline {
		box.Flags |= frame.FlagInline
	}
	if kind == frame.KindTableCell && s.BorderCollapse {
		box.Flags |= frame.FlagBorderCollapsed
	}
	if s.Float != style.FloatNone {
		box.Flags |= frame.FlagFloating
	}
	if s.Position != style.PositionStatic {
		box.Flags |= frame.FlagPositioned
	}
	if frame.NeedsLayer(s, s.ColumnCount > 0 || !s.ColumnWidth.IsNone()) {
		box.Flags |= frame.FlagHasLayer
		box.Layer = &frame.BoxLayer{Owner: box}
	}
	if s.Transform != "" {
		box.Flags |= frame.FlagHasTransform
	}
	elem.SetBox(box)

	var prevWasBlock = true // treat "start of parent" as block, so leading whitespace is elided
	for _, childNode := range elem.ChildNodes() {
		if childNode.Type() == dom.TextNodeType && childNode.IsWhitespaceOnly() {
			if prevWasBlock || blockLikeContext(s.Display) {
				continue // elided (§4.2)
			}
		}
		child := buildElement(arena, childNode, s, cascade)
		if child == nil {
			continue
		}
		box.AddChild(child.TreeNode())
		prevWasBlock = !child.Flags.Has(frame.FlagInline) && child.Kind != frame.KindText
	}

	if kind == frame.KindTable {
		wrapTableStructure(arena, box)
	} else {
		normalizeChildren(box)
	}
	return box
}

func blockLikeContext(d style.Display) bool {
	switch d {
	case style.DisplayTableRowGroup, style.DisplayTableHeaderGroup, style.DisplayTableFooterGroup,
		style.DisplayTableRow, style.DisplayTableColumnGroup, style.DisplayFlex, style.DisplayInlineFlex:
		return true
	}
	return false
}

func buildText(arena *tree.Arena, textNode *dom.Node, parentStyle *style.BoxStyle) *frame.BoxModel {
	box := New(arena, frame.KindText, textNode, parentStyle)
	box.Flags |= frame.FlagInline
	textNode.SetBox(box)
	return box
}

// normalizeChildren enforces "children are either all inline-level or
// all block-level" (§3 box-hierarchy invariant): when both kinds are
// present, each run of inline-level children is wrapped in an anonymous
// block-flow box (§4.2).
func normalizeChildren(box *frame.BoxModel) {
	children := box.Children()
	if len(children) == 0 {
		return
	}
	hasBlock, hasInline := false, false
	for _, c := range children {
		cb := BoxOf(c)
		if cb.Flags.Has(frame.FlagInline) || cb.Kind == frame.KindText {
			hasInline = true
		} else {
			hasBlock = true
		}
	}
	if !hasBlock || !hasInline {
		if !hasBlock {
			box.Flags |= frame.FlagChildrenInline
		}
		return
	}
	// Mixed: wrap maximal inline runs in an anonymous block-flow box,
	// leave block-level children in place.
	arena := box.Arena()
	var run []*tree.Node
	flushRun := func() {
		if len(run) == 0 {
			return
		}
		anon := New(arena, frame.KindBlockFlow, nil, box.Style)
		anon.Flags |= frame.FlagChildrenInline
		for _, r := range run {
			anon.AddChild(r)
		}
		box.AddChild(anon.TreeNode())
		run = nil
	}
	// Detach and re-add in original order, routing inline runs through
	// anonymous wrappers.
	for _, c := range children {
		c.Detach()
	}
	for _, c := range children {
		cb := BoxOf(c)
		if cb.Flags.Has(frame.FlagInline) || cb.Kind == frame.KindText {
			run = append(run, c)
		} else {
			flushRun()
			box.AddChild(c)
		}
	}
	flushRun()
}

// wrapTableStructure materializes missing row-group/row/cell ancestors
// for a table box: a non-section, non-caption, non-column-group child
// of a table is wrapped in an anonymous table-row-group, whose own
// non-row children are wrapped in an anonymous row, whose own non-cell
// children are wrapped in an anonymous cell (§4.2 "Tables materialise
// missing ancestors with anonymous boxes (row group ⊇ row ⊇ cell, as
// needed)").
func wrapTableStructure(arena *tree.Arena, table *frame.BoxModel) {
	children := table.Children()
	for _, c := range children {
		c.Detach()
	}
	var pendingSection *frame.BoxModel
	flushSection := func() {
		if pendingSection != nil {
			wrapSectionRows(arena, pendingSection)
			table.AddChild(pendingSection.TreeNode())
			pendingSection = nil
		}
	}
	for _, c := range children {
		cb := BoxOf(c)
		switch cb.Kind {
		case frame.KindTableCaption, frame.KindTableColumn:
			flushSection()
			table.AddChild(c)
		case frame.KindTableSection:
			flushSection()
			wrapSectionRows(arena, cb)
			table.AddChild(c)
		default:
			if pendingSection == nil {
				pendingSection = New(arena, frame.KindTableSection, nil, table.Style)
			}
			pendingSection.AddChild(c)
		}
	}
	flushSection()
}

func wrapSectionRows(arena *tree.Arena, section *frame.BoxModel) {
	children := section.Children()
	for _, c := range children {
		c.Detach()
	}
	var pendingRow *frame.BoxModel
	flushRow := func() {
		if pendingRow != nil {
			wrapRowCells(arena, pendingRow)
			section.AddChild(pendingRow.TreeNode())
			pendingRow = nil
		}
	}
	for _, c := range children {
		cb := BoxOf(c)
		if cb.Kind == frame.KindTableRow {
			flushRow()
			wrapRowCells(arena, cb)
			section.AddChild(c)
			continue
		}
		if pendingRow == nil {
			pendingRow = New(arena, frame.KindTableRow, nil, section.Style)
		}
		pendingRow.AddChild(c)
	}
	flushRow()
}

func wrapRowCells(arena *tree.Arena, row *frame.BoxModel) {
	children := row.Children()
	for _, c := range children {
		c.Detach()
	}
	var pendingCell *frame.BoxModel
	flushCell := func() {
		if pendingCell != nil {
			row.AddChild(pendingCell.TreeNode())
			pendingCell = nil
		}
	}
	for _, c := range children {
		cb := BoxOf(c)
		if cb.Kind == frame.KindTableCell {
			flushCell()
			row.AddChild(c)
			continue
		}
		if pendingCell == nil {
			pendingCell = New(arena, frame.KindTableCell, nil, row.Style)
		}
		pendingCell.AddChild(c)
	}
	flushCell()
}
