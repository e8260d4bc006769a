package layout

import (
	"sort"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/frame"
	"github.com/npillmayer/quire/engine/frame/boxtree"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
)

// FlexItem is one child of a flex container, carrying the subset of
// resolved style the flex algorithm consumes (§4.6).
type FlexItem struct {
	Box          *frame.BoxModel
	Order        int
	Grow, Shrink float64
	Basis        dimen.Dimen
	BasisIsAuto  bool
	Main, Cross  dimen.Dimen // resolved target sizes, set during resolution
	frozen       bool
	AlignSelf    style.VerticalAlign
	MarginAutoLo bool // main-axis leading margin is auto
	MarginAutoHi bool // main-axis trailing margin is auto
}

// LayoutFlex implements spec §4.6: gather FlexItems, resolve flex
// bases, run the grow/shrink resolution loop, place items along the
// main axis, measure and place the (single, since flex-wrap is a
// Non-goal here) flex line along the cross axis.
func LayoutFlex(ctx *BlockContext, box *frame.BoxModel, enclosingWidth dimen.Dimen) error {
	if err := resolveWidth(box, enclosingWidth); err != nil {
		return err
	}
	mainSize := box.ContentWidth()
	if mainSize.IsNone() {
		mainSize = css.SomeDimen(enclosingWidth)
	}

	items := collectFlexItems(box, mainSize.Unwrap())
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	resolveFlexBases(items, mainSize.Unwrap())
	distributeFreeSpace(items, mainSize.Unwrap())
	placeMainAxis(box, items, mainSize.Unwrap())

	crossSize := measureCrossSize(items)
	placeCrossAxis(items, crossSize)

	if box.H.IsNone() || box.H.Equals(css.Auto) {
		box.H = css.SomeDimen(crossSize)
	}
	return nil
}

func collectFlexItems(box *frame.BoxModel, mainSize dimen.Dimen) []*FlexItem {
	var items []*FlexItem
	for _, cn := range box.Children() {
		child := boxtree.BoxOf(cn)
		if child == nil || child.IsFloating() {
			continue
		}
		it := &FlexItem{Box: child, Grow: 0, Shrink: 1}
		if child.Style != nil {
			it.AlignSelf = child.Style.VerticalAlign
		}
		it.BasisIsAuto = true
		items = append(items, it)
	}
	return items
}

// resolveFlexBases picks each item's flex-basis, falling back to the
// main-axis size, then clamps to min/max (§4.6 step 1).
func resolveFlexBases(items []*FlexItem, mainSize dimen.Dimen) {
	for _, it := range items {
		basis := mainSize
		if it.Box.Style != nil && it.Box.Style.Width.IsAbsolute() {
			basis = it.Box.Style.Width.Unwrap()
		}
		if it.Box.Style != nil {
			if it.Box.Style.MinWidth.IsAbsolute() && basis < it.Box.Style.MinWidth.Unwrap() {
				basis = it.Box.Style.MinWidth.Unwrap()
			}
			if it.Box.Style.MaxWidth.IsAbsolute() && basis > it.Box.Style.MaxWidth.Unwrap() {
				basis = it.Box.Style.MaxWidth.Unwrap()
			}
		}
		it.Basis = basis
		it.Main = basis
	}
}

// distributeFreeSpace runs the §4.6 step-2 resolution loop: compute
// the violation sign, distribute free space proportional to grow or
// shrink factors, freeze items whose clamp direction matches the
// violation, and repeat until every item is frozen or stable.
func distributeFreeSpace(items []*FlexItem, containerMain dimen.Dimen) {
	if len(items) == 0 {
		return
	}
	var sumHypothetical dimen.Dimen
	for _, it := range items {
		sumHypothetical += it.Basis
	}
	grow := sumHypothetical < containerMain
	for pass := 0; pass < len(items)+1; pass++ {
		free := containerMain
		var totalFactor float64
		anyUnfrozen := false
		for _, it := range items {
			if it.frozen {
				free -= it.Main
				continue
			}
			anyUnfrozen = true
			free -= it.Basis
			if grow {
				totalFactor += it.Grow
			} else {
				totalFactor += it.Shrink
			}
		}
		if !anyUnfrozen {
			break
		}
		changed := false
		for _, it := range items {
			if it.frozen {
				continue
			}
			target := it.Basis
			if totalFactor > 0 {
				var factor float64
				if grow {
					factor = it.Grow
				} else {
					factor = it.Shrink
				}
				target = it.Basis + dimen.Dimen(float64(free)*factor/totalFactor)
			}
			clamped := target
			if it.Box.Style != nil {
				if it.Box.Style.MinWidth.IsAbsolute() && clamped < it.Box.Style.MinWidth.Unwrap() {
					clamped = it.Box.Style.MinWidth.Unwrap()
				}
				if it.Box.Style.MaxWidth.IsAbsolute() && clamped > it.Box.Style.MaxWidth.Unwrap() {
					clamped = it.Box.Style.MaxWidth.Unwrap()
				}
			}
			if clamped != target && ((grow && clamped < target) || (!grow && clamped > target)) {
				it.frozen = true
				changed = true
			}
			it.Main = clamped
		}
		if !changed {
			break
		}
	}
}

// placeMainAxis positions items left-to-right from the container's
// padding and border edge (justify-content: flex-start, the only
// keyword this layout resolves without an explicit
// BoxStyle.JustifyContent field). Auto main-axis margins are not
// consulted and free space is not distributed.
func placeMainAxis(box *frame.BoxModel, items []*FlexItem, mainSize dimen.Dimen) {
	x := box.Padding[frame.Left].Unwrap() + box.BorderWidth[frame.Left].Unwrap()
	for _, it := range items {
		it.Box.TopL.X = x
		it.Box.W = css.SomeDimen(it.Main)
		x += it.Main
	}
}

func measureCrossSize(items []*FlexItem) dimen.Dimen {
	var max dimen.Dimen
	for _, it := range items {
		LayoutBlock(NewBlockContext(nil), it.Box, it.Main)
		h := boxHeight(it.Box)
		if h > max {
			max = h
		}
		it.Cross = h
	}
	return max
}

// placeCrossAxis implements align-self from the item's VerticalAlign:
// middle centers the item in the line and bottom places it at the
// cross end; every other value, baseline included, places it at the
// cross start. Items are not stretched.
func placeCrossAxis(items []*FlexItem, crossSize dimen.Dimen) {
	for _, it := range items {
		y := it.Box.Padding[frame.Top].Unwrap()
		switch it.AlignSelf {
		case style.VAlignMiddle:
			y = (crossSize - it.Cross) / 2
		case style.VAlignBottom:
			y = crossSize - it.Cross
		case style.VAlignTop, style.VAlignBaseline:
			y = 0
		default:
			y = 0
		}
		it.Box.TopL.Y = y
	}
}
