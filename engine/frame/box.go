/*
Package frame implements the box-model geometry shared by every box
kind the layout engine produces (spec §3 "Box hierarchy (tagged
variants)", §4.2 "Box construction").

Where the source models this as a deep `is*()` virtual hierarchy, this
engine follows spec §9's redesign note and uses a single BoxKind tag
plus a bitmask of orthogonal flags, dispatched with option.Of-style
matching instead of type assertions up and down a class tree — the
same flattening the teacher's own core/option package was built for.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package frame

import (
	"errors"
	"fmt"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/core/option"
	"github.com/npillmayer/quire/engine/dom"
	"github.com/npillmayer/quire/engine/frame/khipu"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/quire/engine/tree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// BoxKind tags which concrete box shape a Box holds, replacing the
// source's `is*()` predicate hierarchy with a flat switch (§9).
type BoxKind int

const (
	KindText BoxKind = iota
	KindLineBreak
	KindWordBreak
	KindBlock
	KindBlockFlow
	KindFlexible
	KindTable
	KindTableSection
	KindTableRow
	KindTableCell
	KindTableColumn
	KindTableCaption
	KindMultiColumnFlow
	KindMultiColumnRow
	KindMultiColumnSpan
	KindListItem
	KindInsideListMarker
	KindOutsideListMarker
	KindPage
	KindPageMargin
	KindBoxView
	KindReplaced
	KindSVG
)

// Flags is a bitmask of the orthogonal capabilities spec §3 lists
// alongside the box kind.
type Flags uint32

const (
	FlagAnonymous Flags = 1 << iota
	FlagInline
	FlagFloating
	FlagPositioned
	FlagReplaced
	FlagOverflowHidden
	FlagColumnSpanner
	FlagBorderCollapsed
	FlagHasLayer
	FlagHasTransform
	FlagRowGroupHeader
	FlagRowGroupFooter
	FlagChildrenInline
)

// Has reports whether all of want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Side indexes the four box edges, clockwise from the top, matching
// the teacher's Top/Right/Bottom/Left convention in engine/frame/box.go.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Size is a pair of not-yet-necessarily-resolved CSS lengths.
type Size struct {
	W, H css.DimenT
}

// Rect is a box's position and size, in the containing block's
// coordinate space; which box (content or border) Size refers to
// depends on BorderBoxSizing.
type Rect struct {
	TopL dimen.Point
	Size
}

// Box is the root of the box hierarchy: tree links, resolved style,
// the dom node it was built from (nil for an anonymous box), a kind
// tag and capability flags (§3 "Box").
type Box struct {
	tree.Node
	Style *style.BoxStyle
	Kind  BoxKind
	Flags Flags
	Elem  *dom.Node
}

// IsInline reports whether this box participates in inline layout.
func (b *Box) IsInline() bool { return b.Flags.Has(FlagInline) }

// IsFloating reports whether this box is taken out of normal flow by
// `float`.
func (b *Box) IsFloating() bool { return b.Flags.Has(FlagFloating) }

// IsAnonymous reports whether this box was synthesized by box
// construction rather than mapped from a dom.Node.
func (b *Box) IsAnonymous() bool { return b.Flags.Has(FlagAnonymous) }

// TreeNode returns the box's own tree node, so boxtree.Container can be
// satisfied by every box kind uniformly.
func (box *BoxModel) TreeNode() *tree.Node { return &box.Node }

// CSSBox returns box itself — boxtree.Container is implemented directly
// on BoxModel rather than per concrete box kind.
func (box *BoxModel) CSSBox() *BoxModel { return box }

// DOMNode returns the dom node this box was built from; for an
// anonymous box it is the nearest ancestor's dom node, resolved by
// walking up the tree (there is no dom node of its own).
func (box *BoxModel) DOMNode() *dom.Node {
	if box.Elem != nil {
		return box.Elem
	}
	for p := box.Node.Parent(); p != nil; p = p.Parent() {
		if b, ok := p.Payload.(*BoxModel); ok && b.Elem != nil {
			return b.Elem
		}
	}
	return nil
}

// BoxKind returns the box's kind tag (named BoxKind rather than Kind to
// avoid colliding with the Kind field it reads).
func (box *BoxModel) BoxKind() BoxKind { return box.Kind }

// BoxModel adds margins, padding, borders (computed lazily from Style)
// and an optional stacking/clipping layer (§3 "BoxModel").
type BoxModel struct {
	Box
	Rect
	Min, Max        Size
	BorderBoxSizing bool
	Padding         [4]css.DimenT
	BorderWidth     [4]css.DimenT
	Margins         [4]css.DimenT
	Layer           *BoxLayer
	ColumnRows      []ColumnRowGeometry
	Lines           []khipu.LineBox
}

// BoxLayer is allocated for a box whose style demands its own stacking
// context or clip, per the invariant in spec §3: "Layer existence
// equals one of: positioned, relative-positioned, overflow-hidden,
// transformed, has-column-flow, non-unit opacity, non-normal
// blend-mode, or explicit z-index."
//
// BorderRect and OverflowRect are populated by engine/paint's layer
// tree pass (§4.11 "updatePosition"); they are zero until then.
type BoxLayer struct {
	Owner        *BoxModel
	Parent       *BoxLayer
	Children     []*BoxLayer
	ZIndex       int
	BorderRect   dimen.Rect
	OverflowRect dimen.Rect
}

// ColumnRowGeometry records one row's column geometry within a
// multi-column flow box, computed by engine/frame/layout and consumed
// by engine/paint so painting can clip and translate per column
// without re-deriving column layout (§4.11 "paint contents once per
// column, clipped to the column rectangle").
type ColumnRowGeometry struct {
	Top, Height      dimen.Dimen
	ColumnCount      int
	ColumnWidth, Gap dimen.Dimen
}

// NeedsLayer reports whether s's resolved style demands a BoxLayer, per
// the invariant spec §3 states for layer existence.
func NeedsLayer(s *style.BoxStyle, hasColumnFlow bool) bool {
	if s == nil {
		return false
	}
	return s.Position != style.PositionStatic ||
		s.OverflowX != style.OverflowVisible || s.OverflowY != style.OverflowVisible ||
		s.Transform != "" || hasColumnFlow ||
		s.Opacity != 1 || s.BlendMode != style.BlendNormal || s.HasZIndex
}

// DebugString renders a box's dimensions for diagnostics.
func (box *BoxModel) DebugString() string {
	s := fmt.Sprintf("box{\n   w=%v, h=%v  (border-box-sizing=%v)\n", box.W, box.H, box.BorderBoxSizing)
	s += fmt.Sprintf("   p.top=%v, p.right=%v, p.bottom=%v, p.left=%v\n",
		box.Padding[Top], box.Padding[Right], box.Padding[Bottom], box.Padding[Left])
	s += fmt.Sprintf("   b.top=%v, b.right=%v, b.bottom=%v, b.left=%v\n",
		box.BorderWidth[Top], box.BorderWidth[Right], box.BorderWidth[Bottom], box.BorderWidth[Left])
	s += fmt.Sprintf("   m.top=%v, m.right=%v, m.bottom=%v, m.left=%v\n}",
		box.Margins[Top], box.Margins[Right], box.Margins[Bottom], box.Margins[Left])
	return s
}

// ContentWidth returns the width of the content box, unset if box-sizing
// is border-box and the border-box width/decoration isn't fully fixed.
func (box *BoxModel) ContentWidth() css.DimenT {
	if !box.BorderBoxSizing {
		return box.W
	}
	if !box.HasFixedBorderBoxWidth(false) {
		return css.Dimen()
	}
	dec := innerDecorationWidth(box)
	if dec.IsNone() {
		return css.Dimen()
	}
	return css.SomeDimen(box.W.Unwrap() - dec.Unwrap())
}

// ContentHeight returns the height of the content box, mirroring
// ContentWidth.
func (box *BoxModel) ContentHeight() css.DimenT {
	if !box.BorderBoxSizing {
		return box.H
	}
	if !box.HasFixedBorderBoxHeight(false) {
		return css.Dimen()
	}
	dec := innerDecorationHeight(box)
	if dec.IsNone() {
		return css.Dimen()
	}
	return css.SomeDimen(box.H.Unwrap() - dec.Unwrap())
}

// HasFixedBorderBoxWidth reports whether W, left/right padding and
// border-width are all absolute (and, if includeMargins, left/right
// margins too).
func (box *BoxModel) HasFixedBorderBoxWidth(includeMargins bool) bool {
	if includeMargins && (!box.Margins[Left].IsAbsolute() || !box.Margins[Right].IsAbsolute()) {
		return false
	}
	return box.Padding[Left].IsAbsolute() && box.Padding[Right].IsAbsolute() &&
		box.BorderWidth[Left].IsAbsolute() && box.BorderWidth[Right].IsAbsolute() &&
		box.W.IsAbsolute()
}

// HasFixedBorderBoxHeight mirrors HasFixedBorderBoxWidth for the
// vertical axis.
func (box *BoxModel) HasFixedBorderBoxHeight(includeMargins bool) bool {
	if includeMargins && (!box.Margins[Top].IsAbsolute() || !box.Margins[Bottom].IsAbsolute()) {
		return false
	}
	return box.Padding[Top].IsAbsolute() && box.Padding[Bottom].IsAbsolute() &&
		box.BorderWidth[Top].IsAbsolute() && box.BorderWidth[Bottom].IsAbsolute() &&
		box.H.IsAbsolute()
}

// BorderBoxWidth returns the width including padding and border.
func (box *BoxModel) BorderBoxWidth() css.DimenT {
	if box.BorderBoxSizing {
		return box.W
	}
	if !box.HasFixedBorderBoxWidth(false) {
		return css.Dimen()
	}
	return css.SomeDimen(box.W.Unwrap() + innerDecorationWidth(box).Unwrap())
}

// BorderBoxHeight returns the height including padding and border.
func (box *BoxModel) BorderBoxHeight() css.DimenT {
	if box.BorderBoxSizing {
		return box.H
	}
	if !box.HasFixedBorderBoxHeight(false) {
		return css.Dimen()
	}
	return css.SomeDimen(box.H.Unwrap() + innerDecorationHeight(box).Unwrap())
}

// TotalWidth returns the width including margins, unset unless every
// contributing dimension is fixed.
func (box *BoxModel) TotalWidth() css.DimenT {
	if !box.HasFixedBorderBoxWidth(true) {
		return css.Dimen()
	}
	w := box.BorderBoxWidth().Unwrap() + box.Margins[Left].Unwrap() + box.Margins[Right].Unwrap()
	return css.SomeDimen(w)
}

// TotalHeight returns the height including margins.
func (box *BoxModel) TotalHeight() css.DimenT {
	if !box.HasFixedBorderBoxHeight(true) {
		return css.Dimen()
	}
	h := box.BorderBoxHeight().Unwrap() + box.Margins[Top].Unwrap() + box.Margins[Bottom].Unwrap()
	return css.SomeDimen(h)
}

// OuterBox returns the box's outer (margin-box) rectangle.
func (box *BoxModel) OuterBox() Rect {
	return Rect{TopL: box.TopL, Size: Size{W: box.TotalWidth(), H: box.TotalHeight()}}
}

// ResolvedBorderRect returns the box's border-box rectangle in its
// parent's coordinate space as a fully resolved dimen.Rect, used by
// engine/paint once layout has fixed every dimension. A box whose
// width or height never resolved (a layout defect, not a normal
// condition once §4.12's total-layout guarantee holds) reports a
// zero-size rectangle rather than panicking.
func (box *BoxModel) ResolvedBorderRect() dimen.Rect {
	w, h := box.BorderBoxWidth(), box.BorderBoxHeight()
	if !w.IsAbsolute() || !h.IsAbsolute() {
		return dimen.Rect{TopL: box.TopL}
	}
	return dimen.Rect{TopL: box.TopL, Width: w.Unwrap(), Height: h.Unwrap()}
}

func innerDecorationWidth(box *BoxModel) css.DimenT {
	if !box.Padding[Left].IsAbsolute() || !box.Padding[Right].IsAbsolute() ||
		!box.BorderWidth[Left].IsAbsolute() || !box.BorderWidth[Right].IsAbsolute() {
		return css.Dimen()
	}
	w := box.Padding[Left].Unwrap() + box.Padding[Right].Unwrap() +
		box.BorderWidth[Left].Unwrap() + box.BorderWidth[Right].Unwrap()
	return css.SomeDimen(w)
}

func innerDecorationHeight(box *BoxModel) css.DimenT {
	if !box.Padding[Top].IsAbsolute() || !box.Padding[Bottom].IsAbsolute() ||
		!box.BorderWidth[Top].IsAbsolute() || !box.BorderWidth[Bottom].IsAbsolute() {
		return css.Dimen()
	}
	h := box.Padding[Top].Unwrap() + box.Padding[Bottom].Unwrap() +
		box.BorderWidth[Top].Unwrap() + box.BorderWidth[Bottom].Unwrap()
	return css.SomeDimen(h)
}

// FixPercentages resolves every percent padding/border/margin against
// enclosingWidth (CSS §10.3: all four box-model percentages, including
// vertical ones, are relative to the containing block's *width*).
func (box *BoxModel) FixPercentages(enclosingWidth dimen.Dimen) {
	for side := Top; side <= Left; side++ {
		if box.Padding[side].IsPercent() {
			box.Padding[side] = box.Padding[side].Resolve(enclosingWidth)
		}
		if box.BorderWidth[side].IsPercent() {
			box.BorderWidth[side] = box.BorderWidth[side].Resolve(enclosingWidth)
		}
		if box.Margins[side].IsPercent() {
			box.Margins[side] = box.Margins[side].Resolve(enclosingWidth)
		}
	}
}

// InitZeroBox zeroes padding/border/margins and sets W to auto,
// matching the teacher's InitEmptyBox.
func InitZeroBox(box *BoxModel) *BoxModel {
	if box == nil {
		box = &BoxModel{}
	}
	for side := Top; side <= Left; side++ {
		box.Padding[side] = css.ZeroDimen()
		box.BorderWidth[side] = css.ZeroDimen()
		box.Margins[side] = css.ZeroDimen()
	}
	box.W = css.AutoDimen()
	return box
}

// AdjoiningMargins is the result of collapsing two boxes' adjacent
// margins (§4.3's margin-collapsing invariant): the resolved combined
// margin, and the smaller of the two contributing margins (kept around
// because nested collapsing needs both the max and the next value when
// more than two margins collapse in a chain).
type AdjoiningMargins struct {
	Max, Min css.DimenT
}

// CollapseMargins collapses box1's bottom margin against box2's top
// margin (CSS §8.3.1). A nil box contributes a zero margin.
func CollapseMargins(box1, box2 *BoxModel) AdjoiningMargins {
	var bottom, top css.DimenT
	if box1 != nil {
		bottom = box1.Margins[Bottom]
	} else {
		bottom = css.ZeroDimen()
	}
	if box2 != nil {
		top = box2.Margins[Top]
	} else {
		top = css.ZeroDimen()
	}
	return AdjoiningMargins{Max: css.MaxDimen(bottom, top), Min: css.MinDimen(bottom, top)}
}

// --- constraint width solving (CSS §10.3) -----------------------------------

// ErrUnfixedScaledUnit is returned when a dimension depends on a
// font/viewport size that hasn't been resolved yet.
var ErrUnfixedScaledUnit = errors.New("frame: font/view dependent dimension is unfixed")

// ErrContentScaling is returned when a dimension depends on the box's
// own content (calc() referencing intrinsic size).
var ErrContentScaling = errors.New("frame: box scales with content")

// ErrUnderspecified is returned when the box's width cannot be solved
// from the inputs given.
var ErrUnderspecified = errors.New("frame: box width dimensions are underspecified")

// FixDimensionsFromEnclosingWidth solves the horizontal box-model
// equation (CSS §10.3.3):
//
//	margin-left + border-left + padding-left + width +
//	  padding-right + border-right + margin-right = enclosingWidth
//
// Illegal padding/border values are clamped to 0 first, percentages
// are resolved against enclosingWidth, and then exactly one of
// {width, margin-left, margin-right} that is `auto` absorbs the
// remainder, per CSS's defaulting rules.
func FixDimensionsFromEnclosingWidth(box *BoxModel, enclosingWidth dimen.Dimen) error {
	clampIllegalDimensions(box)
	box.FixPercentages(enclosingWidth)
	if err := checkForUnresolvedDependentDimensions(box); err != nil {
		return err
	}
	w, err := box.W.MatchToDimen(option.Of{
		option.None: option.Safe(calcWidthAsRest(box, enclosingWidth)),
		css.Auto:    option.Safe(calcWidthAsRest(box, enclosingWidth)),
		option.Some: option.Safe(takeWidth(box, enclosingWidth)),
	})
	if err != nil {
		return err
	}
	box.W = css.SomeDimen(w)
	if !distributeHorizontalMarginSpace(box, enclosingWidth) {
		return ErrUnderspecified
	}
	return nil
}

func takeWidth(box *BoxModel, enclosing dimen.Dimen) (dimen.Dimen, error) {
	return box.W.Unwrap(), nil
}

// calcWidthAsRest implements "if width is auto, any other auto values
// become 0 and width follows from the resulting equality" (CSS §10.3.3
// rule 3): margins are temporarily pinned to 0 if auto so that width
// can absorb the rest of enclosingWidth.
func calcWidthAsRest(box *BoxModel, enclosing dimen.Dimen) (dimen.Dimen, error) {
	left, err := zeroIfAuto(box.Margins[Left])
	if err != nil {
		return 0, err
	}
	right, err := zeroIfAuto(box.Margins[Right])
	if err != nil {
		return 0, err
	}
	width := enclosing - left - right
	if !box.BorderBoxSizing {
		dec := innerDecorationWidth(box)
		if dec.IsNone() {
			return 0, ErrUnderspecified
		}
		width -= dec.Unwrap()
	}
	return width, nil
}

func zeroIfAuto(d css.DimenT) (dimen.Dimen, error) {
	if d.IsNone() || d.Equals(css.Auto) {
		return 0, nil
	}
	if !d.IsAbsolute() {
		return 0, ErrUnderspecified
	}
	return d.Unwrap(), nil
}

// distributeHorizontalMarginSpace splits the horizontal slack between
// left/right margins once the border-box width is fixed: both auto
// split the remainder evenly, one auto absorbs it all, neither auto
// means the box is over-constrained and the *right* margin is
// recomputed to make the equation hold (CSS §10.3.3 rule 5).
func distributeHorizontalMarginSpace(box *BoxModel, enclosing dimen.Dimen) bool {
	if !box.HasFixedBorderBoxWidth(false) {
		return false
	}
	remaining := enclosing - box.BorderBoxWidth().Unwrap()
	leftAuto := box.Margins[Left].IsNone() || box.Margins[Left].Equals(css.Auto)
	rightAuto := box.Margins[Right].IsNone() || box.Margins[Right].Equals(css.Auto)
	switch {
	case leftAuto && rightAuto:
		box.Margins[Left] = css.SomeDimen(remaining / 2)
		box.Margins[Right] = css.SomeDimen(remaining - remaining/2)
	case leftAuto:
		box.Margins[Left] = css.SomeDimen(remaining - box.Margins[Right].Unwrap())
	case rightAuto:
		box.Margins[Right] = css.SomeDimen(remaining - box.Margins[Left].Unwrap())
	default:
		box.Margins[Right] = css.SomeDimen(remaining - box.Margins[Left].Unwrap())
	}
	return true
}

func checkForUnresolvedDependentDimensions(box *BoxModel) error {
	check := func(d css.DimenT) error {
		_, err := d.Match(option.Of{
			option.None:       nil,
			css.FontScaled:    option.Fail(ErrUnfixedScaledUnit),
			css.ViewScaled:    option.Fail(ErrUnfixedScaledUnit),
			css.ContentScaled: option.Fail(ErrContentScaling),
			option.Some:       nil,
		})
		return err
	}
	for side := Top; side <= Left; side++ {
		if err := check(box.Padding[side]); err != nil {
			return err
		}
		if err := check(box.BorderWidth[side]); err != nil {
			return err
		}
		if err := check(box.Margins[side]); err != nil {
			return err
		}
	}
	return nil
}

// clampIllegalDimensions zeroes auto or negative padding/border (CSS
// forbids negative padding/border-width).
func clampIllegalDimensions(box *BoxModel) {
	for side := Top; side <= Left; side++ {
		if p := box.Padding[side]; p.Equals(css.Auto) || (p.IsAbsolute() && p.Unwrap() < 0) {
			box.Padding[side] = css.ZeroDimen()
		}
		if b := box.BorderWidth[side]; b.Equals(css.Auto) || (b.IsAbsolute() && b.Unwrap() < 0) {
			box.BorderWidth[side] = css.ZeroDimen()
		}
	}
}
