/*
Package style defines the resolved style record consumed by the core
layout engine, and the external cascade contract that produces it
(spec §4.1 "Style cascade interface (external)").

The core never parses CSS or walks a stylesheet cascade itself — it
only ever calls Cascade.StyleFor/PseudoStyleFor/StyleForPage/
StyleForPageMargin and treats the returned *BoxStyle as immutable and
shareable, exactly as the teacher's engine/dom/cssom package documents
("CSS handling is de-coupled by introducing appropriate interfaces").
A concrete Cascade implementation lives in this package's cssdefault
sub-package wiring cascadia and douceur.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

import (
	"github.com/npillmayer/quire/engine/dom"
	"github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Display is the resolved `display` property, driving box-subclass
// selection in box construction (§4.2).
type Display int

const (
	DisplayNone Display = iota
	DisplayBlock
	DisplayInline
	DisplayInlineBlock
	DisplayFlex
	DisplayInlineFlex
	DisplayTable
	DisplayInlineTable
	DisplayTableRowGroup
	DisplayTableHeaderGroup
	DisplayTableFooterGroup
	DisplayTableRow
	DisplayTableColumnGroup
	DisplayTableColumn
	DisplayTableCell
	DisplayTableCaption
	DisplayListItem
)

// Position is the resolved `position` property.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// Float is the resolved `float` property.
type Float int

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

// Clear is the resolved `clear` property.
type Clear int

const (
	ClearNone Clear = iota
	ClearLeft
	ClearRight
	ClearBoth
)

// Overflow is the resolved `overflow` property (one axis).
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// VerticalAlign is the resolved `vertical-align` keyword (length values
// are carried in VerticalAlignLength instead).
type VerticalAlign int

const (
	VAlignBaseline VerticalAlign = iota
	VAlignTop
	VAlignMiddle
	VAlignBottom
	VAlignTextTop
	VAlignTextBottom
	VAlignSub
	VAlignSuper
	VAlignLength
)

// BreakMode is the resolved `break-before`/`break-after`/`break-inside`
// value (§4.9's fragment builder consumes this).
type BreakMode int

const (
	BreakAuto BreakMode = iota
	BreakAvoid
	BreakAlways
	BreakPage
	BreakColumn
	BreakAvoidPage
	BreakAvoidColumn
	BreakRecto
	BreakVerso
	BreakLeft
	BreakRight
)

// BlendMode is the resolved `mix-blend-mode` property.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
)

// ColumnFill is the resolved `column-fill` property (§4.8).
type ColumnFill int

const (
	ColumnFillBalance ColumnFill = iota
	ColumnFillAuto
)

// Color is a resolved sRGB color with alpha, 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

// Border describes one edge's resolved border: width, style keyword,
// and color. Style 0 means "none" (no border painted on this edge
// regardless of width).
type Border struct {
	Width css.DimenT
	Style BorderStyle
	Color Color
}

// BorderStyle is the resolved `border-*-style` keyword.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderHidden
	BorderSolid
	BorderDashed
	BorderDotted
	BorderDouble
	BorderGroove
	BorderRidge
	BorderInset
	BorderOutset
)

// Edges groups a box-model value for all four edges.
type Edges struct {
	Top, Right, Bottom, Left css.DimenT
}

// Font is the resolved font shorthand: family list, size, weight and
// style, consumed by the khipu shaping bridge (§4.4).
type Font struct {
	Family     []string
	Size       css.DimenT
	Weight     int // 100..900, 400 is normal
	Italic     bool
	LineHeight css.DimenT
}

// BoxStyle is a resolved, immutable, shareable style record (spec §3
// "BoxStyle"). Callers never mutate a *BoxStyle in place — a cascade
// produces a fresh one (or reuses a previously produced, ref-equal one
// when two elements compute to an identical style, which is safe
// precisely because consumers only ever read it).
type BoxStyle struct {
	Display  Display
	Position Position
	Float    Float
	Clear    Clear

	Margin  Edges
	Padding Edges
	Border  [4]Border // top, right, bottom, left

	// BorderRadius holds the four corner radii in paint.PaintBorder's
	// corner order: top-left, top-right, bottom-right, bottom-left.
	// A zero radius on a corner means that corner is painted square.
	BorderRadius [4]css.DimenT

	Width, Height       css.DimenT
	MinWidth, MinHeight css.DimenT
	MaxWidth, MaxHeight css.DimenT

	Top, Right, Bottom, Left css.DimenT // offsets for non-static position

	OverflowX, OverflowY Overflow

	Font       Font
	Color      Color
	Background Color

	VerticalAlign       VerticalAlign
	VerticalAlignLength css.DimenT

	Opacity   float64
	BlendMode BlendMode
	ZIndex    int
	HasZIndex bool

	// Column properties (§4.8).
	ColumnCount  int // 0 means "auto"
	ColumnWidth  css.DimenT
	ColumnGap    css.DimenT
	ColumnRule   Border
	ColumnFill   ColumnFill
	ColumnSpanAll bool

	BreakBefore BreakMode
	BreakAfter  BreakMode
	BreakInside BreakMode

	BorderCollapse bool

	// Transform is left as a raw, unparsed CSS value: the core treats
	// it as opaque and hands it to the paint layer (§6), which is the
	// only consumer that needs matrix decomposition.
	Transform string

	// Counters to increment/reset, evaluated by the cascade against
	// its own counter-text formatting support (§4.1).
	CounterReset     map[string]int
	CounterIncrement map[string]int
	Content          string
}

// IsNone reports whether this style amounts to `display: none` — box
// construction skips the element and its subtree entirely (§4.2).
func (s *BoxStyle) IsNone() bool {
	return s == nil || s.Display == DisplayNone
}

// Pseudo names a CSS pseudo-element the cascade can resolve a style
// for, beyond plain elements (§4.1).
type Pseudo int

const (
	PseudoNone Pseudo = iota
	PseudoBefore
	PseudoAfter
	PseudoMarker
	PseudoFirstLine
	PseudoFirstLetter
)

// MarginBoxType names one of the 16 page-margin regions (§3 "Page").
type MarginBoxType int

const (
	TopLeftCorner MarginBoxType = iota
	TopLeft
	TopCenter
	TopRight
	TopRightCorner
	RightTop
	RightMiddle
	RightBottom
	BottomRightCorner
	BottomRight
	BottomCenter
	BottomLeft
	BottomLeftCorner
	LeftBottom
	LeftMiddle
	LeftTop
)

// MediaContext carries the viewport/device facts a cascade needs to
// evaluate `@media` rules (§4.1 "media query evaluation").
type MediaContext struct {
	ViewportWidth, ViewportHeight css.DimenT
	PageWidth, PageHeight         css.DimenT
	Orientation                   string // "portrait" | "landscape"
}

// Cascade is the external style-resolution contract the core layout
// engine consumes (§4.1). The core treats every returned *BoxStyle as
// immutable and shareable; a nil return from StyleFor/PseudoStyleFor/
// StyleForPageMargin means "no box for this", i.e. `display: none`.
type Cascade interface {
	// StyleFor resolves an element's style given its already-resolved
	// parent style (nil at the document root).
	StyleFor(element *dom.Node, parent *BoxStyle) *BoxStyle

	// PseudoStyleFor resolves a pseudo-element's style, or nil if the
	// pseudo-element does not apply to element.
	PseudoStyleFor(element *dom.Node, pseudo Pseudo, parent *BoxStyle) *BoxStyle

	// StyleForPage resolves the style of a page box, keyed by its
	// (possibly empty) named page and 0-based index.
	StyleForPage(pageName string, pageIndex int, pseudo Pseudo) *BoxStyle

	// StyleForPageMargin resolves the style of one of the 16 named
	// page-margin boxes, or nil if that region has no content/style.
	StyleForPageMargin(pageName string, pageIndex int, marginType MarginBoxType, pageStyle *BoxStyle) *BoxStyle

	// CounterText formats a counter's current value per a CSS
	// counter-style (decimal, lower-roman, ...), e.g. for `content:
	// counter(page, lower-roman)` (§4.1 "counter-text formatting").
	CounterText(counterName, counterStyle string, value int) string

	// EvaluateMedia reports whether a parsed `@media` query matches
	// the current rendering context (§4.1 "media query evaluation").
	EvaluateMedia(query string, ctx MediaContext) bool
}
