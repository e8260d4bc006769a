/*
Package khipu converts the inline descendants of a block-flow box into
a flat stream of typesetting items plus a shared text buffer, and
breaks that stream into lines (spec §4.4 "Inline line breaking").

The knot vocabulary (TextBox, Glue, Penalty, Discretionary) is the
teacher's own box-and-glue model from engine/frame/khipu
(khipukamayuq.go), itself borrowed from the TeX typesetting tradition;
what differs from the teacher is the breaking algorithm itself: spec
§4.4 asks for a single greedy left-to-right pass with float-aware
retries, not a Knuth-Plass total-paragraph optimization, so Break below
is new code grounded on the spec's prose rather than ported from the
teacher (which never finished its own line breaker; linebreak/linebreak.go
is parameters and interfaces for a Knuth-Plass pass that's never
invoked anywhere in the pack).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package khipu

import (
	"github.com/npillmayer/cords"
	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// KnotType discriminates the items a Khipu stream carries, mirroring
// the teacher's Knot type tags (KTTextBox/KTGlue/KTPenalty/...).
type KnotType int

const (
	KTTextBox KnotType = iota
	KTGlue
	KTPenalty
	KTDiscretionary
	KTHardBreak  // <br>
	KTWordBreak  // <wbr>
	KTInlineOpen  // Inline{Start
	KTInlineClose // Inline}End
	KTLeader
)

// Infinity is a penalty value that forbids a break entirely.
const Infinity = 10000

// Knot is one item of a Khipu stream.
type Knot struct {
	Type KnotType

	// TextBox fields.
	Text  string // the knot's own text; Append copies it into the Khipu's shared buffer
	Style *style.BoxStyle
	W, H  dimen.Dimen

	// Glue fields (also reused by Leader's stretch/shrink semantics).
	Stretch, Shrink dimen.Dimen

	// Penalty/Discretionary field: the cost of breaking here; Infinity
	// forbids the break.
	Penalty int

	// BidiLevel is assigned after the whole paragraph's text has run
	// through the bidi algorithm (§4.4 "each item is split at bidi-run
	// boundaries with the assigned level").
	BidiLevel int

	// CanBreakAfter marks a feasible breakpoint following this knot
	// (space, hyphenation point, <wbr>) distinct from a hard Penalty
	// knot, so the greedy breaker can rewind to it without scanning
	// backward through the whole stream.
	CanBreakAfter bool

	// TrailingCollapsible marks a glue knot produced by collapsed
	// whitespace at an item boundary (§4.4: "a collapsible trailing
	// space at item boundaries is recorded so it can be restored or
	// absorbed when a replaced element follows").
	TrailingCollapsible bool
}

// NewTextBox creates a text knot, measuring it with shaper against font.
func NewTextBox(text string, sty *style.BoxStyle, shaper Shaper) Knot {
	w, h := shaper.Measure(text, sty)
	return Knot{Type: KTTextBox, Text: text, Style: sty, W: w, H: h}
}

// NewGlue creates a glue knot (ordinary space).
func NewGlue(width, stretch, shrink dimen.Dimen) Knot {
	return Knot{Type: KTGlue, W: width, Stretch: stretch, Shrink: shrink, CanBreakAfter: true}
}

// NewPenalty creates a penalty knot; CanBreakAfter is true unless the
// penalty is Infinity.
func NewPenalty(cost int) Knot {
	return Knot{Type: KTPenalty, Penalty: cost, CanBreakAfter: cost < Infinity}
}

// NewDiscretionary creates a hyphenation opportunity. It has zero width
// and the breaker adds no hyphen glyph when it breaks there.
func NewDiscretionary(cost int) Knot {
	return Knot{Type: KTDiscretionary, Penalty: cost, CanBreakAfter: true}
}

// NewHardBreak creates a forced line break (`<br>`).
func NewHardBreak() Knot {
	return Knot{Type: KTHardBreak, Penalty: -Infinity, CanBreakAfter: true}
}

// NewWordBreak creates a zero-width break opportunity (`<wbr>`).
func NewWordBreak() Knot {
	return Knot{Type: KTWordBreak, CanBreakAfter: true}
}

// NewInlineOpen/NewInlineClose bracket an inline box's contribution to
// the stream, carrying the style the breaker propagates while it is
// between the pair (§4.4 "current style, propagated through
// Inline{Start,End}").
func NewInlineOpen(sty *style.BoxStyle) Knot  { return Knot{Type: KTInlineOpen, Style: sty} }
func NewInlineClose(sty *style.BoxStyle) Knot { return Knot{Type: KTInlineClose, Style: sty} }

// NewLeader creates a leader item. The breaker measures it at zero
// width and does not distribute remaining line width to it.
func NewLeader() Knot { return Knot{Type: KTLeader} }

// Khipu is a paragraph's flat item stream plus its shared text buffer.
// The text buffer is a cords.Cord rather than a plain string: §3's
// "Arena heap" calls for the paragraph's raw text to live in a rope so
// later stages (bidi reordering, hyphenation) can slice and splice it
// without repeated whole-string copies, the same structure the
// teacher's own engine/khipu/styled.Paragraph builds its innerText
// from (engine/khipu/styled/paragraph.go: cords.NewBuilder / CordBuilder.Append).
type Khipu struct {
	Knots []Knot
	raw   *cords.CordBuilder
}

// NewKhipu creates an empty stream.
func NewKhipu() *Khipu { return &Khipu{raw: cords.NewBuilder()} }

// Append adds knots to the stream in order, accumulating every text
// knot's content into the shared cord buffer.
func (k *Khipu) Append(knots ...Knot) *Khipu {
	if k.raw == nil {
		k.raw = cords.NewBuilder()
	}
	for _, kn := range knots {
		if kn.Type == KTTextBox && kn.Text != "" {
			k.raw.Append(khipuLeaf(kn.Text))
		}
	}
	k.Knots = append(k.Knots, knots...)
	return k
}

// Len returns the number of knots.
func (k *Khipu) Len() int { return len(k.Knots) }

// Raw returns the cord holding every text knot's content appended so
// far, in stream order.
func (k *Khipu) Raw() cords.Cord {
	if k.raw == nil {
		return cords.Cord{}
	}
	return k.raw.Cord()
}

// RawText reconstructs the plain-string concatenation of the cord,
// walking its leaves (cords.Cord has no direct String method; this
// mirrors the teacher's own leaf-walking reconstruction pattern).
func (k *Khipu) RawText() string {
	var b []byte
	k.Raw().EachLeaf(func(l cords.Leaf, pos uint64) error {
		b = append(b, []byte(l.String())...)
		return nil
	})
	return string(b)
}

// khipuLeaf is the cords.Leaf implementation for a Khipu's text
// buffer, the same shape as the teacher's pLeaf (engine/khipu/styled/
// paragraph.go) minus the owning-element back-reference this package
// has no use for.
type khipuLeaf string

func (l khipuLeaf) Weight() uint64 { return uint64(len(l)) }
func (l khipuLeaf) String() string { return string(l) }

func (l khipuLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return khipuLeaf(l[:i]), khipuLeaf(l[i:])
}

func (l khipuLeaf) Substring(i, j uint64) []byte {
	return []byte(l)[i:j]
}

var _ cords.Leaf = khipuLeaf("")

// Shaper measures text for a given style, the typesetting-pipeline
// boundary spec §4.4 names ("shaping text on demand"). HarfBuzzShaper
// is the default a BlockContext uses; MonospaceShaper is a
// monospace-metric stand-in adequate for layout testing.
type Shaper interface {
	Measure(text string, sty *style.BoxStyle) (width, height dimen.Dimen)
}

// MonospaceShaper approximates glyph metrics from font-size alone: 3/5
// em wide per rune, 6/5 em tall — good enough to drive layout decisions
// without a real shaping engine wired in.
type MonospaceShaper struct{}

// Measure implements Shaper.
func (MonospaceShaper) Measure(text string, sty *style.BoxStyle) (dimen.Dimen, dimen.Dimen) {
	em := dimen.Dimen(12 * dimen.PT)
	if sty != nil && sty.Font.Size.IsAbsolute() {
		em = sty.Font.Size.Unwrap()
	}
	n := dimen.Dimen(len([]rune(text)))
	return n * em * 3 / 5, em * 6 / 5
}
