/*
Package dimen implements the scaled-integer design units used throughout
the layout engine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Dimen is a 'design unit' type. Values are scaled big points, so that
// pixel-accurate layout can be done with pure integer arithmetic and
// rounding is deterministic across platforms (TESTABLE #6, idempotence).
type Dimen int32

// Pre-defined unit conversions. 1 BP (big point, 1/72in, used by PDF) is
// the base scale; everything else is expressed relative to it.
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // CSS "pixel" (96 CSS px = 1 CSS in, but authors use bp 1:1 here)
	PT   Dimen = 65291   // printer's point, 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest usable dimension; used for "unbounded" available
// space during intrinsic-width measurement.
const Infinity Dimen = math.MaxInt32 / 2

// Point is a location on a page or within a box, in design units.
type Point struct {
	X, Y Dimen
}

// Origin is the zero point.
var Origin = Point{0, 0}

// Shift translates p by vector, in place, and returns p for chaining.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	TopL          Point
	Width, Height Dimen
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() Dimen { return r.TopL.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() Dimen { return r.TopL.Y + r.Height }

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || other.Width <= 0 || other.Height <= 0 {
		return false
	}
	return r.TopL.X < other.Right() && other.TopL.X < r.Right() &&
		r.TopL.Y < other.Bottom() && other.TopL.Y < r.Bottom()
}

// Union returns the smallest rectangle containing both r and other. A
// zero-area rectangle is treated as absorbing (used to accumulate overflow
// rectangles starting from an empty one, §4.11).
func (r Rect) Union(other Rect) Rect {
	if r.Width <= 0 || r.Height <= 0 {
		return other
	}
	if other.Width <= 0 || other.Height <= 0 {
		return r
	}
	x0 := Min(r.TopL.X, other.TopL.X)
	y0 := Min(r.TopL.Y, other.TopL.Y)
	x1 := Max(r.Right(), other.Right())
	y1 := Max(r.Bottom(), other.Bottom())
	return Rect{TopL: Point{x0, y0}, Width: x1 - x0, Height: y1 - y0}
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+)(%|[a-zA-Z]{2,4})?$`)

// ParseDimen parses a CSS-unit-style length string ("15px", "80%", "-33pt").
// The second return value is true iff the dimension is a percentage.
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("dimen: format error parsing dimension")
	}
	scale := SP
	isPercent := false
	if len(d) > 2 {
		switch d[2] {
		case "pt", "PT":
			scale = PT
		case "mm", "MM":
			scale = MM
		case "bp", "px", "BP", "PX":
			scale = BP
		case "cm", "CM":
			scale = CM
		case "in", "IN":
			scale = IN
		case "sp", "SP", "":
			scale = SP
		case "%":
			scale, isPercent = 1, true
		default:
			return 0, false, fmt.Errorf("dimen: unsupported unit %q", d[2])
		}
	}
	n, err := strconv.Atoi(d[1])
	if err != nil {
		return 0, false, errors.New("dimen: format error parsing dimension")
	}
	return Dimen(n) * scale, isPercent, nil
}

// String implements fmt.Stringer.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns d expressed in big (PDF/CSS) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts d to [lo, hi]. If hi < lo, hi wins: the upper bound is
// applied last.
func Clamp(d, lo, hi Dimen) Dimen {
	if d < lo {
		d = lo
	}
	if d > hi {
		d = hi
	}
	return d
}

// FixedOffset is a signed fixed-point accumulator scaled by 1000, used for
// nested fragment-context coordinate offsets (§9 "Coordinate/fragment
// offset accumulator"). Keeping it as an int64 avoids float drift when
// entering/leaving many nested column or page fragments.
type FixedOffset int64

// FixedScale is the fixed-point scale factor.
const FixedScale = 1000

// FixedFromDimen lifts a Dimen into fixed-point space.
func FixedFromDimen(d Dimen) FixedOffset {
	return FixedOffset(int64(d) * FixedScale)
}

// ToDimen lowers a fixed-point offset back to a Dimen, truncating towards zero.
func (f FixedOffset) ToDimen() Dimen {
	return Dimen(int64(f) / FixedScale)
}

// Add returns f shifted by a Dimen delta.
func (f FixedOffset) Add(d Dimen) FixedOffset {
	return f + FixedFromDimen(d)
}
