package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestPointShiftTranslatesInPlaceAndReturnsSelf(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := Point{X: 10, Y: 20}
	ret := p.Shift(Point{X: 5, Y: -3})
	assert.Equal(t, Point{X: 15, Y: 17}, p)
	assert.Same(t, &p, ret)
}

func TestRectRightAndBottom(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	r := Rect{TopL: Point{X: 10, Y: 20}, Width: 100, Height: 50}
	assert.Equal(t, Dimen(110), r.Right())
	assert.Equal(t, Dimen(70), r.Bottom())
}

func TestRectIntersectsOverlapping(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := Rect{TopL: Point{0, 0}, Width: 100, Height: 100}
	b := Rect{TopL: Point{50, 50}, Width: 100, Height: 100}
	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
}

func TestRectIntersectsDisjoint(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := Rect{TopL: Point{0, 0}, Width: 10, Height: 10}
	b := Rect{TopL: Point{20, 20}, Width: 10, Height: 10}
	assert.False(t, a.Intersects(b))
}

func TestRectIntersectsZeroAreaIsNever(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := Rect{TopL: Point{0, 0}, Width: 0, Height: 10}
	b := Rect{TopL: Point{0, 0}, Width: 10, Height: 10}
	assert.False(t, a.Intersects(b))
}

func TestRectUnionAbsorbsZeroAreaOperand(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	empty := Rect{}
	full := Rect{TopL: Point{5, 5}, Width: 10, Height: 10}
	assert.Equal(t, full, empty.Union(full))
	assert.Equal(t, full, full.Union(empty))
}

func TestRectUnionOfOverlappingRects(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := Rect{TopL: Point{0, 0}, Width: 10, Height: 10}
	b := Rect{TopL: Point{5, 5}, Width: 10, Height: 10}
	u := a.Union(b)
	assert.Equal(t, Point{0, 0}, u.TopL)
	assert.Equal(t, Dimen(15), u.Width)
	assert.Equal(t, Dimen(15), u.Height)
}

func TestParseDimenResolvesUnitScale(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, isPercent, err := ParseDimen("15px")
	assert.NoError(t, err)
	assert.False(t, isPercent)
	assert.Equal(t, 15*BP, d)

	d, isPercent, err = ParseDimen("2pt")
	assert.NoError(t, err)
	assert.Equal(t, 2*PT, d)

	d, isPercent, err = ParseDimen("1in")
	assert.NoError(t, err)
	assert.Equal(t, IN, d)
}

func TestParseDimenPlainNumberDefaultsToScaledPoints(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, isPercent, err := ParseDimen("42")
	assert.NoError(t, err)
	assert.False(t, isPercent)
	assert.Equal(t, 42*SP, d)
}

func TestParseDimenPercent(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, isPercent, err := ParseDimen("50%")
	assert.NoError(t, err)
	assert.True(t, isPercent)
	assert.Equal(t, Dimen(50), d)
}

func TestParseDimenNegativeNumber(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, _, err := ParseDimen("-5pt")
	assert.NoError(t, err)
	assert.Equal(t, -5*PT, d)
}

func TestParseDimenRejectsUnsupportedUnit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, _, err := ParseDimen("5xyz")
	assert.Error(t, err)
}

func TestParseDimenRejectsFractionalNumber(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// this parser's pattern requires a pure integer mantissa, unlike
	// the richer css.ParseDimen.
	_, _, err := ParseDimen("1.5pt")
	assert.Error(t, err)
}

func TestParseDimenRejectsEmptyString(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, _, err := ParseDimen("")
	assert.Error(t, err)
}

func TestDimenStringAndPoints(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.Equal(t, "65536sp", BP.String())
	assert.Equal(t, 1.0, BP.Points())
	assert.Equal(t, 0.5, (BP / 2).Points())
}

func TestMinMaxClamp(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.Equal(t, Dimen(5), Min(5, 10))
	assert.Equal(t, Dimen(10), Max(5, 10))
	assert.Equal(t, Dimen(5), Clamp(2, 5, 20))
	assert.Equal(t, Dimen(20), Clamp(25, 5, 20))
	assert.Equal(t, Dimen(10), Clamp(10, 5, 20))
}

func TestClampHiLessThanLoHiWins(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// the upper bound is applied last, so a value at or above lo is still
	// pulled down to a smaller hi.
	assert.Equal(t, Dimen(10), Clamp(30, 30, 10))
}

func TestFixedOffsetRoundTripsThroughDimen(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := FixedFromDimen(7)
	assert.Equal(t, FixedOffset(7000), f)
	assert.Equal(t, Dimen(7), f.ToDimen())
}

func TestFixedOffsetAddAccumulates(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := FixedFromDimen(3).Add(4)
	assert.Equal(t, Dimen(7), f.ToDimen())
}

func TestFixedOffsetToDimenTruncatesTowardsZero(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := FixedOffset(2500)
	assert.Equal(t, Dimen(2), f.ToDimen())
	neg := FixedOffset(-2500)
	assert.Equal(t, Dimen(-2), neg.ToDimen())
}
