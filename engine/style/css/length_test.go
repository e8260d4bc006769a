package css

import (
	"testing"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestParseDimenResolvesUnitsToDimenScale(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, err := ParseDimen("15px")
	assert.NoError(t, err)
	assert.True(t, d.IsAbsolute())
	assert.Equal(t, 15*dimen.BP, d.Unwrap())

	d, err = ParseDimen("2pt")
	assert.NoError(t, err)
	assert.Equal(t, 2*dimen.PT, d.Unwrap())

	d, err = ParseDimen("1in")
	assert.NoError(t, err)
	assert.Equal(t, dimen.IN, d.Unwrap())
}

func TestParseDimenPercentage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, err := ParseDimen("80%")
	assert.NoError(t, err)
	assert.True(t, d.IsPercent())
	assert.Equal(t, 80.0, d.Percent())
}

func TestParseDimenBorderWidthKeywords(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	thin, _ := ParseDimen("thin")
	medium, _ := ParseDimen("medium")
	thick, _ := ParseDimen("thick")
	assert.Equal(t, dimen.PX/2, thin.Unwrap())
	assert.Equal(t, dimen.PX, medium.Unwrap())
	assert.Equal(t, dimen.PX*2, thick.Unwrap())
}

func TestParseDimenRelativeUnitMarksFontScaled(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, err := ParseDimen("2rem")
	assert.NoError(t, err)
	assert.True(t, d.IsRelative())
	assert.True(t, d.Equals(FontScaled))
	assert.False(t, d.IsAbsolute())
}

func TestParseDimenEmptyOrNoneYieldsUnset(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d, err := ParseDimen("")
	assert.NoError(t, err)
	assert.True(t, d.IsNone())
	d, err = ParseDimen("none")
	assert.NoError(t, err)
	assert.True(t, d.IsNone())
}

func TestParseDimenRejectsUnsupportedUnit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, err := ParseDimen("5xyz")
	assert.Error(t, err)
}

func TestParseDimenRejectsMalformedNumber(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, err := ParseDimen("abc")
	assert.Error(t, err)
}

func TestDimenOptionKeywords(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.True(t, DimenOption("auto").Equals(Auto))
	assert.True(t, DimenOption("initial").Equals(Initial))
	assert.True(t, DimenOption("inherit").Equals(Inherit))
	assert.True(t, DimenOption("fit-content").Equals(ContentFit))
	assert.True(t, DimenOption("min-content").Equals(ContentMin))
	assert.True(t, DimenOption("max-content").Equals(ContentMax))
	assert.True(t, DimenOption("none").IsNone())
	assert.True(t, DimenOption("").IsNone())
}

func TestDimenOptionFallsThroughToParseDimen(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := DimenOption("10pt")
	assert.True(t, d.IsAbsolute())
	assert.Equal(t, 10*dimen.PT, d.Unwrap())
}

func TestDimenOptionInvalidInputYieldsUnsetNotError(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := DimenOption("not-a-length")
	assert.True(t, d.IsNone())
}

func TestEqualsMatchesDimenAndInt(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := SomeDimen(5 * dimen.PT)
	assert.True(t, d.Equals(5*dimen.PT))
	assert.False(t, d.Equals(6*dimen.PT))
	zero := SomeDimen(0)
	assert.True(t, zero.Equals(0))
}

func TestEqualsMatchesPercentString(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := Percentage(50)
	assert.True(t, d.Equals("%"))
	assert.False(t, SomeDimen(1).Equals("%"))
}

func TestResolveConvertsPercentAgainstReference(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := Percentage(50)
	resolved := d.Resolve(200 * dimen.PT)
	assert.True(t, resolved.IsAbsolute())
	assert.Equal(t, 100*dimen.PT, resolved.Unwrap())
}

func TestResolveLeavesNonPercentUntouched(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	d := AutoDimen()
	assert.Equal(t, d, d.Resolve(200*dimen.PT))
}

func TestMinDimenUnsetLosesToSet(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := Dimen()
	b := SomeDimen(5 * dimen.PT)
	assert.Equal(t, b, MinDimen(a, b))
	assert.Equal(t, b, MinDimen(b, a))
}

func TestMinDimenPicksSmaller(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := SomeDimen(10 * dimen.PT)
	b := SomeDimen(5 * dimen.PT)
	assert.Equal(t, b, MinDimen(a, b))
}

func TestMaxDimenPicksLarger(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := SomeDimen(10 * dimen.PT)
	b := SomeDimen(5 * dimen.PT)
	assert.Equal(t, a, MaxDimen(a, b))
}

func TestStringRendersEachKind(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.Equal(t, "none", Dimen().String())
	assert.Equal(t, "auto", AutoDimen().String())
	assert.Equal(t, "50%", Percentage(50).String())
}

func TestZeroDimenIsAbsoluteZeroDistinctFromNone(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	z := ZeroDimen()
	assert.True(t, z.IsAbsolute())
	assert.Equal(t, dimen.Dimen(0), z.Unwrap())
	assert.False(t, z.IsNone())
	assert.True(t, Dimen().IsNone())
}

func TestIntrinsicKinds(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.True(t, Intrinsic(ContentMin).IsIntrinsic())
	assert.True(t, Intrinsic(ContentMax).IsIntrinsic())
	assert.True(t, Intrinsic(ContentFit).IsIntrinsic())
	assert.False(t, SomeDimen(1).IsIntrinsic())
}
