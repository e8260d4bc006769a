package khipu

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
)

func TestHarfBuzzShaperMeasuresNonZeroWidthForText(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	shaper := &HarfBuzzShaper{}
	sty := &style.BoxStyle{}
	sty.Font.Size = css.SomeDimen(10 * dimen.PT)
	w, h := shaper.Measure("hello", sty)
	assert.Greater(t, int(w), 0, "a shaped run of glyphs must advance by a positive width")
	assert.Greater(t, int(h), 0)
}

func TestHarfBuzzShaperLongerTextAdvancesFurther(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	shaper := &HarfBuzzShaper{}
	sty := &style.BoxStyle{}
	sty.Font.Size = css.SomeDimen(10 * dimen.PT)
	short, _ := shaper.Measure("hi", sty)
	long, _ := shaper.Measure("hello world", sty)
	assert.Greater(t, int(long), int(short))
}

func TestHarfBuzzShaperEmptyTextYieldsZeroWidth(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	shaper := &HarfBuzzShaper{}
	w, _ := shaper.Measure("", &style.BoxStyle{})
	assert.Equal(t, dimen.Dimen(0), w)
}

func TestHarfBuzzShaperReusesParsedFontAcrossCalls(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	shaper := &HarfBuzzShaper{}
	sty := &style.BoxStyle{}
	sty.Font.Size = css.SomeDimen(12 * dimen.PT)
	shaper.Measure("first", sty)
	assert.NotNil(t, shaper.font, "the embedded face parses once and is cached on the shaper")
	shaper.Measure("second", sty)
	assert.NoError(t, shaper.err)
}
