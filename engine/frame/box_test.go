package frame

import (
	"testing"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestBoxNullbox(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := InitZeroBox(&BoxModel{})
	assert.Equal(t, css.ZeroDimen(), box.Padding[Top])
	assert.Equal(t, css.ZeroDimen(), box.BorderWidth[Right])
	assert.Equal(t, css.ZeroDimen(), box.Margins[Left])
	assert.True(t, box.W.Equals(css.Auto))
	assert.False(t, box.HasFixedBorderBoxWidth(true))
	assert.False(t, box.HasFixedBorderBoxHeight(true))
}

func TestBorderBoxWidthSumsDecorations(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := InitZeroBox(&BoxModel{})
	box.W = css.SomeDimen(60 * dimen.PT)
	box.Padding[Left] = css.SomeDimen(10 * dimen.PT)
	box.BorderWidth[Right] = css.SomeDimen(2 * dimen.PT)
	assert.True(t, box.HasFixedBorderBoxWidth(false))
	assert.Equal(t, css.SomeDimen(72*dimen.PT), box.BorderBoxWidth())
}

func TestBorderBoxWidthUnsetUntilEveryDimensionResolves(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := &BoxModel{}
	box.W = css.SomeDimen(60 * dimen.PT)
	assert.Equal(t, css.Dimen(), box.BorderBoxWidth(),
		"padding/border are still zero-valued DimenT, not absolute, until InitZeroBox or FixPercentages runs")
}

func TestBorderBoxSizingReturnsWDirectly(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := &BoxModel{BorderBoxSizing: true}
	box.W = css.SomeDimen(80 * dimen.PT)
	assert.Equal(t, css.SomeDimen(80*dimen.PT), box.BorderBoxWidth())
	assert.Equal(t, css.Dimen(), box.ContentWidth(),
		"border-box sizing with unresolved decorations reports content width as unset, not W")
}

func TestResolvedBorderRectZeroSizeWhenUnresolved(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := &BoxModel{}
	box.TopL = dimen.Point{X: 5 * dimen.PT, Y: 5 * dimen.PT}
	rect := box.ResolvedBorderRect()
	assert.Equal(t, dimen.Dimen(0), rect.Width)
	assert.Equal(t, dimen.Dimen(0), rect.Height)
	assert.Equal(t, box.TopL, rect.TopL, "position is preserved even when size never resolved")
}

func TestResolvedBorderRectMatchesBorderBoxSize(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := InitZeroBox(&BoxModel{})
	box.W = css.SomeDimen(100 * dimen.PT)
	box.H = css.SomeDimen(40 * dimen.PT)
	box.TopL = dimen.Point{X: 10 * dimen.PT, Y: 20 * dimen.PT}
	rect := box.ResolvedBorderRect()
	assert.Equal(t, 100*dimen.PT, rect.Width)
	assert.Equal(t, 40*dimen.PT, rect.Height)
	assert.Equal(t, box.TopL, rect.TopL)
}

func TestNeedsLayer(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	plain := &style.BoxStyle{Opacity: 1}
	assert.False(t, NeedsLayer(nil, false))
	assert.False(t, NeedsLayer(plain, false), "a plain static, opaque, unscrolled box needs no layer")
	assert.True(t, NeedsLayer(plain, true), "column-flow forces a layer regardless of style")
	assert.True(t, NeedsLayer(&style.BoxStyle{Opacity: 1, HasZIndex: true}, false))
}

func TestCollapseMarginsPicksMaxAndMin(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box1 := InitZeroBox(&BoxModel{})
	box1.Margins[Bottom] = css.SomeDimen(20 * dimen.PT)
	box2 := InitZeroBox(&BoxModel{})
	box2.Margins[Top] = css.SomeDimen(8 * dimen.PT)
	m := CollapseMargins(box1, box2)
	assert.Equal(t, css.SomeDimen(20*dimen.PT), m.Max)
	assert.Equal(t, css.SomeDimen(8*dimen.PT), m.Min)
}

func TestCollapseMarginsNilBoxContributesZero(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box2 := InitZeroBox(&BoxModel{})
	box2.Margins[Top] = css.SomeDimen(12 * dimen.PT)
	m := CollapseMargins(nil, box2)
	assert.Equal(t, css.SomeDimen(12*dimen.PT), m.Max)
	assert.Equal(t, css.ZeroDimen(), m.Min)
}

func TestFixDimensionsFromEnclosingWidthAutoWidthAbsorbsRest(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := InitZeroBox(&BoxModel{})
	box.Padding[Left] = css.SomeDimen(10 * dimen.PT)
	box.Padding[Right] = css.SomeDimen(10 * dimen.PT)
	err := FixDimensionsFromEnclosingWidth(box, 200*dimen.PT)
	assert.NoError(t, err)
	assert.Equal(t, css.SomeDimen(180*dimen.PT), box.W)
}

func TestFixDimensionsFromEnclosingWidthSplitsAutoMargins(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := InitZeroBox(&BoxModel{})
	box.W = css.SomeDimen(100 * dimen.PT)
	box.Margins[Left] = css.AutoDimen()
	box.Margins[Right] = css.AutoDimen()
	err := FixDimensionsFromEnclosingWidth(box, 200*dimen.PT)
	assert.NoError(t, err)
	assert.Equal(t, css.SomeDimen(50*dimen.PT), box.Margins[Left])
	assert.Equal(t, css.SomeDimen(50*dimen.PT), box.Margins[Right])
}

func TestClampIllegalDimensionsZeroesNegativePadding(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	box := InitZeroBox(&BoxModel{})
	box.Padding[Top] = css.SomeDimen(-5 * dimen.PT)
	clampIllegalDimensions(box)
	assert.Equal(t, css.ZeroDimen(), box.Padding[Top])
}
