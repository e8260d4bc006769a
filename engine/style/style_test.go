package style

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestBoxStyleIsNoneOnNilReceiver(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	var s *BoxStyle
	assert.True(t, s.IsNone())
}

func TestBoxStyleIsNoneOnDisplayNone(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := &BoxStyle{Display: DisplayNone}
	assert.True(t, s.IsNone())
}

func TestBoxStyleIsNoneFalseForResolvedDisplay(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := &BoxStyle{Display: DisplayBlock}
	assert.False(t, s.IsNone())
}
