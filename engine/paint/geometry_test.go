package paint

import (
	"testing"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/stretchr/testify/assert"
)

func TestRoundedRectContourSquareCornerYieldsExactVertex(t *testing.T) {
	rect := dimen.Rect{TopL: dimen.Point{X: 0, Y: 0}, Width: 100 * dimen.PT, Height: 50 * dimen.PT}
	contour := roundedRectContour(rect, [4]dimen.Dimen{0, 0, 0, 0}, 8)
	want := []dimen.Point{
		{X: 0, Y: 0},
		{X: 100 * dimen.PT, Y: 0},
		{X: 100 * dimen.PT, Y: 50 * dimen.PT},
		{X: 0, Y: 50 * dimen.PT},
	}
	assert.Equal(t, want, contour, "zero radii must degrade to the plain rectangle's four corners")
}

func TestRoundedRectContourArcStaysWithinRadiusOfCorner(t *testing.T) {
	radius := 10 * dimen.PT
	rect := dimen.Rect{TopL: dimen.Point{X: 0, Y: 0}, Width: 100 * dimen.PT, Height: 100 * dimen.PT}
	contour := roundedRectContour(rect, [4]dimen.Dimen{radius, 0, 0, 0}, 4)
	// the top-left corner's arc samples must all land within [radius] of
	// the corner point (0,0), and none should land exactly at it.
	for i := 0; i <= 4; i++ {
		p := contour[i]
		dx, dy := float64(p.X), float64(p.Y)
		distSq := dx*dx + dy*dy
		assert.LessOrEqual(t, distSq, float64(radius)*float64(radius)+1, "arc sample must stay within the corner radius")
	}
}

func TestRoundedRectContourClampsMinimumSegments(t *testing.T) {
	rect := dimen.Rect{TopL: dimen.Point{X: 0, Y: 0}, Width: 20 * dimen.PT, Height: 20 * dimen.PT}
	contour := roundedRectContour(rect, [4]dimen.Dimen{5 * dimen.PT, 5 * dimen.PT, 5 * dimen.PT, 5 * dimen.PT}, 0)
	assert.NotEmpty(t, contour, "a non-positive segment count must be clamped rather than producing an empty contour")
}
