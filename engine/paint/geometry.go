package paint

import (
	"math"
	"math/cmplx"

	"github.com/npillmayer/arithm"

	"github.com/npillmayer/quire/core/dimen"
)

// roundedRectContour samples a closed polygon approximating a rounded
// rectangle's outline, corner radii given in PaintBorder's order
// (top-left, top-right, bottom-right, bottom-left). A zero radius
// corner contributes its single square vertex instead of an arc.
//
// Each corner arc is swept in the complex plane with arithm.Pair,
// following the Pair-as-complex128 arithmetic the teacher's Hobby-path
// adapter uses for contour geometry (arithm.Origin, cmplx.Rect).
func roundedRectContour(rect dimen.Rect, radii [4]dimen.Dimen, segmentsPerCorner int) []dimen.Point {
	if segmentsPerCorner < 1 {
		segmentsPerCorner = 1
	}
	left, top := float64(rect.TopL.X), float64(rect.TopL.Y)
	right, bottom := float64(rect.Right()), float64(rect.Bottom())

	type corner struct {
		center      complex128
		radius      dimen.Dimen
		start, sweep float64 // radians, start angle and sweep (always +90deg worth)
	}
	const halfPi = math.Pi / 2
	corners := [4]corner{
		{complex(left+float64(radii[0]), top+float64(radii[0])), radii[0], math.Pi, halfPi},
		{complex(right-float64(radii[1]), top+float64(radii[1])), radii[1], -halfPi, halfPi},
		{complex(right-float64(radii[2]), bottom-float64(radii[2])), radii[2], 0, halfPi},
		{complex(left+float64(radii[3]), bottom-float64(radii[3])), radii[3], halfPi, halfPi},
	}

	points := make([]dimen.Point, 0, 4*(segmentsPerCorner+1))
	for _, c := range corners {
		center := arithm.Pair(c.center)
		if c.radius <= 0 {
			points = append(points, dimen.Point{X: dimen.Dimen(real(center)), Y: dimen.Dimen(imag(center))})
			continue
		}
		for i := 0; i <= segmentsPerCorner; i++ {
			theta := c.start + c.sweep*float64(i)/float64(segmentsPerCorner)
			p := center + arithm.Pair(cmplx.Rect(float64(c.radius), theta))
			points = append(points, dimen.Point{X: dimen.Dimen(real(p)), Y: dimen.Dimen(imag(p))})
		}
	}
	return points
}
