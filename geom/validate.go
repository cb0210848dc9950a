package geom

import (
	"errors"
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// ErrDegenerateRegion is returned when a quadrilateral cannot be used for
// perspective calibration, ie: it has no area or three of its corners are
// collinear
var ErrDegenerateRegion = errors.New("degenerate region")

// Area returns the absolute polygon area of the quadrilateral in square
// pixels
func (q Quadrilateral) Area() float64 {
	var path clipper.Path

	for _, c := range q.Corners() {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(c.X),
			Y: clipper.CInt(c.Y),
		})
	}

	return math.Abs(clipper.Area(path))
}

// Validate checks the quadrilateral is usable as a calibration region.  A
// region with zero area, or with any three collinear corners, cannot produce
// a solvable perspective transform
func (q Quadrilateral) Validate() error {

	if q.Area() == 0 {
		return fmt.Errorf("%w: zero area", ErrDegenerateRegion)
	}

	corners := q.Corners()

	// check every triple of corners for collinearity
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		c := corners[(i+2)%4]

		cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)

		if cross == 0 {
			return fmt.Errorf("%w: corners %s, %s, %s are collinear",
				ErrDegenerateRegion, a, b, c)
		}
	}

	return nil
}
