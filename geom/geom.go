package geom

import (
	"fmt"
	"image"
)

// Point represents a pixel coordinate in image space
type Point struct {
	X int
	Y int
}

// Pt is shorthand for creating a Point
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// FromImagePoint converts an image.Point to a Point
func FromImagePoint(p image.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// ToImagePoint converts the Point to an image.Point for use with gocv
// drawing functions
func (p Point) ToImagePoint() image.Point {
	return image.Pt(p.X, p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Line represents a line segment between two points
type Line struct {
	Start Point
	End   Point
}

// Quadrilateral is a four cornered region of the source image.  Corners are
// named so a calibration cannot mix up which corner maps to which canonical
// frame corner.  The region does not need to be convex or rectangular, it is
// calibrated by hand per camera view.
type Quadrilateral struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// Corners returns the four corners in the fixed closed loop order
// TopLeft, TopRight, BottomRight, BottomLeft
func (q Quadrilateral) Corners() [4]Point {
	return [4]Point{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft}
}

// Edges returns the four edges forming the closed loop
// TopLeft->TopRight->BottomRight->BottomLeft->TopLeft
func (q Quadrilateral) Edges() [4]Line {
	return [4]Line{
		{Start: q.TopLeft, End: q.TopRight},
		{Start: q.TopRight, End: q.BottomRight},
		{Start: q.BottomRight, End: q.BottomLeft},
		{Start: q.BottomLeft, End: q.TopLeft},
	}
}

// Bounds returns the axis aligned bounding box over the four corners.  It is
// used for cropping only, membership testing is done with Contains
func (q Quadrilateral) Bounds() image.Rectangle {
	corners := q.Corners()

	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := corners[0].X, corners[0].Y

	for _, c := range corners[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	return image.Rect(minX, minY, maxX, maxY)
}

// Centroid returns the average of the four corners
func (q Quadrilateral) Centroid() Point {
	corners := q.Corners()

	var sumX, sumY int

	for _, c := range corners {
		sumX += c.X
		sumY += c.Y
	}

	return Point{X: sumX / 4, Y: sumY / 4}
}
