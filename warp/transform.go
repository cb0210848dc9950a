// Package warp builds projective transforms that map a calibrated
// quadrilateral of the camera view onto a fixed canonical square, so that
// spatial comparisons can be made in a perspective corrected frame.
package warp

import (
	"errors"
	"fmt"

	"github.com/mihaiciobotaru/CarSurveillance/geom"
	"gonum.org/v1/gonum/mat"
)

// CanonicalSize is the side length of the canonical square frame all
// region relative comparisons are made in
const CanonicalSize = 1000

var (
	// ErrInvalidCorners is returned when a corner list does not contain
	// exactly four points
	ErrInvalidCorners = errors.New("corner list must contain exactly 4 points")

	// ErrDegenerateTransform is returned when the corner correspondence has
	// no solvable perspective transform, ie: three source corners are
	// collinear
	ErrDegenerateTransform = errors.New("degenerate perspective transform")
)

// CanonicalSquare returns the canonical destination frame corners.  Each
// named corner of a source quadrilateral maps to the same named corner here,
// which keeps the correspondence explicit instead of relying on list
// position
func CanonicalSquare() geom.Quadrilateral {
	return geom.Quadrilateral{
		TopLeft:     geom.Pt(0, 0),
		TopRight:    geom.Pt(CanonicalSize, 0),
		BottomRight: geom.Pt(CanonicalSize, CanonicalSize),
		BottomLeft:  geom.Pt(0, CanonicalSize),
	}
}

// Transform is a 3x3 projective matrix in row major order
type Transform struct {
	m [9]float64
}

// Build computes the perspective transform mapping each named corner of src
// onto the same named corner of dst.  It solves the standard 8 degree of
// freedom homography system and returns ErrDegenerateTransform when the
// system is singular
func Build(src, dst geom.Quadrilateral) (Transform, error) {

	srcCorners := src.Corners()
	dstCorners := dst.Corners()

	// two equations per corner correspondence:
	//   u = (h0*x + h1*y + h2) / (h6*x + h7*y + 1)
	//   v = (h3*x + h4*y + h5) / (h6*x + h7*y + 1)
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x := float64(srcCorners[i].X)
		y := float64(srcCorners[i].Y)
		u := float64(dstCorners[i].X)
		v := float64(dstCorners[i].Y)

		a.SetRow(i*2, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(i*2+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})

		b.SetVec(i*2, u)
		b.SetVec(i*2+1, v)
	}

	var h mat.VecDense

	if err := h.SolveVec(a, b); err != nil {
		return Transform{}, fmt.Errorf("%w: %v", ErrDegenerateTransform, err)
	}

	var t Transform

	for i := 0; i < 8; i++ {
		t.m[i] = h.AtVec(i)
	}
	t.m[8] = 1

	return t, nil
}

// BuildToCanonical is shorthand for building the transform from the region
// onto the canonical square frame
func BuildToCanonical(region geom.Quadrilateral) (Transform, error) {
	return Build(region, CanonicalSquare())
}

// BuildFromPoints computes the transform for callers holding plain corner
// slices.  Both slices must contain exactly four points in the order
// top left, top right, bottom right, bottom left.  A nil dst uses the
// canonical square
func BuildFromPoints(src, dst []geom.Point) (Transform, error) {

	if len(src) != 4 {
		return Transform{}, fmt.Errorf("%w: got %d source points",
			ErrInvalidCorners, len(src))
	}

	srcQuad := geom.Quadrilateral{
		TopLeft:     src[0],
		TopRight:    src[1],
		BottomRight: src[2],
		BottomLeft:  src[3],
	}

	if dst == nil {
		return Build(srcQuad, CanonicalSquare())
	}

	if len(dst) != 4 {
		return Transform{}, fmt.Errorf("%w: got %d destination points",
			ErrInvalidCorners, len(dst))
	}

	dstQuad := geom.Quadrilateral{
		TopLeft:     dst[0],
		TopRight:    dst[1],
		BottomRight: dst[2],
		BottomLeft:  dst[3],
	}

	return Build(srcQuad, dstQuad)
}

// Apply maps a point through the transform, renormalizing by the homogeneous
// coordinate, and rounds the result back to pixel space
func (t Transform) Apply(p geom.Point) geom.Point {
	x := float64(p.X)
	y := float64(p.Y)

	w := t.m[6]*x + t.m[7]*y + t.m[8]

	u := (t.m[0]*x + t.m[1]*y + t.m[2]) / w
	v := (t.m[3]*x + t.m[4]*y + t.m[5]) / w

	return geom.Pt(int(u+0.5), int(v+0.5))
}

// ApplyAll maps each point through the transform returning a new slice
func (t Transform) ApplyAll(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))

	for i, p := range pts {
		out[i] = t.Apply(p)
	}

	return out
}

// Invert returns the inverse transform.  Used for mapping canonical frame
// coordinates back into the camera view
func (t Transform) Invert() (Transform, error) {

	m := mat.NewDense(3, 3, []float64{
		t.m[0], t.m[1], t.m[2],
		t.m[3], t.m[4], t.m[5],
		t.m[6], t.m[7], t.m[8],
	})

	var inv mat.Dense

	if err := inv.Inverse(m); err != nil {
		return Transform{}, fmt.Errorf("%w: %v", ErrDegenerateTransform, err)
	}

	var out Transform

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.m[r*3+c] = inv.At(r, c)
		}
	}

	return out, nil
}

// At returns the matrix element at the given row and column
func (t Transform) At(row, col int) float64 {
	return t.m[row*3+col]
}
