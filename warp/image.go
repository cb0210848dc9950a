package warp

import (
	"image"

	"gocv.io/x/gocv"
)

// toMat converts the transform to a 3x3 gocv Mat for use with OpenCV's
// warp functions.  Caller must Close the returned Mat
func (t Transform) toMat() gocv.Mat {
	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.SetDoubleAt(r, c, t.m[r*3+c])
		}
	}

	return m
}

// WarpImage resamples the source image through the transform into dst at the
// given output size.  The resampling kernel only affects visualization, the
// occupancy decisions are made on warped points not pixels
func (t Transform) WarpImage(src gocv.Mat, dst *gocv.Mat, size image.Point) {
	m := t.toMat()
	defer m.Close()

	gocv.WarpPerspective(src, dst, m, size)
}

// WarpToCanonical resamples the source image into a new canonical square
// sized Mat.  Caller must Close the returned Mat
func (t Transform) WarpToCanonical(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	t.WarpImage(src, &dst, image.Pt(CanonicalSize, CanonicalSize))
	return dst
}
