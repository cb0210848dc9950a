// Package occupancy converts detected vehicle center points into parking
// slot occupancy states and queue length counts.  All evaluations happen in
// the canonical frame, after the calibrated region has been perspective
// corrected with the warp package.
package occupancy

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/mihaiciobotaru/CarSurveillance/geom"
	"github.com/mihaiciobotaru/CarSurveillance/warp"
	"gocv.io/x/gocv"
)

// ErrRegionOutsideImage is returned when the calibrated region does not lie
// within the source image raster
var ErrRegionOutsideImage = errors.New("region outside source image")

// ExtractPoints filters the vehicle points down to those inside the region
// and maps the survivors into the canonical frame.  Points are sorted by y
// first so debug output stays deterministic.  The transform used is also
// returned so callers can warp the matching image raster
func ExtractPoints(region geom.Quadrilateral, points []geom.Point) ([]geom.Point, warp.Transform, error) {

	if err := region.Validate(); err != nil {
		return nil, warp.Transform{}, err
	}

	sorted := make([]geom.Point, len(points))
	copy(sorted, points)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	inside := make([]geom.Point, 0, len(sorted))

	for _, p := range sorted {
		if region.Contains(p) {
			inside = append(inside, p)
		}
	}

	tf, err := warp.BuildToCanonical(region)

	if err != nil {
		return nil, warp.Transform{}, err
	}

	return tf.ApplyAll(inside), tf, nil
}

// ExtractRegion warps both the image and the vehicle points into the
// canonical frame.  The source image is not modified.  Caller must Close
// the returned Mat
func ExtractRegion(img gocv.Mat, region geom.Quadrilateral,
	points []geom.Point) (gocv.Mat, []geom.Point, error) {

	imgBounds := image.Rect(0, 0, img.Cols(), img.Rows())

	if !region.Bounds().In(imgBounds) {
		return gocv.Mat{}, nil, fmt.Errorf("%w: region %v, image %v",
			ErrRegionOutsideImage, region.Bounds(), imgBounds)
	}

	warped, tf, err := ExtractPoints(region, points)

	if err != nil {
		return gocv.Mat{}, nil, err
	}

	warpedImg := tf.WarpToCanonical(img)

	return warpedImg, warped, nil
}
