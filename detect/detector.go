// Package detect runs vehicle detection on camera frames.  The rest of the
// system only consumes the center point of each detected vehicle, so any
// Detector implementation returning bounding boxes can drive the occupancy
// and queue evaluations.
package detect

import (
	"github.com/mihaiciobotaru/CarSurveillance/geom"
	"gocv.io/x/gocv"
)

// Vehicle class indices for models trained on the COCO dataset
const (
	ClassCar        = 2
	ClassMotorcycle = 3
	ClassBus        = 5
	ClassTruck      = 7
)

// Detector detects vehicles in a single image frame.  A frame with no
// vehicles returns an empty result, not an error
type Detector interface {
	Detect(img gocv.Mat) ([]Result, error)
	Close() error
}

// BoxRect are the dimensions of the bounding box of a detected vehicle in
// source image pixel space
type BoxRect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Center returns the center point of the bounding box
func (b BoxRect) Center() geom.Point {
	return geom.Pt((b.Left+b.Right)/2, (b.Top+b.Bottom)/2)
}

// Result defines the attributes of a single detected vehicle
type Result struct {
	// Class is the model class index of the detected object
	Class int
	// Box is the bounding box location of the vehicle
	Box BoxRect
	// Probability is the confidence score of the detection
	Probability float32
}

// Centers extracts the bounding box center points from detection results
func Centers(results []Result) []geom.Point {
	pts := make([]geom.Point, len(results))

	for i, r := range results {
		pts[i] = r.Box.Center()
	}

	return pts
}
