package carsurveillance

import (
	"fmt"
	"image"

	"github.com/mihaiciobotaru/CarSurveillance/detect"
	"github.com/mihaiciobotaru/CarSurveillance/geom"
	"github.com/mihaiciobotaru/CarSurveillance/occupancy"
	"gocv.io/x/gocv"
)

// Processor evaluates parking occupancy and queue length for a single
// camera view.  It is safe to use one Processor per goroutine, each holding
// its own Detector, as evaluations share no mutable state
type Processor struct {
	// Detector finds vehicles in camera frames
	Detector detect.Detector
	// Calibration is the fixed camera geometry
	Calibration Calibration

	slots *occupancy.SlotChecker
	queue *occupancy.QueueCounter
}

// NewProcessor returns a Processor for the given detector and camera
// calibration
func NewProcessor(det detect.Detector, calib Calibration) (*Processor, error) {

	if err := calib.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration: %w", err)
	}

	return &Processor{
		Detector:    det,
		Calibration: calib,
		slots:       occupancy.NewSlotChecker(calib.Slots),
		queue:       occupancy.NewQueueCounter(calib.Queue),
	}, nil
}

// PrepareFrame scales the raw camera frame to the calibration frame width,
// preserving aspect ratio.  All calibration coordinates are defined in this
// scaled space.  Caller must Close the returned Mat
func (p *Processor) PrepareFrame(img gocv.Mat) gocv.Mat {

	scaled := gocv.NewMat()

	if img.Cols() == p.Calibration.FrameWidth {
		img.CopyTo(&scaled)
		return scaled
	}

	ratio := float64(p.Calibration.FrameWidth) / float64(img.Cols())
	height := int(float64(img.Rows()) * ratio)

	gocv.Resize(img, &scaled, image.Pt(p.Calibration.FrameWidth, height),
		0, 0, gocv.InterpolationArea)

	return scaled
}

// DetectVehicles runs the detector over the prepared frame and returns the
// vehicle center points.  Zero vehicles is a valid result
func (p *Processor) DetectVehicles(frame gocv.Mat) ([]geom.Point, error) {

	results, err := p.Detector.Detect(frame)

	if err != nil {
		return nil, fmt.Errorf("vehicle detection: %w", err)
	}

	return detect.Centers(results), nil
}

// ParkingStatus evaluates the occupancy of every parking slot in the raw
// camera frame.  The returned slice is ordered camera nearest slot first
func (p *Processor) ParkingStatus(img gocv.Mat) ([]bool, error) {

	frame := p.PrepareFrame(img)
	defer frame.Close()

	centers, err := p.DetectVehicles(frame)

	if err != nil {
		return nil, err
	}

	return p.ParkingStatusFromPoints(centers)
}

// ParkingStatusFromPoints evaluates slot occupancy from already detected
// vehicle center points in prepared frame coordinates
func (p *Processor) ParkingStatusFromPoints(centers []geom.Point) ([]bool, error) {

	warped, _, err := occupancy.ExtractPoints(p.Calibration.ParkingRegion, centers)

	if err != nil {
		return nil, err
	}

	return p.slots.Check(warped), nil
}

// QueueLength counts the vehicles queued at the traffic light in the raw
// camera frame
func (p *Processor) QueueLength(img gocv.Mat) (int, error) {

	frame := p.PrepareFrame(img)
	defer frame.Close()

	centers, err := p.DetectVehicles(frame)

	if err != nil {
		return 0, err
	}

	return p.QueueLengthFromPoints(centers)
}

// QueueLengthFromPoints counts queued vehicles from already detected
// vehicle center points in prepared frame coordinates
func (p *Processor) QueueLengthFromPoints(centers []geom.Point) (int, error) {

	warped, _, err := occupancy.ExtractPoints(p.Calibration.QueueRegion, centers)

	if err != nil {
		return 0, err
	}

	return p.queue.Count(warped), nil
}
