package carsurveillance

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mihaiciobotaru/CarSurveillance/geom"
	"github.com/mihaiciobotaru/CarSurveillance/occupancy"
)

// Calibration holds the fixed geometry for one camera view.  Values are in
// pixel coordinates of the frame after it has been resized to FrameWidth,
// except the slot and queue parameters which are in canonical frame units.
// A Calibration is created once and never mutated
type Calibration struct {
	// FrameWidth is the width frames are scaled to, preserving aspect
	// ratio, before detection and geometry are applied
	FrameWidth int `json:"frame_width"`
	// ParkingRegion is the quadrilateral covering the parking spaces
	ParkingRegion geom.Quadrilateral `json:"parking_region"`
	// Slots is the parking slot band layout in the canonical frame
	Slots occupancy.SlotParams `json:"slots"`
	// QueueRegion is the quadrilateral covering the vehicle queue at the
	// traffic light
	QueueRegion geom.Quadrilateral `json:"queue_region"`
	// Queue holds the queue counting thresholds in the canonical frame
	Queue occupancy.QueueParams `json:"queue"`
}

// DefaultCalibration returns the calibration for the reference camera view
func DefaultCalibration() Calibration {
	parking := geom.Quadrilateral{
		TopLeft:     geom.Pt(410, 230),
		TopRight:    geom.Pt(455, 210),
		BottomRight: geom.Pt(915, 500),
		BottomLeft:  geom.Pt(915, 600),
	}

	return Calibration{
		FrameWidth:    1000,
		ParkingRegion: parking,
		Slots:         occupancy.DefaultSlotParams(),
		QueueRegion:   parking,
		Queue:         occupancy.DefaultQueueParams(),
	}
}

// Validate checks the calibration regions are usable for perspective
// correction
func (c Calibration) Validate() error {

	if c.FrameWidth <= 0 {
		return fmt.Errorf("frame width must be positive, got %d", c.FrameWidth)
	}

	if err := c.ParkingRegion.Validate(); err != nil {
		return fmt.Errorf("parking region: %w", err)
	}

	if err := c.QueueRegion.Validate(); err != nil {
		return fmt.Errorf("queue region: %w", err)
	}

	for i := 1; i < len(c.Slots.Lines); i++ {
		if c.Slots.Lines[i] <= c.Slots.Lines[i-1] {
			return fmt.Errorf("slot lines must be strictly ascending, "+
				"line %d (%.0f) not above line %d (%.0f)",
				i, c.Slots.Lines[i], i-1, c.Slots.Lines[i-1])
		}
	}

	return nil
}

// LoadCalibration reads a camera calibration from the given JSON file
func LoadCalibration(file string) (Calibration, error) {

	data, err := os.ReadFile(file)

	if err != nil {
		return Calibration{}, fmt.Errorf("error opening file: %w", err)
	}

	var c Calibration

	if err := json.Unmarshal(data, &c); err != nil {
		return Calibration{}, fmt.Errorf("error parsing calibration: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Calibration{}, err
	}

	return c, nil
}
