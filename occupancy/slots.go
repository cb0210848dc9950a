package occupancy

import (
	"github.com/mihaiciobotaru/CarSurveillance/geom"
)

// SlotParams defines the parking slot band layout in the canonical frame
type SlotParams struct {
	// Lines are the ascending y coordinates, in canonical frame units, of
	// the lines separating parking slots.  Each line opens a band reaching
	// to the next line, the final band reaches to FrameEdge
	Lines []float64
	// FrameEdge is the far edge of the canonical frame closing the last band
	FrameEdge float64
}

// DefaultSlotParams returns the slot layout calibrated for the reference
// camera, ten slots across the canonical frame
func DefaultSlotParams() SlotParams {
	return SlotParams{
		Lines:     []float64{10, 100, 192, 290, 385, 480, 580, 680, 785, 890},
		FrameEdge: 1000,
	}
}

// SlotChecker evaluates per slot occupancy from warped vehicle points
type SlotChecker struct {
	// Params is the slot band layout
	Params SlotParams
}

// NewSlotChecker returns a SlotChecker for the given band layout
func NewSlotChecker(p SlotParams) *SlotChecker {
	return &SlotChecker{
		Params: p,
	}
}

// Check reports the occupancy of each parking slot.  A slot is occupied when
// any point's y coordinate falls inside its band, with boundary equality at
// either end counting as occupied.  A point on the exact line shared by two
// bands marks both occupied, the policy prefers a false occupied over a
// false free at slot boundaries.
//
// The returned slice is ordered camera nearest slot first, matching the
// externally numbered slot indices, which is the reverse of the band order
func (s *SlotChecker) Check(points []geom.Point) []bool {

	slots := make([]bool, len(s.Params.Lines))

	for i, lineY := range s.Params.Lines {
		nextLineY := s.Params.FrameEdge

		if i+1 < len(s.Params.Lines) {
			nextLineY = s.Params.Lines[i+1]
		}

		for _, p := range points {
			y := float64(p.Y)

			if y >= lineY && y <= nextLineY {
				slots[i] = true
				break
			}
		}
	}

	// reverse so the camera nearest slot reports first
	for i, j := 0, len(slots)-1; i < j; i, j = i+1, j-1 {
		slots[i], slots[j] = slots[j], slots[i]
	}

	return slots
}
