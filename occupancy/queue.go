package occupancy

import (
	"sort"

	"github.com/mihaiciobotaru/CarSurveillance/geom"
)

// QueueParams defines the thresholds for counting queued vehicles in the
// canonical frame
type QueueParams struct {
	// NearThreshold is the canonical y distance from the queue head within
	// which a vehicle always joins the queue
	NearThreshold float64
	// GapThreshold is the maximum canonical y gap between consecutive
	// vehicles for the queue to continue.  A larger gap ends the queue even
	// when more vehicles are detected further back
	GapThreshold float64
}

// DefaultQueueParams returns the queue thresholds calibrated for the
// reference camera
func DefaultQueueParams() QueueParams {
	return QueueParams{
		NearThreshold: 120,
		GapThreshold:  150,
	}
}

// QueueCounter counts the contiguous run of queued vehicles from warped
// vehicle points
type QueueCounter struct {
	// Params are the queue thresholds
	Params QueueParams
}

// NewQueueCounter returns a QueueCounter for the given thresholds
func NewQueueCounter(p QueueParams) *QueueCounter {
	return &QueueCounter{
		Params: p,
	}
}

// Count returns the number of vehicles queued from the stop line.  Points
// are walked in ascending y order, each accepted while within NearThreshold
// of the head or within GapThreshold of the previously accepted vehicle.
// The walk stops at the first vehicle failing both conditions, detections
// beyond a gap never count even if closely spaced among themselves
func (q *QueueCounter) Count(points []geom.Point) int {

	if len(points) == 0 {
		return 0
	}

	sorted := make([]geom.Point, len(points))
	copy(sorted, points)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	count := 0
	lastY := 0.0

	for _, p := range sorted {
		y := float64(p.Y)

		if y >= q.Params.NearThreshold && y-lastY >= q.Params.GapThreshold {
			break
		}

		count++
		lastY = y
	}

	return count
}
