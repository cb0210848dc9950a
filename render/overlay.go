// Package render draws calibration regions, detected vehicles and
// evaluation results onto image frames for visual inspection.  Rendering is
// optional, the occupancy and queue evaluations never depend on it.
package render

import (
	"fmt"
	"image"

	"github.com/mihaiciobotaru/CarSurveillance/detect"
	"github.com/mihaiciobotaru/CarSurveillance/geom"
	"gocv.io/x/gocv"
)

// Quadrilateral draws the calibration region outline on the image
func Quadrilateral(img *gocv.Mat, q geom.Quadrilateral, font Font, thickness int) {

	for _, edge := range q.Edges() {
		gocv.Line(img, edge.Start.ToImagePoint(), edge.End.ToImagePoint(),
			font.Color, thickness)
	}
}

// Points draws a filled circle at each point, with an optional label
func Points(img *gocv.Mat, pts []geom.Point, label string, font Font) {

	for _, p := range pts {
		gocv.Circle(img, p.ToImagePoint(), 5, font.Color, -1)

		if label != "" {
			gocv.PutText(img, label, image.Pt(p.X+10, p.Y),
				font.Face, font.Scale, font.Color, font.Thickness)
		}
	}
}

// DetectionBoxes draws the bounding box and confidence of each detected
// vehicle
func DetectionBoxes(img *gocv.Mat, results []detect.Result, font Font,
	thickness int) {

	for _, res := range results {
		rect := image.Rect(res.Box.Left, res.Box.Top,
			res.Box.Right, res.Box.Bottom)
		gocv.Rectangle(img, rect, font.Color, thickness)

		text := fmt.Sprintf("%.2f", res.Probability)
		gocv.PutText(img, text, image.Pt(res.Box.Left+10, res.Box.Top-10),
			font.Face, font.Scale, font.Color, font.Thickness)
	}
}

// SlotBands draws the parking slot separator lines and slot numbers on a
// canonical frame image.  Slot numbering matches the reversed reporting
// order, camera nearest slot is number one
func SlotBands(img *gocv.Mat, lines []float64, frameEdge float64, font Font) {

	width := img.Cols()

	for i, lineY := range lines {
		y := int(lineY)
		gocv.Line(img, image.Pt(0, y), image.Pt(width, y), font.Color, 1)

		slotNum := len(lines) - i
		gocv.PutText(img, fmt.Sprintf("P%d", slotNum),
			image.Pt(10, y+20), font.Face, font.Scale, font.Color,
			font.Thickness)
	}

	gocv.Line(img, image.Pt(0, int(frameEdge)-1),
		image.Pt(width, int(frameEdge)-1), font.Color, 1)
}

// OccupancyLabels writes the per slot occupancy states in the image corner.
// Slots are numbered from one, camera nearest slot first
func OccupancyLabels(img *gocv.Mat, slots []bool, font Font) {

	for i, occupied := range slots {
		state := "Free"

		if occupied {
			state = "Occupied"
		}

		text := fmt.Sprintf("P%d %s", i+1, state)
		gocv.PutText(img, text, image.Pt(10, 20+i*20),
			font.Face, font.Scale, font.Color, font.Thickness)
	}
}
