package detect

import (
	"math"
	"testing"
)

func TestBoxRectCenter(t *testing.T) {

	tests := []struct {
		box   BoxRect
		wantX int
		wantY int
	}{
		{BoxRect{Left: 0, Top: 0, Right: 100, Bottom: 50}, 50, 25},
		{BoxRect{Left: 10, Top: 20, Right: 30, Bottom: 40}, 20, 30},
		{BoxRect{Left: 5, Top: 5, Right: 5, Bottom: 5}, 5, 5},
	}

	for _, tc := range tests {
		c := tc.box.Center()

		if c.X != tc.wantX || c.Y != tc.wantY {
			t.Errorf("Center(%+v) = %v, want (%d, %d)",
				tc.box, c, tc.wantX, tc.wantY)
		}
	}
}

func TestCenters(t *testing.T) {

	results := []Result{
		{Box: BoxRect{Left: 0, Top: 0, Right: 10, Bottom: 10}},
		{Box: BoxRect{Left: 100, Top: 200, Right: 120, Bottom: 240}},
	}

	centers := Centers(results)

	if len(centers) != 2 {
		t.Fatalf("Centers() returned %d points, want 2", len(centers))
	}

	if centers[0].X != 5 || centers[0].Y != 5 {
		t.Errorf("first center = %v, want (5, 5)", centers[0])
	}

	if centers[1].X != 110 || centers[1].Y != 220 {
		t.Errorf("second center = %v, want (110, 220)", centers[1])
	}
}

func TestNMSSuppressesOverlaps(t *testing.T) {

	cands := []candidate{
		// two heavily overlapping cars, lower score must be dropped
		{class: ClassCar, score: 0.9, left: 100, top: 100, right: 200, bottm: 200},
		{class: ClassCar, score: 0.6, left: 105, top: 105, right: 205, bottm: 205},
		// distinct car elsewhere survives
		{class: ClassCar, score: 0.5, left: 400, top: 400, right: 500, bottm: 500},
	}

	kept := nms(cands, 0.35)

	if len(kept) != 2 {
		t.Fatalf("nms() kept %d boxes, want 2", len(kept))
	}

	if kept[0].score != 0.9 || kept[1].score != 0.5 {
		t.Errorf("nms() kept scores %.1f, %.1f, want 0.9, 0.5",
			kept[0].score, kept[1].score)
	}
}

func TestNMSKeepsDifferentClasses(t *testing.T) {

	// same location, different classes, suppression is per class
	cands := []candidate{
		{class: ClassCar, score: 0.9, left: 100, top: 100, right: 200, bottm: 200},
		{class: ClassTruck, score: 0.6, left: 100, top: 100, right: 200, bottm: 200},
	}

	kept := nms(cands, 0.35)

	if len(kept) != 2 {
		t.Errorf("nms() kept %d boxes, want 2", len(kept))
	}
}

func TestCalculateOverlap(t *testing.T) {

	a := candidate{left: 0, top: 0, right: 99, bottm: 99}

	// identical boxes overlap fully
	if iou := calculateOverlap(a, a); math.Abs(float64(iou)-1.0) > 1e-6 {
		t.Errorf("identical boxes IoU = %f, want 1.0", iou)
	}

	// disjoint boxes do not overlap
	b := candidate{left: 500, top: 500, right: 599, bottm: 599}

	if iou := calculateOverlap(a, b); iou != 0 {
		t.Errorf("disjoint boxes IoU = %f, want 0", iou)
	}
}

func TestFloat16BufferRoundTrip(t *testing.T) {

	values := []float32{0, 1, -1, 0.5, 120.0, 0.25}

	buf := make([]byte, len(values)*2)
	f32ToF16Buf(values, buf)
	got := f16BufToFloat32(buf)

	if len(got) != len(values) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(values))
	}

	for i := range values {
		// half precision resolves these values exactly
		if got[i] != values[i] {
			t.Errorf("value %d = %f, want %f", i, got[i], values[i])
		}
	}
}
