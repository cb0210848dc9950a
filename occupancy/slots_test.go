package occupancy

import (
	"testing"

	"github.com/mihaiciobotaru/CarSurveillance/geom"
)

func TestSlotCheck(t *testing.T) {

	tests := []struct {
		name   string
		params SlotParams
		points []geom.Point
		want   []bool
	}{
		{
			name:   "three bands two occupied",
			params: SlotParams{Lines: []float64{10, 100, 192}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 5), geom.Pt(0, 150), geom.Pt(0, 500)},
			// y=5 is above the first line and counts nowhere, y=150 falls in
			// band two and y=500 in band three, pre reversal [false, true, true]
			want: []bool{true, true, false},
		},
		{
			name:   "reversal with asymmetric result",
			params: SlotParams{Lines: []float64{0, 50}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 10)},
			// pre reversal [true, false], camera nearest band reports first
			want: []bool{false, true},
		},
		{
			name:   "no points all free",
			params: DefaultSlotParams(),
			points: nil,
			want: []bool{false, false, false, false, false,
				false, false, false, false, false},
		},
		{
			name:   "point above first line counts nowhere",
			params: SlotParams{Lines: []float64{100, 200}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 50)},
			want:   []bool{false, false},
		},
		{
			name:   "boundary equality at band start is occupied",
			params: SlotParams{Lines: []float64{100, 200}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 100)},
			want:   []bool{false, true},
		},
		{
			name:   "shared boundary marks both bands occupied",
			params: SlotParams{Lines: []float64{100, 200}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 200)},
			want:   []bool{true, true},
		},
		{
			name:   "frame edge closes the last band inclusively",
			params: SlotParams{Lines: []float64{100, 200}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 1000)},
			want:   []bool{true, false},
		},
		{
			name:   "point beyond frame edge counts nowhere",
			params: SlotParams{Lines: []float64{100, 200}, FrameEdge: 1000},
			points: []geom.Point{geom.Pt(0, 1001)},
			want:   []bool{false, false},
		},
		{
			name:   "default layout middle slot",
			params: DefaultSlotParams(),
			points: []geom.Point{geom.Pt(0, 400)},
			// y=400 is in band four of ten, reported as slot six
			want: []bool{false, false, false, false, false,
				true, false, false, false, false},
		},
	}

	for _, tc := range tests {
		checker := NewSlotChecker(tc.params)
		got := checker.Check(tc.points)

		if len(got) != len(tc.want) {
			t.Errorf("%s: Check() returned %d slots, want %d",
				tc.name, len(got), len(tc.want))
			continue
		}

		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: slot %d = %v, want %v",
					tc.name, i+1, got[i], tc.want[i])
			}
		}
	}
}
