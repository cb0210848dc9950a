package preprocess

import (
	"testing"
)

func TestResizerPreCalc(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		destWidth     int
		destHeight    int
		expectedXPad  int
		expectedYPad  int
		expectedScale float32
	}{
		{1280, 720, 640, 640, 0, 140, 0.50},
		{800, 1000, 640, 640, 64, 0, 0.64},
		{800, 800, 640, 640, 0, 0, 0.8},
		{640, 640, 640, 640, 0, 0, 1.0},
	}

	for _, tc := range tests {
		r := NewResizer(tc.srcWidth, tc.srcHeight, tc.destWidth, tc.destHeight)

		if r.XPad() != tc.expectedXPad || r.YPad() != tc.expectedYPad {
			t.Errorf("src (%d, %d): padding = (%d, %d), want (%d, %d)",
				tc.srcWidth, tc.srcHeight, r.XPad(), r.YPad(),
				tc.expectedXPad, tc.expectedYPad)
		}

		if r.ScaleFactor() != tc.expectedScale {
			t.Errorf("src (%d, %d): scale = %f, want %f",
				tc.srcWidth, tc.srcHeight, r.ScaleFactor(), tc.expectedScale)
		}

		r.Close()
	}
}

func TestTranslateBox(t *testing.T) {

	// 1280x720 source letterboxed to 640x640 scales by 0.5 with a 140
	// pixel vertical pad
	r := NewResizer(1280, 720, 640, 640)
	defer r.Close()

	left, top, right, bottom := r.TranslateBox(100, 240, 200, 340)

	if left != 200 || right != 400 {
		t.Errorf("x translation = (%d, %d), want (200, 400)", left, right)
	}

	if top != 200 || bottom != 400 {
		t.Errorf("y translation = (%d, %d), want (200, 400)", top, bottom)
	}
}

func TestTranslateBoxClampsToSource(t *testing.T) {

	r := NewResizer(1280, 720, 640, 640)
	defer r.Close()

	// box partly inside the letterbox padding clamps to the source frame
	left, top, right, bottom := r.TranslateBox(-50, 0, 700, 640)

	if left != 0 || top != 0 {
		t.Errorf("top left = (%d, %d), want (0, 0)", left, top)
	}

	if right != 1280 || bottom != 720 {
		t.Errorf("bottom right = (%d, %d), want (1280, 720)", right, bottom)
	}
}
