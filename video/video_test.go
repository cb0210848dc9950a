package video

import (
	"testing"

	"gocv.io/x/gocv"
)

// frameReader hands out copies of a template Mat a fixed number of times,
// standing in for a VideoCapture read loop
func frameReader(template gocv.Mat, frames int) func(*gocv.Mat) bool {
	served := 0

	return func(m *gocv.Mat) bool {

		if served >= frames {
			return false
		}

		served++
		template.CopyTo(m)
		return true
	}
}

func TestReadLastClosesSupersededFrames(t *testing.T) {

	template := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8U)
	defer template.Close()

	// the Mat left over from a failed direct seek
	prev := gocv.NewMat()

	frame, got := readLast(frameReader(template, 3), prev)

	if !got {
		t.Fatal("readLast() got = false, want true")
	}

	defer frame.Close()

	if frame.Empty() {
		t.Error("readLast() returned an empty frame")
	}

	if !prev.Closed() {
		t.Error("readLast() left the superseded seek Mat open")
	}
}

func TestReadLastNoFrames(t *testing.T) {

	template := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8U)
	defer template.Close()

	prev := gocv.NewMat()
	defer prev.Close()

	frame, got := readLast(frameReader(template, 0), prev)

	if got {
		t.Fatal("readLast() got = true, want false")
	}

	if frame.Closed() {
		t.Error("readLast() closed the caller's Mat with no frames read")
	}
}
