// Package video provides frame retrieval from surveillance video files.
// Queue length evaluation only ever needs the final frame of each clip, so
// the package favours direct last frame retrieval over full decoding.
package video

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrNoFrames is returned when a video file yields no decodable frames
var ErrNoFrames = errors.New("video contains no decodable frames")

// LastFrame returns the final decodable frame of the video file.  It seeks
// using the container's frame count where available and falls back to
// sequential reading when the count is unreliable.  Caller must Close the
// returned Mat
func LastFrame(file string) (gocv.Mat, error) {

	vc, err := gocv.VideoCaptureFile(file)

	if err != nil {
		return gocv.Mat{}, fmt.Errorf("error opening video file %s: %w", file, err)
	}

	defer vc.Close()

	frame := gocv.NewMat()

	// try seeking straight to the last frame
	count := int(vc.Get(gocv.VideoCapturePosFrames))
	total := int(vc.Get(gocv.VideoCaptureFrameCount))

	if total > 0 {
		vc.Set(gocv.VideoCapturePosFrames, float64(total-1))

		if vc.Read(&frame) && !frame.Empty() {
			return frame, nil
		}

		// seek failed, rewind and fall through to sequential read
		vc.Set(gocv.VideoCapturePosFrames, float64(count))
	}

	// sequential fallback, keep the most recent good frame
	frame, got := readLast(vc.Read, frame)

	if !got {
		frame.Close()
		return gocv.Mat{}, fmt.Errorf("%w: %s", ErrNoFrames, file)
	}

	return frame, nil
}

// readLast reads frames until decoding fails and returns the last good one.
// Each superseded Mat is closed, including prev which holds whatever the
// caller's failed direct seek left behind.  When no frame decodes, prev is
// returned untouched with got false and stays the caller's to close
func readLast(read func(*gocv.Mat) bool, prev gocv.Mat) (frame gocv.Mat, got bool) {

	frame = prev

	for {
		next := gocv.NewMat()

		if !read(&next) || next.Empty() {
			next.Close()
			break
		}

		frame.Close()

		frame = next
		got = true
	}

	return frame, got
}

// EachFrame reads the video sequentially, calling fn for every decodable
// frame.  The Mat passed to fn is only valid for the duration of the call
func EachFrame(file string, fn func(frame gocv.Mat) error) error {

	vc, err := gocv.VideoCaptureFile(file)

	if err != nil {
		return fmt.Errorf("error opening video file %s: %w", file, err)
	}

	defer vc.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	for vc.Read(&frame) {

		if frame.Empty() {
			continue
		}

		if err := fn(frame); err != nil {
			return err
		}
	}

	return nil
}
