package detect

import (
	"testing"

	"gocv.io/x/gocv"
)

// stubDetector stands in for a model-backed detector in lifecycle tests
type stubDetector struct {
	closed bool
}

func (s *stubDetector) Detect(img gocv.Mat) ([]Result, error) {
	return nil, nil
}

func (s *stubDetector) Close() error {
	s.closed = true
	return nil
}

func TestPoolGetReturn(t *testing.T) {

	p := &Pool{
		detectors: make(chan Detector, 1),
		size:      1,
	}

	det := &stubDetector{}
	p.Return(det)

	if got := p.Get(); got != det {
		t.Errorf("Get() = %v, want the returned detector", got)
	}

	p.Return(det)
	p.Close()

	if !det.closed {
		t.Error("Close() did not close the pooled detector")
	}
}

func TestPoolReturnAfterClose(t *testing.T) {

	p := &Pool{
		detectors: make(chan Detector, 1),
		size:      1,
	}

	p.Close()

	// a detector straggling back after Close must be closed, not requeued,
	// and must not panic on the closed channel
	det := &stubDetector{}
	p.Return(det)

	if !det.closed {
		t.Error("Return() after Close() did not close the detector")
	}
}

func TestPoolCloseTwice(t *testing.T) {

	p := &Pool{
		detectors: make(chan Detector, 1),
		size:      1,
	}

	p.Return(&stubDetector{})

	p.Close()
	p.Close()
}
