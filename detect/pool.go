package detect

import (
	"sync"
)

// Pool holds multiple detector instances of the same model so batch drivers
// can run detection on independent frames in parallel
type Pool struct {
	// pool of detectors
	detectors chan Detector
	// size of pool
	size int

	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool of size YOLOv8 detectors for the given model file
func NewPool(size int, modelFile string, params YOLOv8Params) (*Pool, error) {
	p := &Pool{
		detectors: make(chan Detector, size),
		size:      size,
	}

	for i := 0; i < size; i++ {
		det, err := NewYOLOv8(modelFile, params)

		if err != nil {
			// close any instances created before receiving the error
			p.Close()
			return nil, err
		}

		p.Return(det)
	}

	return p, nil
}

// Get a detector from the pool, blocking until one is available
func (p *Pool) Get() Detector {
	return <-p.detectors
}

// Return a detector to the pool.  A detector returned after the pool has
// been closed is closed itself instead of requeued
func (p *Pool) Return(det Detector) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		det.Close()
		return
	}

	select {
	case p.detectors <- det:
	default:
		// pool is full
	}
}

// Close the pool and all detectors in it
func (p *Pool) Close() {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return
	}

	p.closed = true
	p.mu.Unlock()

	close(p.detectors)

	for det := range p.detectors {
		det.Close()
	}
}
