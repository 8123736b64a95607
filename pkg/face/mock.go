package face

import (
	"image"
	"sync/atomic"
)

// Mock implements Detector for testing.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	DetectFunc func(img image.Image) ([]Detection, error)

	calls atomic.Int64
}

// NewMock returns a detector that always reports the given faces.
func NewMock(dets ...Detection) *Mock {
	return &Mock{
		DetectFunc: func(image.Image) ([]Detection, error) { return dets, nil },
	}
}

// Detect calls DetectFunc and counts the call.
func (m *Mock) Detect(img image.Image) ([]Detection, error) {
	m.calls.Add(1)
	if m.DetectFunc != nil {
		return m.DetectFunc(img)
	}
	return nil, nil
}

// Close does nothing.
func (m *Mock) Close() error { return nil }

// Calls returns how many times Detect was called.
func (m *Mock) Calls() int {
	return int(m.calls.Load())
}

var _ Detector = (*Mock)(nil)
