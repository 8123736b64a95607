package classifier

import (
	"context"
	"sync"
	"time"

	"github.com/teslashibe/moodcam/pkg/emotions"
)

// Mock implements Classifier for testing.
type Mock struct {
	// PredictFunc is called when Predict is invoked.
	PredictFunc func(ctx context.Context, input []float32) ([]float32, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Time   time.Time
}

// NewMock creates a mock that always scores the given label highest.
func NewMock(label emotions.Label) *Mock {
	return &Mock{
		PredictFunc: func(ctx context.Context, input []float32) ([]float32, error) {
			return OneHot(label, 0.9), nil
		},
	}
}

// WithError returns a mock whose forward pass always fails.
func WithError(err error) *Mock {
	return &Mock{
		PredictFunc: func(ctx context.Context, input []float32) ([]float32, error) {
			return nil, err
		},
	}
}

// Predict calls PredictFunc and records the call.
func (m *Mock) Predict(ctx context.Context, input []float32) ([]float32, error) {
	m.record("Predict")
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, input)
	}
	return nil, ErrInference
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.record("Close")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Time: time.Now()})
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// OneHot builds a distribution with weight on label and the rest spread
// evenly over the other labels.
func OneHot(label emotions.Label, weight float32) []float32 {
	out := make([]float32, emotions.Count)
	rest := (1 - weight) / float32(emotions.Count-1)
	for i := range out {
		out[i] = rest
	}
	if idx := label.Index(); idx >= 0 {
		out[idx] = weight
	}
	return out
}

// Verify Mock implements Classifier at compile time.
var _ Classifier = (*Mock)(nil)
