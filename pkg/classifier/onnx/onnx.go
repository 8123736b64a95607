// Package onnx runs the emotion classifier through OpenCV's dnn module.
package onnx

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/teslashibe/moodcam/pkg/classifier"
	"gocv.io/x/gocv"
)

// Config holds model loading options.
type Config struct {
	ModelPath string

	// Logger for load events. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the stock model location.
func DefaultConfig() Config {
	return Config{ModelPath: "model/emotion_model.onnx"}
}

// Net is a loaded ONNX classifier. Forward passes are serialized.
type Net struct {
	net    gocv.Net
	path   string
	mu     sync.Mutex
	closed bool
}

// Load reads the model once. A missing file yields classifier.ErrModelNotFound.
func Load(cfg Config) (*Net, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "classifier.onnx")

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", classifier.ErrModelNotFound, cfg.ModelPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", classifier.ErrModelLoad, cfg.ModelPath, err)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("%w: %s", classifier.ErrModelLoad, cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	logger.Info("emotion model loaded", "path", cfg.ModelPath)
	return &Net{net: net, path: cfg.ModelPath}, nil
}

// Predict runs one forward pass over a 48x48 row-major grayscale input.
func (n *Net) Predict(ctx context.Context, input []float32) ([]float32, error) {
	if len(input) != classifier.InputSize*classifier.InputSize {
		return nil, fmt.Errorf("%w: input has %d values, want %d",
			classifier.ErrInference, len(input), classifier.InputSize*classifier.InputSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, classifier.ErrClosed
	}

	img, err := gocv.NewMatFromBytes(classifier.InputSize, classifier.InputSize, gocv.MatTypeCV32F, float32Bytes(input))
	if err != nil {
		return nil, fmt.Errorf("%w: build input: %v", classifier.ErrInference, err)
	}
	defer img.Close()

	// NCHW 1x1x48x48, no further scaling.
	blob := gocv.BlobFromImage(img, 1.0, image.Pt(classifier.InputSize, classifier.InputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	n.net.SetInput(blob, "")
	output := n.net.Forward("")
	defer output.Close()

	if output.Empty() {
		return nil, fmt.Errorf("%w: empty output", classifier.ErrInference)
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %v", classifier.ErrInference, err)
	}

	// data aliases the Mat; copy before it is closed.
	scores := make([]float32, len(data))
	copy(scores, data)
	return scores, nil
}

// Path returns the model file location.
func (n *Net) Path() string {
	return n.path
}

// Close releases the network.
func (n *Net) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.net.Close()
}

func float32Bytes(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

var _ classifier.Classifier = (*Net)(nil)
