// Package yunet detects faces with OpenCV's FaceDetectorYN.
package yunet

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/teslashibe/moodcam/pkg/face"
	"gocv.io/x/gocv"
)

// ErrModelNotFound is returned when the YuNet model file is missing.
var ErrModelNotFound = errors.New("yunet: model not found")

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Initial model input width
	InputHeight      int     // Initial model input height
}

// DefaultConfig returns defaults for the 2023 YuNet release.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "model/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// Detector wraps gocv.FaceDetectorYN. Detection is serialized.
type Detector struct {
	detector gocv.FaceDetectorYN
	mu       sync.Mutex
}

// New loads the YuNet model.
func New(cfg Config) (*Detector, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	// Input size is updated per frame in Detect.
	det := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &Detector{detector: det}, nil
}

// Detect finds faces in img. Boxes are normalized to the frame size.
func (d *Detector) Detect(img image.Image) ([]face.Detection, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("yunet: empty image")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("yunet: convert frame: %w", err)
	}
	defer mat.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	imgW := float64(mat.Cols())
	imgH := float64(mat.Rows())
	d.detector.SetInputSize(image.Pt(mat.Cols(), mat.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(mat, &faces)

	// One row per face: x, y, w, h, five landmark pairs, score.
	dets := make([]face.Detection, 0, faces.Rows())
	for r := 0; r < faces.Rows(); r++ {
		dets = append(dets, face.Detection{
			X:          float64(faces.GetFloatAt(r, 0)) / imgW,
			Y:          float64(faces.GetFloatAt(r, 1)) / imgH,
			W:          float64(faces.GetFloatAt(r, 2)) / imgW,
			H:          float64(faces.GetFloatAt(r, 3)) / imgH,
			Confidence: float64(faces.GetFloatAt(r, 14)),
		})
	}
	return dets, nil
}

// Close releases the detector resources
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}

var _ face.Detector = (*Detector)(nil)
