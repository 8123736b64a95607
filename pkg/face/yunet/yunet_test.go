package yunet

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// findModelPath looks for the model relative to the package directory.
func findModelPath() string {
	if p := os.Getenv("FACE_MODEL_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	p := filepath.Join("..", "..", "..", "model", "face_detection_yunet.onnx")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func TestNewInvalidPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/path/model.onnx"

	_, err := New(cfg)
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestDetectBlankFrame(t *testing.T) {
	modelPath := findModelPath()
	if modelPath == "" {
		t.Skip("YuNet model not found, skipping test")
	}

	cfg := DefaultConfig()
	cfg.ModelPath = modelPath
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer d.Close()

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	dets, err := d.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(dets) != 0 {
		t.Errorf("expected no faces in a solid frame, got %d", len(dets))
	}

	if _, err := d.Detect(nil); err == nil {
		t.Error("expected error for nil image")
	}
}
