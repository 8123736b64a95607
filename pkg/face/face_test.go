package face

import (
	"errors"
	"image"
	"testing"
)

func TestDetectionCenter(t *testing.T) {
	tests := []struct {
		name    string
		det     Detection
		expectX float64
		expectY float64
	}{
		{"center of image", Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}, 0.5, 0.5},
		{"top left corner", Detection{X: 0, Y: 0, W: 0.2, H: 0.2}, 0.1, 0.1},
		{"bottom right corner", Detection{X: 0.8, Y: 0.8, W: 0.2, H: 0.2}, 0.9, 0.9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.det.Center()
			if x != tc.expectX || y != tc.expectY {
				t.Errorf("Center() = (%.2f, %.2f), want (%.2f, %.2f)", x, y, tc.expectX, tc.expectY)
			}
		})
	}
}

func TestSelectBest(t *testing.T) {
	if SelectBest(nil) != nil {
		t.Error("expected nil for no detections")
	}

	dets := []Detection{
		{X: 0, Y: 0, W: 0.1, H: 0.1, Confidence: 0.95},
		{X: 0.5, Y: 0.5, W: 0.4, H: 0.4, Confidence: 0.9},
	}
	best := SelectBest(dets)
	if best == nil || best.W != 0.4 {
		t.Errorf("expected the larger face, got %+v", best)
	}

	one := []Detection{{W: 0.1, H: 0.1, Confidence: 0.2}}
	if SelectBest(one) != &one[0] {
		t.Error("single detection should be returned as-is")
	}
}

func TestRect(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)

	tests := []struct {
		name   string
		det    Detection
		margin float64
		want   image.Rectangle
	}{
		{"no margin", Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}, 0, image.Rect(160, 120, 480, 360)},
		{"with margin", Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}, 0.1, image.Rect(128, 96, 512, 384)},
		{"clipped", Detection{X: 0.9, Y: 0.9, W: 0.2, H: 0.2}, 0, image.Rect(576, 432, 640, 480)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.det.Rect(bounds, tc.margin); got != tc.want {
				t.Errorf("Rect() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	out := Crop(img, Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}, 0)
	if out.Bounds() != image.Rect(160, 120, 480, 360) {
		t.Errorf("crop bounds = %v", out.Bounds())
	}

	// Outside the frame: whole image back.
	out = Crop(img, Detection{X: 2, Y: 2, W: 0.1, H: 0.1}, 0)
	if out.Bounds() != img.Bounds() {
		t.Errorf("expected whole frame, got %v", out.Bounds())
	}
}

func TestCropBest(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	out, found, err := CropBest(NewMock(Detection{X: 0.5, Y: 0.5, W: 0.5, H: 0.5, Confidence: 0.9}), img, 0)
	if err != nil || !found || out.Bounds() != image.Rect(50, 50, 100, 100) {
		t.Errorf("CropBest = %v, %v, %v", out.Bounds(), found, err)
	}

	out, found, err = CropBest(NewMock(), img, 0)
	if err != nil || found || out != image.Image(img) {
		t.Errorf("no faces should return the frame, got %v, %v", found, err)
	}

	failing := &Mock{DetectFunc: func(image.Image) ([]Detection, error) { return nil, errors.New("boom") }}
	out, found, err = CropBest(failing, img, 0)
	if err == nil || found || out != image.Image(img) {
		t.Errorf("detector error should return the frame and the error")
	}
}
