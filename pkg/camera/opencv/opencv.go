// Package opencv opens local video devices through gocv.
package opencv

import (
	"fmt"
	"image"
	"sync"

	"github.com/teslashibe/moodcam/pkg/camera"
	"gocv.io/x/gocv"
)

// Device wraps a gocv.VideoCapture and reuses one Mat across reads.
type Device struct {
	index int
	cap   *gocv.VideoCapture
	mu    sync.Mutex
	mat   gocv.Mat
}

// Opener returns a camera.Opener that requests the given capture size.
// A width or height of zero keeps the device default.
func Opener(width, height int) camera.Opener {
	return func(index int) (camera.Device, error) {
		return Open(index, width, height)
	}
}

// Open opens the device at index.
func Open(index, width, height int) (*Device, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("%w: index %d: %v", camera.ErrOpenFailed, index, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: index %d", camera.ErrOpenFailed, index)
	}

	if width > 0 && height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	return &Device{
		index: index,
		cap:   vc,
		mat:   gocv.NewMat(),
	}, nil
}

// Read grabs one frame and converts it to an image.
func (d *Device) Read() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cap == nil {
		return nil, camera.ErrClosed
	}
	if ok := d.cap.Read(&d.mat); !ok || d.mat.Empty() {
		return nil, fmt.Errorf("%w: index %d: empty frame", camera.ErrReadFailed, d.index)
	}

	img, err := d.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: index %d: convert: %v", camera.ErrReadFailed, d.index, err)
	}
	return img, nil
}

// Close releases the capture handle.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cap == nil {
		return nil
	}
	err := d.cap.Close()
	d.cap = nil
	d.mat.Close()
	return err
}

var _ camera.Device = (*Device)(nil)
