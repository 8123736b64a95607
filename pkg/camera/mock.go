package camera

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// MockDevice implements Device for testing.
type MockDevice struct {
	// ReadFunc is called when Read is invoked.
	ReadFunc func() (image.Image, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu     sync.Mutex
	reads  int
	closes int
}

// NewMockDevice returns a device that always yields a solid frame of the
// given size.
func NewMockDevice(width, height int) *MockDevice {
	frame := SolidFrame(width, height, color.RGBA{R: 90, G: 120, B: 150, A: 255})
	return &MockDevice{
		ReadFunc: func() (image.Image, error) { return frame, nil },
	}
}

// FailingDevice returns a device that opens but never yields a frame.
func FailingDevice(err error) *MockDevice {
	return &MockDevice{
		ReadFunc: func() (image.Image, error) { return nil, err },
	}
}

// Read calls ReadFunc and records the call.
func (d *MockDevice) Read() (image.Image, error) {
	d.mu.Lock()
	d.reads++
	fn := d.ReadFunc
	d.mu.Unlock()

	if fn == nil {
		return nil, ErrReadFailed
	}
	return fn()
}

// Close calls CloseFunc and records the call.
func (d *MockDevice) Close() error {
	d.mu.Lock()
	d.closes++
	fn := d.CloseFunc
	d.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return nil
}

// Reads returns how many times Read was called.
func (d *MockDevice) Reads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads
}

// Closes returns how many times Close was called.
func (d *MockDevice) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// MockOpener hands out MockDevices by index and records open attempts.
// Indices without a device fail to open.
type MockOpener struct {
	Devices map[int]*MockDevice

	mu     sync.Mutex
	opened []int
}

// NewMockOpener creates an opener with the given devices.
func NewMockOpener(devices map[int]*MockDevice) *MockOpener {
	if devices == nil {
		devices = make(map[int]*MockDevice)
	}
	return &MockOpener{Devices: devices}
}

// Open implements Opener.
func (o *MockOpener) Open(index int) (Device, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.opened = append(o.opened, index)
	dev, ok := o.Devices[index]
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrOpenFailed, index)
	}
	return dev, nil
}

// Opened returns the indices Open was called with, in order.
func (o *MockOpener) Opened() []int {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]int, len(o.opened))
	copy(out, o.opened)
	return out
}

// SolidFrame builds a frame filled with one color.
func SolidFrame(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
