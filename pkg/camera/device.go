package camera

import "image"

// Device is an opened video device.
type Device interface {
	// Read blocks until a frame is available. No timeout is applied.
	Read() (image.Image, error)

	// Close releases the device.
	Close() error
}

// Opener opens the device at the given index.
type Opener func(index int) (Device, error)
