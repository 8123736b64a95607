package camera

import "errors"

var (
	// ErrUnavailable is returned when no device could be bound.
	ErrUnavailable = errors.New("camera: no usable device")

	// ErrReadFailed is returned when a bound device yields no frame.
	ErrReadFailed = errors.New("camera: frame read failed")

	// ErrOpenFailed is returned by openers when a device index cannot be opened.
	ErrOpenFailed = errors.New("camera: device open failed")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("camera: source closed")
)
