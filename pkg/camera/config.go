// Package camera provides best-effort access to a local video device.
//
// A Source probes device indices once, binds to the first one that opens and
// yields a frame, and keeps it for the process lifetime. If no index works the
// Source is permanently unavailable; there is no re-probing or hot-plug
// detection.
package camera

import "fmt"

// Frame size used when the device does not report one.
const (
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultMaxIndex = 5
)

// Config holds camera probing parameters.
type Config struct {
	// PreferredIndex is tried first when >= 0.
	PreferredIndex int `json:"preferred_index"`

	// MaxIndex bounds the probe to indices [0, MaxIndex).
	MaxIndex int `json:"max_index"`

	// Requested capture size. Devices may ignore it.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultConfig probes indices 0-4 with no preference at 640x480.
func DefaultConfig() Config {
	return Config{
		PreferredIndex: -1,
		MaxIndex:       DefaultMaxIndex,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.MaxIndex < 1 {
		errors = append(errors, "max_index must be at least 1")
	}
	if c.PreferredIndex < -1 {
		errors = append(errors, "preferred_index must be -1 (none) or a device index")
	}
	if c.Width < 160 || c.Height < 120 {
		errors = append(errors, fmt.Sprintf("frame size %dx%d is below 160x120", c.Width, c.Height))
	}

	return errors
}

// Candidates returns the probe order: the preferred index first, then
// 0..MaxIndex-1 without repeating it.
func (c *Config) Candidates() []int {
	order := make([]int, 0, c.MaxIndex+1)
	if c.PreferredIndex >= 0 {
		order = append(order, c.PreferredIndex)
	}
	for i := 0; i < c.MaxIndex; i++ {
		if i == c.PreferredIndex {
			continue
		}
		order = append(order, i)
	}
	return order
}
