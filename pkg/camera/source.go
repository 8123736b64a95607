package camera

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
)

// State is the acquisition lifecycle of a Source.
type State int

const (
	// StateUninitialized means no probe has run yet.
	StateUninitialized State = iota

	// StateBound means a device index was selected and is held open.
	StateBound

	// StateUnavailable means probing failed or the source was closed.
	// It is terminal.
	StateUnavailable
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBound:
		return "bound"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Source owns a single video device handle. All methods are safe for
// concurrent use; reads are serialized.
type Source struct {
	cfg    Config
	open   Opener
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	index  int
	dev    Device
	closed bool
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) { s.logger = l }
}

// New creates a Source. No device is touched until Acquire or Read.
func New(cfg Config, open Opener, opts ...Option) *Source {
	s := &Source{
		cfg:    cfg,
		open:   open,
		index:  -1,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "camera")
	return s
}

// Acquire probes candidate indices once and binds the first device that
// opens and returns a trial frame. Later calls return the recorded outcome
// without probing again.
func (s *Source) Acquire() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked()
}

func (s *Source) acquireLocked() (int, error) {
	switch s.state {
	case StateBound:
		return s.index, nil
	case StateUnavailable:
		return -1, ErrUnavailable
	}

	if s.open == nil {
		s.state = StateUnavailable
		s.logger.Warn("no camera opener configured")
		return -1, ErrUnavailable
	}

	for _, idx := range s.cfg.Candidates() {
		dev, err := s.open(idx)
		if err != nil {
			s.logger.Debug("camera index did not open", "index", idx, "error", err)
			continue
		}

		frame, err := dev.Read()
		if err != nil || frame == nil {
			s.logger.Debug("camera index opened but gave no frame", "index", idx, "error", err)
			_ = dev.Close()
			continue
		}

		s.dev = dev
		s.index = idx
		s.state = StateBound
		b := frame.Bounds()
		s.logger.Info("camera bound", "index", idx, "width", b.Dx(), "height", b.Dy())
		return idx, nil
	}

	s.state = StateUnavailable
	s.logger.Warn("no camera found", "probed", s.cfg.Candidates())
	return -1, ErrUnavailable
}

// Read returns the next frame from the bound device, probing on first use.
// When no device could be bound every call fails with ErrUnavailable.
func (s *Source) Read() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if _, err := s.acquireLocked(); err != nil {
		return nil, err
	}

	frame, err := s.dev.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: index %d: %v", ErrReadFailed, s.index, err)
	}
	if frame == nil {
		return nil, fmt.Errorf("%w: index %d: empty frame", ErrReadFailed, s.index)
	}
	return frame, nil
}

// State returns the current lifecycle state.
func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index returns the bound device index, or -1.
func (s *Source) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Available reports whether a device is bound.
func (s *Source) Available() bool {
	return s.State() == StateBound
}

// Close releases the device. The source becomes unavailable.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.state = StateUnavailable
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}
