package classifier

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification failures.
var (
	// ErrModelNotFound is returned when the model artifact does not exist.
	ErrModelNotFound = errors.New("classifier: model not found")

	// ErrModelLoad is returned when the artifact exists but cannot be loaded.
	ErrModelLoad = errors.New("classifier: model failed to load")

	// ErrInference is returned when the forward pass fails.
	ErrInference = errors.New("classifier: inference failed")

	// ErrBadOutput is returned when the output is not one score per label.
	ErrBadOutput = errors.New("classifier: unexpected output shape")

	// ErrPanic is returned when the model panics during a forward pass.
	ErrPanic = errors.New("classifier: panic during inference")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("classifier: closed")
)

// PanicError carries the recovered value of a panicking forward pass.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPanic, e.Value)
}

// Unwrap returns ErrPanic.
func (e *PanicError) Unwrap() error {
	return ErrPanic
}
