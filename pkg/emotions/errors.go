package emotions

import "errors"

var (
	// ErrAdviceNotFound is returned when the advice file does not exist.
	ErrAdviceNotFound = errors.New("emotions: advice file not found")

	// ErrInvalidAdvice is returned when the advice file cannot be parsed.
	ErrInvalidAdvice = errors.New("emotions: invalid advice data")

	// ErrEmptyAdvice is returned when the advice file has no known labels.
	ErrEmptyAdvice = errors.New("emotions: advice file has no known labels")
)
