package resolver

import "errors"

var (
	// ErrNoStrategy is returned when every strategy declined. With the
	// default list this cannot happen since random always applies.
	ErrNoStrategy = errors.New("resolver: no strategy produced a result")

	// ErrEncode is returned when the result image cannot be encoded.
	ErrEncode = errors.New("resolver: could not encode frame")
)
