package blob

import "errors"

var (
	// ErrOutOfRange is returned when a requested byte window does not lie within the blob content.
	ErrOutOfRange = errors.New("range out of bounds")
	// ErrCapacityExceeded is returned when a destination cannot hold the content written into it.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrUnsupported is returned by accessors that have no meaning for a blob implementation.
	ErrUnsupported = errors.New("operation not supported")
)
