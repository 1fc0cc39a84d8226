package vcap

import "errors"

var (
	// ErrMissingCatalog is returned when no source provides a service catalog.
	ErrMissingCatalog = errors.New("service catalog not defined")
	// ErrMissingServiceName is returned when no source provides a service name.
	ErrMissingServiceName = errors.New("service name not defined")
	// ErrServiceNotFound is returned when the catalog has no entry for the service name.
	ErrServiceNotFound = errors.New("service not found")
	// ErrMalformedCatalog is returned when the catalog cannot be read or is not valid.
	ErrMalformedCatalog = errors.New("malformed service catalog")
)
