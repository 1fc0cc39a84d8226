package serializer

import (
	"errors"
	"fmt"
)

var (
	// ErrEncodingFailure matches every *EncodingError via errors.Is.
	ErrEncodingFailure = errors.New("encoding failure")
	// ErrUnsupportedValue is returned by serializers for values they cannot encode.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// EncodingError reports that a value could not be serialized.
type EncodingError struct {
	// Value is the description of the value that failed to encode.
	Value string
	// Err is the cause reported by the serializer.
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %q: %v", e.Value, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncodingFailure
}

// Wrap turns a serializer failure for value into an *EncodingError.
// It returns nil for a nil err. An *EncodingError in err's chain that names its value is returned as is.
// err is never modified: serializers may return shared error values.
func Wrap(value any, err error) error {
	if err == nil {
		return nil
	}
	var encErr *EncodingError
	if errors.As(err, &encErr) {
		if encErr.Value != "" {
			return err
		}
		if err == error(encErr) {
			described := *encErr
			described.Value = Describe(value)
			return &described
		}
	}
	return &EncodingError{Value: Describe(value), Err: err}
}
