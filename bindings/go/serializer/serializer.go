// Package serializer defines the capability that turns arbitrary values into bytes
// and ships a set of ready-made implementations.
//
// A Serializer writes the encoded form of a value into an io.Writer. It must not keep
// the writer after returning. Blobs that serialize lazily (see package lazy) drive
// serializers against a fresh sink.Sink per attempt.
//
// Serializers are expected to be deterministic: serializing equal values twice yields
// equal bytes. Callers caching serialized forms rely on this.
package serializer

import (
	"fmt"
	"io"
)

// DefaultMediaType is reported for content of serializers that do not declare a media type.
const DefaultMediaType = "application/octet-stream"

// Serializer encodes values into a writer.
type Serializer interface {
	// Serialize writes the encoded representation of value into w.
	Serialize(value any, w io.Writer) error
}

// MediaTyped is implemented by serializers that know the media type of what they produce.
type MediaTyped interface {
	MediaType() string
}

// Func adapts a plain function to a Serializer.
type Func func(value any, w io.Writer) error

func (f Func) Serialize(value any, w io.Writer) error {
	return f(value, w)
}

// MediaTypeOf returns the media type declared by s, or DefaultMediaType.
func MediaTypeOf(s Serializer) string {
	if typed, ok := s.(MediaTyped); ok {
		if mediaType := typed.MediaType(); mediaType != "" {
			return mediaType
		}
	}
	return DefaultMediaType
}

// Describe returns the textual description of a value as used in errors and logs.
func Describe(value any) string {
	return fmt.Sprint(value)
}
