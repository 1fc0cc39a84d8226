package serializer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// MediaTypeJSON is the media type of CanonicalJSON output.
const MediaTypeJSON = "application/json"

// CanonicalJSON serializes values as JSON in the canonical form of RFC 8785,
// so that equal values always yield equal bytes regardless of map ordering
// or number formatting.
var CanonicalJSON Serializer = canonicalJSON{}

type canonicalJSON struct{}

func (canonicalJSON) Serialize(value any, w io.Writer) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal json: %w", err)
	}
	data, err = jsoncanonicalizer.Transform(data)
	if err != nil {
		return fmt.Errorf("could not canonicalize data: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (canonicalJSON) MediaType() string {
	return MediaTypeJSON
}
