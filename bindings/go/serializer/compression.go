package serializer

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	MediaTypeGzip       = "application/gzip"
	MediaTypeGzipSuffix = "+gzip"
)

// Method represents the type of compression algorithm applied to serialized content.
type Method string

const (
	// MethodCanonical is the default compression method used by the package.
	MethodCanonical = MethodGzip

	// MethodGzip represents GZIP compression.
	MethodGzip Method = "gzip"
)

// Compress wraps a Serializer so that its output is compressed with the canonical compression method (GZIP).
func Compress(s Serializer) *Compressed {
	return &Compressed{Serializer: s, CompressionMethod: MethodCanonical}
}

// Compressed is a Serializer that compresses the output of a base Serializer.
// The gzip header carries no name or modification time, so compressing the output of a
// deterministic serializer stays deterministic.
type Compressed struct {
	Serializer
	CompressionMethod Method
}

func (c *Compressed) Serialize(value any, w io.Writer) (err error) {
	var compressed io.WriteCloser
	switch c.CompressionMethod {
	case MethodGzip:
		fallthrough
	default:
		compressed = gzip.NewWriter(w)
	}
	defer func() {
		err = errors.Join(err, compressed.Close())
	}()
	return c.Serializer.Serialize(value, compressed)
}

// MediaType returns the media type of the base serializer with the compression suffix appended.
// If the base serializer does not declare a media type, the plain media type of the compression method is used.
func (c *Compressed) MediaType() string {
	switch c.CompressionMethod {
	case MethodGzip:
		fallthrough
	default:
		if typed, ok := c.Serializer.(MediaTyped); ok {
			if mediaType := typed.MediaType(); mediaType != "" && mediaType != DefaultMediaType {
				return mediaType + MediaTypeGzipSuffix
			}
		}
		return MediaTypeGzip
	}
}

// Decompress returns a reader over the decompressed form of r, which holds content of the given media type,
// together with the media type of the decompressed content.
// Content that is not knowingly compressed is returned as is.
func Decompress(r io.Reader, mediaType string) (io.ReadCloser, string, error) {
	if mediaType != MediaTypeGzip && !strings.HasSuffix(mediaType, MediaTypeGzipSuffix) {
		return io.NopCloser(r), mediaType, nil
	}
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("error creating gzip reader: %w", err)
	}
	if mediaType == MediaTypeGzip {
		return gzReader, DefaultMediaType, nil
	}
	return gzReader, strings.TrimSuffix(mediaType, MediaTypeGzipSuffix), nil
}
