package blob

import (
	"io"
)

// ReadOnlyBlob is an interface that represents a Binary Large Object that can be read as a stream.
//
// Not every blob can hand out streams. Blobs that only ever exist as a materialized byte
// sequence (see ByteBlob) return ErrUnsupported from ReadCloser instead of an empty reader,
// so that "no stream" is never confused with "zero bytes".
type ReadOnlyBlob interface {
	// ReadCloser returns a reader to incrementally access byte stream content
	// It is the caller's responsibility to close the reader.
	//
	// ReadCloser MUST be safe for concurrent use, serializing access as necessary.
	// ReadCloser MUST be able to be called multiple times, where each invocation
	// returning a new reader, that starts from the beginning of the blob.
	ReadCloser() (io.ReadCloser, error)
}

// ByteBlob is a Binary Large Object whose content is accessed as one contiguous byte sequence.
//
// All byte-level accessors may fail if the content cannot be produced.
// String never touches the content and MUST NOT fail.
type ByteBlob interface {
	// Len returns the number of bytes of the blob.
	Len() (int, error)
	// View returns a read-only view over the whole content.
	View() (View, error)
	// Range returns a read-only view over [offset, offset+count).
	// It MUST fail with ErrOutOfRange if the window is not within the content.
	Range(offset, count int) (View, error)
	// Data returns a copy of the content that is owned by the caller.
	Data() ([]byte, error)
	// Put writes the content into dst at its current position and returns dst.
	// It MUST fail with ErrCapacityExceeded without writing anything if dst is too small.
	Put(dst *Buffer) (*Buffer, error)
	// String describes the blob without accessing its content.
	String() string
}

// SizeUnknown is a constant that represents an unknown size of a blob.
const SizeUnknown int64 = -1

// SizeAware is an interface that represents any arbitrary object that can be sized.
//
// Size is used to always determine the size of the object in bytes.
type SizeAware interface {
	// Size returns the blob size in bytes if known.
	// If the size is unknown, it MUST return SizeUnknown.
	Size() (size int64)
}

// DigestAware is an interface that represents any arbitrary object that can be digested.
//
// Digest is used to always determine the digest of the object.
type DigestAware interface {
	// Digest returns the blob digest if known.
	Digest() (digest string, known bool)
}

// MediaTypeAware is an interface that represents any arbitrary object that can be interpreted as an object that is associated with a MediaType.
type MediaTypeAware interface {
	// MediaType returns the media type of the blob if known.
	MediaType() (mediaType string, known bool)
}
