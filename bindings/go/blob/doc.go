// Package blob provides interfaces and types for working with Binary Large Object's (BLOBs).
//
// When working with BLOBs through this package, it is important to understand the following concepts:
//   - ByteBlob: An interface that represents a BLOB whose content is one contiguous byte sequence.
//   - ReadOnlyBlob: An interface that represents a BLOB that can be read as a stream.
//   - SizeAware: An interface that represents any arbitrary object that can be sized.
//   - DigestAware: An interface that represents any arbitrary object that can be digested.
//   - MediaTypeAware: An interface that represents any arbitrary object that can have a media type.
//
// Content of a ByteBlob is handed out either as an immutable View, as a caller owned copy
// or by writing it into a bounded Buffer. Views never expose the backing slice for writing,
// which allows implementations to share a single cached byte sequence between any number of readers.
//
// Additionally, the package provides Copy, a function that copies data from a blob to any given
// io.Writer, while respecting SizeAware and DigestAware for open-container type digests.
//
// Lazily serialized blobs are located in the lazy sub-package.
package blob
