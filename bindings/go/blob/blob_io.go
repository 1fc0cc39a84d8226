package blob

import (
	"errors"
	"io"

	"github.com/opencontainers/go-digest"
)

// Copy copies the contents of a blob to a provided io.Writer, performing optional size and digest checks.
//
// If src implements io.WriterTo, the content is written directly from src, which is how materialized
// blobs without stream support are copied. Otherwise src MUST be a ReadOnlyBlob and is read through its
// ReadCloser, which is closed after the operation, even if an error occurs.
//
// If the source blob is DigestAware, the function verifies the blob's digest against the copied data.
// If the verification fails, an error is returned indicating the failure.
//
// If the source is SizeAware and the size is known while reading from a stream, io.CopyN is used to copy
// exactly that many bytes.
func Copy(dst io.Writer, src any) (err error) {
	var verifier digest.Verifier
	if digestAware, ok := src.(DigestAware); ok {
		if digRaw, known := digestAware.Digest(); known {
			var dig digest.Digest
			if dig, err = digest.Parse(digRaw); err != nil {
				return err
			}
			verifier = dig.Verifier()
			dst = io.MultiWriter(dst, verifier)
			defer func() {
				if err == nil && !verifier.Verified() {
					err = errors.New("blob digest verification failed")
				}
			}()
		}
	}

	if writerTo, ok := src.(io.WriterTo); ok {
		_, err = writerTo.WriteTo(dst)
		return err
	}

	readOnly, ok := src.(ReadOnlyBlob)
	if !ok {
		return ErrUnsupported
	}

	size := SizeUnknown
	if srcSizeAware, ok := src.(SizeAware); ok {
		size = srcSizeAware.Size()
	}

	data, err := readOnly.ReadCloser()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	if size > SizeUnknown {
		_, err = io.CopyN(dst, data, size)
	} else {
		_, err = io.Copy(dst, data)
	}

	return err
}
