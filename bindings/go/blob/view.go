package blob

import (
	"bytes"
	"fmt"
	"io"
)

// View holds an immutable view of bytes.
// The zero value is an empty view.
//
// A View never hands out its backing slice, all accessors either return single bytes,
// copies, or write the content to a destination. This makes a View safe to share
// between concurrent readers.
type View struct {
	b []byte
}

// NewView returns a View over b. The caller MUST NOT modify b afterwards.
func NewView(b []byte) View {
	return View{b: b}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.b)
}

// At returns the byte at index i.
func (v View) At(i int) byte {
	return v.b[i]
}

// Slice returns the view between from and to.
// Like slicing, it panics if the bounds are invalid.
func (v View) Slice(from, to int) View {
	return View{b: v.b[from:to:to]}
}

// Window returns the view over [offset, offset+count).
// It returns ErrOutOfRange if offset or count is negative or the window exceeds the view.
func (v View) Window(offset, count int) (View, error) {
	if offset < 0 || count < 0 || offset > len(v.b)-count {
		return View{}, fmt.Errorf("window [%d, %d+%d) of %d bytes: %w", offset, offset, count, len(v.b), ErrOutOfRange)
	}
	return v.Slice(offset, offset+count), nil
}

// Copy returns a copy of the view that is owned by the caller.
func (v View) Copy() []byte {
	return bytes.Clone(v.b)
}

// ReadAt implements io.ReaderAt on the view.
func (v View) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d: %w", off, ErrOutOfRange)
	}
	if off >= int64(len(v.b)) {
		return 0, io.EOF
	}
	n = copy(p, v.b[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// WriteTo implements io.WriterTo on the view.
func (v View) WriteTo(w io.Writer) (n int64, err error) {
	m, err := w.Write(v.b)
	return int64(m), err
}

// NewReader returns an io.ReadSeeker over the view.
func (v View) NewReader() io.ReadSeeker {
	return bytes.NewReader(v.b)
}

// Equal reports whether the view holds exactly b.
func (v View) Equal(b []byte) bool {
	return bytes.Equal(v.b, b)
}

// String returns the view content as a string.
func (v View) String() string {
	return string(v.b)
}

var (
	_ io.ReaderAt = View{}
	_ io.WriterTo = View{}
)
