package blob

import (
	"fmt"
	"io"
)

// Buffer is a fixed-capacity destination with a write position.
// Writes are all-or-nothing: a write that does not fit into the remaining capacity
// fails with ErrCapacityExceeded and leaves the position unchanged.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer creates an empty Buffer that can hold up to capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, capacity)}
}

// Cap returns the total capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Position returns the current write position.
func (b *Buffer) Position() int {
	return b.pos
}

// Remaining returns the number of bytes that can still be written.
func (b *Buffer) Remaining() int {
	return len(b.buf) - b.pos
}

// Write copies p to the current position and advances it.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) > b.Remaining() {
		return 0, fmt.Errorf("writing %d bytes with %d remaining: %w", len(p), b.Remaining(), ErrCapacityExceeded)
	}
	n := copy(b.buf[b.pos:], p)
	b.pos += n
	return n, nil
}

// Bytes returns the bytes written so far.
// The returned slice is only valid until the next Write or Reset.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.pos:b.pos]
}

// Reset rewinds the write position to the start of the buffer.
func (b *Buffer) Reset() {
	b.pos = 0
}

var _ io.Writer = (*Buffer)(nil)
