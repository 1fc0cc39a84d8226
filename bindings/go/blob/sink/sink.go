// Package sink provides Sink, the append-only byte buffer serializers write into.
package sink

import (
	"errors"
	"io"
	"slices"
)

// DefaultCapacity is the initial capacity of a Sink if no positive hint is given.
const DefaultCapacity = 1024

// ErrFinalized is returned when writing to a Sink after Finalize.
var ErrFinalized = errors.New("sink already finalized")

// Sink is a growable, append-only byte buffer.
//
// The backing storage of a Sink over-allocates while growing, so its capacity is
// unrelated to the number of bytes written. Finalize is the only way to get the
// written bytes out and always yields exactly Len bytes.
//
// A Sink is not safe for concurrent use.
type Sink struct {
	buf       []byte
	finalized bool
}

// New creates an empty Sink with room for capacityHint bytes before growing.
func New(capacityHint int) *Sink {
	if capacityHint <= 0 {
		capacityHint = DefaultCapacity
	}
	return &Sink{buf: make([]byte, 0, capacityHint)}
}

// Write appends p to the sink.
func (s *Sink) Write(p []byte) (int, error) {
	if s.finalized {
		return 0, ErrFinalized
	}
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// WriteByte appends c to the sink.
func (s *Sink) WriteByte(c byte) error {
	if s.finalized {
		return ErrFinalized
	}
	s.buf = append(s.buf, c)
	return nil
}

// WriteString appends str to the sink.
func (s *Sink) WriteString(str string) (int, error) {
	if s.finalized {
		return 0, ErrFinalized
	}
	s.buf = append(s.buf, str...)
	return len(str), nil
}

// Len returns the number of bytes written so far.
func (s *Sink) Len() int {
	return len(s.buf)
}

// Cap returns the capacity of the backing storage.
func (s *Sink) Cap() int {
	return cap(s.buf)
}

// Finalize ends the sink and hands out the written bytes.
// The result has length and capacity Len, so appending to it never writes into
// memory shared with the sink. The sink rejects all writes afterwards and
// is empty, a second Finalize returns nil.
func (s *Sink) Finalize() []byte {
	s.finalized = true
	data := slices.Clip(s.buf)
	s.buf = nil
	return data
}

var (
	_ io.Writer       = (*Sink)(nil)
	_ io.ByteWriter   = (*Sink)(nil)
	_ io.StringWriter = (*Sink)(nil)
)
