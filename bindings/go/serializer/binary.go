package serializer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BigEndian serializes fixed-size values (sized integers, floats, bools, arrays and
// structs of those, or slices of them) in big-endian byte order.
// Platform dependent types such as int are rejected.
var BigEndian Serializer = fixedSize{order: binary.BigEndian}

// LittleEndian is like BigEndian in little-endian byte order.
var LittleEndian Serializer = fixedSize{order: binary.LittleEndian}

type fixedSize struct {
	order binary.ByteOrder
}

func (s fixedSize) Serialize(value any, w io.Writer) error {
	if binary.Size(value) < 0 {
		return fmt.Errorf("%T is not a fixed-size value: %w", value, ErrUnsupportedValue)
	}
	return binary.Write(w, s.order, value)
}

func (fixedSize) MediaType() string {
	return DefaultMediaType
}
