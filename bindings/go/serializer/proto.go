package serializer

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
)

// MediaTypeProtobuf is the media type of Proto output.
const MediaTypeProtobuf = "application/x-protobuf"

// Proto serializes protobuf messages in the binary wire format.
// Marshalling is deterministic, so map fields are emitted in a stable order.
var Proto Serializer = protoSerializer{opts: proto.MarshalOptions{Deterministic: true}}

type protoSerializer struct {
	opts proto.MarshalOptions
}

func (s protoSerializer) Serialize(value any, w io.Writer) error {
	msg, ok := value.(proto.Message)
	if !ok {
		return fmt.Errorf("%T is not a protobuf message: %w", value, ErrUnsupportedValue)
	}
	data, err := s.opts.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not marshal protobuf message: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (protoSerializer) MediaType() string {
	return MediaTypeProtobuf
}
