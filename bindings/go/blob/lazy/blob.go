package lazy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/singleflight"

	"github.com/yvchan/streamsx.topology/bindings/go/blob"
	"github.com/yvchan/streamsx.topology/bindings/go/blob/sink"
	"github.com/yvchan/streamsx.topology/bindings/go/internal/log"
	"github.com/yvchan/streamsx.topology/bindings/go/serializer"
)

const realm = "blob"

// New creates a Blob that represents value in the form produced by s.
// Neither s nor value are touched until the first byte-level accessor is called.
func New(s serializer.Serializer, value any, opts ...Option) *Blob {
	b := &Blob{
		serializer: s,
		value:      value,
		mediaType:  serializer.MediaTypeOf(s),
	}
	for _, opt := range opts {
		opt.ApplyToBlob(b)
	}
	b.logger = log.Base(b.logger, realm)
	return b
}

// Blob is a read-only blob over a value that is serialized on first access.
//
// The value is borrowed: the Blob never modifies it and keeps referencing it for String.
// Once serialization succeeded, the bytes are immutable and shared by all views handed out.
type Blob struct {
	serializer   serializer.Serializer
	value        any
	capacityHint int
	mediaType    string
	logger       *slog.Logger

	content atomic.Pointer[content] // published once after the first successful serialization
	flight  singleflight.Group      // deduplicates concurrent serialization attempts
}

type content struct {
	data   []byte
	digest digest.Digest
}

var (
	_ blob.ByteBlob       = (*Blob)(nil)
	_ blob.ReadOnlyBlob   = (*Blob)(nil)
	_ blob.SizeAware      = (*Blob)(nil)
	_ blob.DigestAware    = (*Blob)(nil)
	_ blob.MediaTypeAware = (*Blob)(nil)
	_ io.WriterTo         = (*Blob)(nil)
	_ fmt.Stringer        = (*Blob)(nil)
)

// Load serializes the value if this did not succeed before.
// All accessors call Load implicitly, it only needs to be called to control when serialization happens.
func (b *Blob) Load() error {
	_, err := b.load()
	return err
}

// Materialized reports whether the value has been serialized successfully.
func (b *Blob) Materialized() bool {
	return b.content.Load() != nil
}

// Value returns the value represented by the Blob.
func (b *Blob) Value() any {
	return b.value
}

// Len returns the number of bytes of the serialized value.
func (b *Blob) Len() (int, error) {
	c, err := b.load()
	if err != nil {
		return 0, err
	}
	return len(c.data), nil
}

// Size returns the number of bytes of the serialized value, or blob.SizeUnknown if serialization fails.
func (b *Blob) Size() int64 {
	c, err := b.load()
	if err != nil {
		return blob.SizeUnknown
	}
	return int64(len(c.data))
}

// View returns a read-only view over the serialized value without copying it.
func (b *Blob) View() (blob.View, error) {
	c, err := b.load()
	if err != nil {
		return blob.View{}, err
	}
	return blob.NewView(c.data), nil
}

// Range returns a read-only view over count bytes of the serialized value starting at offset.
// It fails with blob.ErrOutOfRange if the window does not lie within the serialized value.
func (b *Blob) Range(offset, count int) (blob.View, error) {
	view, err := b.View()
	if err != nil {
		return blob.View{}, err
	}
	return view.Window(offset, count)
}

// Data returns a copy of the serialized value that is owned by the caller.
func (b *Blob) Data() ([]byte, error) {
	view, err := b.View()
	if err != nil {
		return nil, err
	}
	return view.Copy(), nil
}

// Put writes the serialized value into dst at its current position and advances it.
// If dst is nil or cannot hold the whole value, it fails with blob.ErrCapacityExceeded and dst is left unchanged.
func (b *Blob) Put(dst *blob.Buffer) (*blob.Buffer, error) {
	if dst == nil {
		return nil, fmt.Errorf("no destination buffer: %w", blob.ErrCapacityExceeded)
	}
	c, err := b.load()
	if err != nil {
		return nil, err
	}
	if _, err := dst.Write(c.data); err != nil {
		return nil, err
	}
	return dst, nil
}

// WriteTo writes the serialized value to w.
func (b *Blob) WriteTo(w io.Writer) (int64, error) {
	view, err := b.View()
	if err != nil {
		return 0, err
	}
	return view.WriteTo(w)
}

// ReadCloser is not supported, the serialized value is only available as a whole.
// It always fails with blob.ErrUnsupported, use View or WriteTo instead.
func (b *Blob) ReadCloser() (io.ReadCloser, error) {
	return nil, fmt.Errorf("stream access to serialized value: %w", blob.ErrUnsupported)
}

// Digest returns the canonical digest of the serialized value.
// The digest is unknown if serialization fails.
func (b *Blob) Digest() (string, bool) {
	c, err := b.load()
	if err != nil {
		return "", false
	}
	return c.digest.String(), true
}

// MediaType returns the media type of the serialized value. It never triggers serialization.
func (b *Blob) MediaType() (string, bool) {
	return b.mediaType, true
}

// String returns the description of the value. It never triggers serialization.
func (b *Blob) String() string {
	return serializer.Describe(b.value)
}

func (b *Blob) load() (*content, error) {
	if c := b.content.Load(); c != nil {
		return c, nil
	}
	v, err, _ := b.flight.Do(realm, func() (any, error) {
		// an attempt that finished before this one joined may already have published
		if c := b.content.Load(); c != nil {
			return c, nil
		}
		c, err := b.serialize()
		if err != nil {
			return nil, err
		}
		b.content.Store(c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*content), nil
}

// serialize runs the serializer against a fresh sink.
func (b *Blob) serialize() (_ *content, err error) {
	done := log.Operation(context.Background(), b.logger, "serialize", slog.String("type", fmt.Sprintf("%T", b.value)))
	defer func() {
		done(err)
	}()

	s := sink.New(b.capacityHint)
	if err := b.serializer.Serialize(b.value, s); err != nil {
		return nil, serializer.Wrap(b.value, err)
	}
	data := s.Finalize()
	c := &content{
		data:   data,
		digest: digest.FromBytes(data),
	}
	b.logger.Debug("value serialized", log.ContentLogAttr(b.mediaType, c.digest.String(), len(data)))
	return c, nil
}
