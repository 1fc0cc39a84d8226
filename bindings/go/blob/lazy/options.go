package lazy

import "log/slog"

type Option interface {
	ApplyToBlob(*Blob)
}

// WithCapacityHint is an Option that sets the initial capacity of the sink the value is serialized into.
// Non-positive values keep sink.DefaultCapacity.
type WithCapacityHint int

func (w WithCapacityHint) ApplyToBlob(b *Blob) {
	b.capacityHint = int(w)
}

// WithMediaType is an Option that overrides the media type reported by the Blob.
// By default the media type declared by the serializer is used.
type WithMediaType string

func (w WithMediaType) ApplyToBlob(b *Blob) {
	if w != "" {
		b.mediaType = string(w)
	}
}

// WithLogger returns an Option that sets the logger used to report serialization attempts.
func WithLogger(logger *slog.Logger) Option {
	return withLogger{logger: logger}
}

type withLogger struct {
	logger *slog.Logger
}

func (w withLogger) ApplyToBlob(b *Blob) {
	b.logger = w.logger
}
