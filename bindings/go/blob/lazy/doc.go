// Package lazy provides a blob over an in-memory value that is serialized on first access.
//
// Many values flow through a pipeline while only a few of them ever need a byte form.
// A Blob defers running its serializer.Serializer until the first byte-level accessor is
// called, publishes the produced bytes and answers all later calls from them.
//
// Failed serializations are not cached: the error is returned to the caller and the next
// accessor call starts a new attempt. At most one attempt runs at a time per Blob, callers
// racing on the first access share the outcome of the attempt in flight.
package lazy
