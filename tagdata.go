// Package tagdata provides a self-describing, chunked binary container for
// named, typed values.
//
// A container holds an ordered set of entries, each identified by a short
// name (a Key) and holding the encoded bytes of a value, an array of values,
// or another container. Readers parse only the header and index up front and
// decode payloads on demand, so large files can be navigated without being
// materialized.
//
// # Core Features
//
//   - Hashed keys (32-bit FNV-1a plus inline name) with string and integer derivation
//   - Fixed-width little-endian or host-order primitive codec
//   - Nested containers read through bounded views of the source stream
//   - Automatic 32/64-bit offset tables
//   - Read support for the legacy interleaved layout and for narrow and wide key tables
//   - Optional per-entry compression (Zstd, S2, LZ4)
//
// # Basic Usage
//
//	data, err := tagdata.Marshal(func(w *container.Writer) error {
//	    if err := container.Add(w, tagdata.Key("Width"), uint32(256)); err != nil {
//	        return err
//	    }
//	    return container.Add(w, tagdata.Key("Name"), "Hello")
//	})
//
//	err = tagdata.Unmarshal(data, func(r *container.Reader) error {
//	    width, err := container.Get[uint32](r, tagdata.Key("Width"))
//	    ...
//	})
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The container package
// holds the Reader and Writer, encoding the primitive codec, geom the
// composite math types, and tagfile the checksummed file format.
package tagdata

import (
	"bytes"
	"io"

	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/tag"
)

// Key creates an entry key from name. Names longer than tag.MaxNameLength
// bytes are truncated.
//
// Example:
//
//	base := tagdata.Key("Ent")
//	first := base.AppendUint(0) // "Ent0"
func Key(name string) tag.Key {
	return tag.New(name)
}

// NewWriter creates an empty container writer.
//
// Available options:
//   - container.WithEndianIndependent(false) for host-local media
//   - container.WithKeyFormat(format.KeyFormatNarrow|KeyFormatWide) for older readers
//   - container.With64BitOffsets()
//   - container.WithLogger(logger)
func NewWriter(opts ...container.Option) (*container.Writer, error) {
	return container.NewWriter(opts...)
}

// NewReader parses the container starting at the current position of src.
//
// Available options:
//   - container.WithEndianIndependent(bool) to override the stream's declaration
//   - container.WithOwnedStream() to close src together with the reader
//   - container.WithLogger(logger)
func NewReader(src io.ReadSeeker, opts ...container.Option) (*container.Reader, error) {
	return container.NewReader(src, opts...)
}

// Marshal builds a container with fn and returns its serialized bytes.
//
// Parameters:
//   - fn: adds entries to the writer
//   - opts: writer options
//
// Returns:
//   - []byte: the serialized container
//   - error: the first error from fn or from serialization
func Marshal(fn func(w *container.Writer) error, opts ...container.Option) ([]byte, error) {
	w, err := container.NewWriter(opts...)
	if err != nil {
		return nil, err
	}
	defer w.Release()

	if err := fn(w); err != nil {
		return nil, err
	}

	return w.Bytes()
}

// Unmarshal parses data as a container and hands the reader to fn.
func Unmarshal(data []byte, fn func(r *container.Reader) error, opts ...container.Option) error {
	r, err := container.NewReader(bytes.NewReader(data), opts...)
	if err != nil {
		return err
	}
	defer r.Close(false) //nolint:errcheck

	return fn(r)
}
