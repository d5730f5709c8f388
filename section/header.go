package section

import (
	"fmt"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/errs"
)

// Header is the fixed leading part of a container.
type Header struct {
	Flag  Flag
	Count uint32
}

// IsLegacy reports whether the header belongs to a legacy container.
func (h Header) IsLegacy() bool {
	return !h.Flag.IsVersioned()
}

// Size returns the encoded header size in bytes.
func (h Header) Size() int {
	if h.IsLegacy() {
		return LegacyHeaderSize
	}

	return HeaderSize
}

// ReadHeader reads the version word and entry count.
func ReadHeader(d *encoding.Decoder) (Header, error) {
	first := d.ReadUint32()
	if err := d.Err(); err != nil {
		return Header{}, fmt.Errorf("read container header: %w", err)
	}

	if first&VersionMarker == 0 {
		return Header{Count: first}, nil
	}

	h := Header{Flag: Flag{Options: first}}
	if err := h.Flag.Validate(); err != nil {
		return Header{}, err
	}

	h.Count = d.ReadUint32()
	if err := d.Err(); err != nil {
		return Header{}, fmt.Errorf("read entry count: %w", err)
	}

	return h, nil
}

// WriteHeader writes a versioned header.
func WriteHeader(e *encoding.Encoder, h Header) error {
	if h.IsLegacy() {
		return fmt.Errorf("%w: legacy containers are read-only", errs.ErrInvalidFormat)
	}

	e.WriteUint32(h.Flag.Options)
	e.WriteUint32(h.Count)

	return e.Err()
}
