package tagfile

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
)

const (
	// Magic spells "TAGD" in file byte order.
	Magic uint32 = 0x44474154
	// Version is the header version written by this package.
	Version uint8 = 1
	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 24
)

// Header is the fixed-size prefix of a tag file.
type Header struct {
	Compression format.CompressionType // byte offset 4
	Version     uint8                  // byte offset 5
	BodyLength  uint64                 // byte offset 8-15
	Checksum    uint64                 // byte offset 16-23
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrInvalidVersion or ErrInvalidCompression
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	le := binary.LittleEndian
	if magic := le.Uint32(data[0:4]); magic != Magic {
		return fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMagic, magic)
	}

	h.Compression = format.CompressionType(data[4])
	h.Version = data[5]
	h.BodyLength = le.Uint64(data[8:16])
	h.Checksum = le.Uint64(data[16:24])

	if h.Version == 0 || h.Version > Version {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVersion, h.Version)
	}

	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, data[4])
	}

	return nil
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	le := binary.LittleEndian
	le.PutUint32(b[0:4], Magic)
	b[4] = uint8(h.Compression)
	b[5] = h.Version
	le.PutUint64(b[8:16], h.BodyLength)
	le.PutUint64(b[16:24], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
