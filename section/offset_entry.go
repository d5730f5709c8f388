package section

import (
	"fmt"
	"math"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/errs"
)

// OffsetEntry locates one payload relative to the start of its container.
type OffsetEntry struct {
	Offset uint64
	Size   uint64
}

// End returns the offset one past the last payload byte.
func (o OffsetEntry) End() uint64 {
	return o.Offset + o.Size
}

// WriteOffsetEntry writes o as a u32 or u64 pair.
func WriteOffsetEntry(e *encoding.Encoder, o OffsetEntry, wide bool) error {
	if wide {
		e.WriteUint64(o.Offset)
		e.WriteUint64(o.Size)

		return e.Err()
	}

	if o.Offset > math.MaxUint32 || o.Size > math.MaxUint32 {
		return fmt.Errorf("%w: offset %d size %d need 64-bit offsets", errs.ErrEntryTooLarge, o.Offset, o.Size)
	}
	e.WriteUint32(uint32(o.Offset))
	e.WriteUint32(uint32(o.Size))

	return e.Err()
}

// ReadOffsetEntry reads a u32 or u64 pair.
func ReadOffsetEntry(d *encoding.Decoder, wide bool) (OffsetEntry, error) {
	var o OffsetEntry
	if wide {
		o.Offset = d.ReadUint64()
		o.Size = d.ReadUint64()
	} else {
		o.Offset = uint64(d.ReadUint32())
		o.Size = uint64(d.ReadUint32())
	}

	if err := d.Err(); err != nil {
		return OffsetEntry{}, fmt.Errorf("read offset table: %w", err)
	}

	return o, nil
}
