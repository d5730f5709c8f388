package container

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/tagdata/compress"
	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/internal/pool"
	"github.com/arloliu/tagdata/tag"
)

// compressedHeaderSize is the u8 compression type plus the u32 raw length
// in front of a compressed entry body.
const compressedHeaderSize = 5

// AddCompressed creates entry k holding the bytes fn encodes, compressed
// with ct. Read it back with ProcessCompressedEntry.
func (w *Writer) AddCompressed(k tag.Key, ct format.CompressionType, fn func(e *encoding.Encoder) error) error {
	if err := w.checkNew(k); err != nil {
		return err
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return err
	}

	raw := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(raw)

	enc := encoding.NewEncoder(raw, w.engine)
	if err := fn(enc); err != nil {
		return fmt.Errorf("add compressed %q: %w", k.Name(), err)
	}
	if err := enc.Err(); err != nil {
		return fmt.Errorf("add compressed %q: %w", k.Name(), err)
	}

	if uint64(raw.Len()) > math.MaxUint32 {
		return fmt.Errorf("%w: compressed entry %q of %d bytes", errs.ErrEntryTooLarge, k.Name(), raw.Len())
	}

	body, err := codec.Compress(raw.Bytes())
	if err != nil {
		return fmt.Errorf("compress %q with %s: %w", k.Name(), ct, err)
	}

	return w.AddFunc(k, func(e *encoding.Encoder) error {
		e.WriteUint8(uint8(ct))
		e.WriteUint32(uint32(raw.Len())) //nolint:gosec
		e.WriteBytes(body)

		return nil
	})
}

// ProcessCompressedEntry decompresses entry k and hands fn a decoder over
// the restored bytes.
func (r *Reader) ProcessCompressedEntry(k tag.Key, fn func(d *encoding.Decoder) error) error {
	payload, err := r.ReadEntry(k)
	if err != nil {
		return err
	}

	raw, err := r.decompressEntry(k, payload)
	if err != nil {
		return err
	}

	d := encoding.NewDecoder(bytes.NewReader(raw), r.engine)
	if err := fn(d); err != nil {
		return fmt.Errorf("process compressed entry %q: %w", k.Name(), err)
	}
	if err := d.Err(); err != nil {
		return fmt.Errorf("process compressed entry %q: %w", k.Name(), err)
	}

	return nil
}

func (r *Reader) decompressEntry(k tag.Key, payload []byte) ([]byte, error) {
	if len(payload) < compressedHeaderSize {
		return nil, fmt.Errorf("%w: compressed entry %q has %d bytes", errs.ErrInvalidFormat, k.Name(), len(payload))
	}

	ct := format.CompressionType(payload[0])
	rawLen := r.engine.Uint32(payload[1:compressedHeaderSize])

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, fmt.Errorf("compressed entry %q: %w", k.Name(), err)
	}

	raw, err := codec.Decompress(payload[compressedHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress %q with %s: %w", k.Name(), ct, err)
	}

	if uint64(len(raw)) != uint64(rawLen) {
		return nil, fmt.Errorf("%w: compressed entry %q restored %d bytes, want %d",
			errs.ErrInvalidFormat, k.Name(), len(raw), rawLen)
	}

	return raw, nil
}
