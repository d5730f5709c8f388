package section

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/tag"
)

// KeySize returns the encoded size of k in the given key table form.
func KeySize(k tag.Key, kf format.KeyFormat) int {
	switch kf {
	case format.KeyFormatHashed:
		return 4 + 1 + k.Len()
	case format.KeyFormatNarrow:
		return 4 + k.Len()
	default:
		return encoding.StringSize(k.Name())
	}
}

// ValidateKey reports whether k can be stored in the given key table form.
func ValidateKey(k tag.Key, kf format.KeyFormat) error {
	switch kf {
	case format.KeyFormatHashed:
		if k.Len() > MaxHashedNameLen {
			return fmt.Errorf("%w: key %q exceeds %d bytes", errs.ErrInvalidKeyFormat, k.Name(), MaxHashedNameLen)
		}
	case format.KeyFormatWide, format.KeyFormatLegacy:
		if !utf8.ValidString(k.Name()) {
			return fmt.Errorf("%w: key %q is not valid UTF-8", errs.ErrInvalidKeyFormat, k.Name())
		}
	}

	return nil
}

// WriteKey writes k in the given key table form.
func WriteKey(e *encoding.Encoder, k tag.Key, kf format.KeyFormat) error {
	if err := ValidateKey(k, kf); err != nil {
		return err
	}

	switch kf {
	case format.KeyFormatHashed:
		e.WriteUint32(k.Hash())
		e.WriteUint8(uint8(k.Len())) //nolint:gosec
		e.WriteBytes([]byte(k.Name()))
	case format.KeyFormatNarrow:
		e.WriteNarrowString(k.Name())
	default:
		e.WriteString(k.Name())
	}

	return e.Err()
}

// ReadKey reads one key in the given key table form.
func ReadKey(d *encoding.Decoder, kf format.KeyFormat) (tag.Key, error) {
	var k tag.Key

	switch kf {
	case format.KeyFormatHashed:
		h := d.ReadUint32()
		n := d.ReadUint8()
		k = tag.WithHash(h, string(d.ReadBytes(int(n))))
	case format.KeyFormatNarrow:
		// older writers set the narrow string flag on the length
		n := d.ReadUint32() &^ encoding.NarrowStringFlag
		k = tag.New(string(d.ReadBytes(int(n))))
	default:
		k = tag.New(d.ReadString())
	}

	if err := d.Err(); err != nil {
		return tag.Key{}, fmt.Errorf("read key: %w", err)
	}

	return k, nil
}
