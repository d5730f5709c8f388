package section

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/endian"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/tag"
)

func codec() (*bytes.Buffer, *encoding.Encoder) {
	var buf bytes.Buffer
	return &buf, encoding.NewEncoder(&buf, endian.GetLittleEndianEngine())
}

func decoder(b []byte) *encoding.Decoder {
	return encoding.NewDecoder(bytes.NewReader(b), endian.GetLittleEndianEngine())
}

func TestFlag(t *testing.T) {
	t.Run("default flag", func(t *testing.T) {
		f := NewFlag()
		require.True(t, f.IsVersioned())
		require.True(t, f.HasHashedKeys())
		require.False(t, f.HasNarrowKeys())
		require.False(t, f.Has64BitOffsets())
		require.Equal(t, format.KeyFormatHashed, f.KeyFormat())
		require.Equal(t, OffsetEntrySize32, f.OffsetEntrySize())
		require.Equal(t, uint32(0x80000004), f.Options)
		require.NoError(t, f.Validate())
	})

	t.Run("64-bit offsets", func(t *testing.T) {
		f := NewFlag()
		f.Set64BitOffsets(true)
		require.Equal(t, uint32(0x80000014), f.Options)
		require.Equal(t, OffsetEntrySize64, f.OffsetEntrySize())
		require.Equal(t, "versioned keys=Hashed offsets=64-bit", f.String())

		f.Set64BitOffsets(false)
		require.False(t, f.Has64BitOffsets())
	})

	t.Run("key formats", func(t *testing.T) {
		for _, kf := range []format.KeyFormat{format.KeyFormatHashed, format.KeyFormatNarrow, format.KeyFormatWide} {
			f, err := FlagForKeyFormat(kf)
			require.NoError(t, err)
			require.Equal(t, kf, f.KeyFormat())
		}

		_, err := FlagForKeyFormat(format.KeyFormatLegacy)
		require.ErrorIs(t, err, errs.ErrInvalidKeyFormat)

		both := Flag{Options: VersionMarker | HashKeyMask | NarrowKeyMask}
		require.Equal(t, format.KeyFormatHashed, both.KeyFormat())
		require.Equal(t, format.KeyFormatLegacy, Flag{}.KeyFormat())
		require.Equal(t, "legacy", Flag{}.String())
	})

	t.Run("unknown bits are rejected", func(t *testing.T) {
		f := Flag{Options: VersionMarker | HashKeyMask | 0x2}
		require.ErrorIs(t, f.Validate(), errs.ErrInvalidFormat)
	})
}

func TestHeader(t *testing.T) {
	t.Run("versioned round trip", func(t *testing.T) {
		buf, enc := codec()
		h := Header{Flag: NewFlag(), Count: 3}
		require.NoError(t, WriteHeader(enc, h))
		require.Equal(t, h.Size(), buf.Len())

		got, err := ReadHeader(decoder(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, h, got)
		require.False(t, got.IsLegacy())
	})

	t.Run("legacy count", func(t *testing.T) {
		got, err := ReadHeader(decoder([]byte{2, 0, 0, 0}))
		require.NoError(t, err)
		require.True(t, got.IsLegacy())
		require.Equal(t, uint32(2), got.Count)
		require.Equal(t, LegacyHeaderSize, got.Size())

		_, enc := codec()
		require.ErrorIs(t, WriteHeader(enc, got), errs.ErrInvalidFormat)
	})

	t.Run("reserved bits", func(t *testing.T) {
		_, err := ReadHeader(decoder([]byte{0x04, 0x01, 0, 0x80, 1, 0, 0, 0}))
		require.ErrorIs(t, err, errs.ErrInvalidFormat)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := ReadHeader(decoder([]byte{0x04, 0, 0, 0x80}))
		require.ErrorIs(t, err, errs.ErrEndOfStream)

		_, err = ReadHeader(decoder(nil))
		require.ErrorIs(t, err, errs.ErrEndOfStream)
	})
}

func TestKeys(t *testing.T) {
	keys := []tag.Key{tag.New("Width"), tag.New(""), tag.New("Mesh").AppendUint(12), tag.New("café")}

	for _, kf := range []format.KeyFormat{format.KeyFormatHashed, format.KeyFormatNarrow, format.KeyFormatWide} {
		t.Run(kf.String(), func(t *testing.T) {
			buf, enc := codec()
			want := 0
			for _, k := range keys {
				require.NoError(t, WriteKey(enc, k, kf))
				want += KeySize(k, kf)
			}
			require.Equal(t, want, buf.Len())

			d := decoder(buf.Bytes())
			for _, k := range keys {
				got, err := ReadKey(d, kf)
				require.NoError(t, err)
				require.Equal(t, k, got)
			}
		})
	}

	t.Run("hashed layout", func(t *testing.T) {
		buf, enc := codec()
		k := tag.New("Ab")
		require.NoError(t, WriteKey(enc, k, format.KeyFormatHashed))

		le := endian.GetLittleEndianEngine()
		raw := buf.Bytes()
		require.Equal(t, k.Hash(), le.Uint32(raw))
		require.Equal(t, []byte{2, 'A', 'b'}, raw[4:])
	})

	t.Run("narrow layout", func(t *testing.T) {
		buf, enc := codec()
		require.NoError(t, WriteKey(enc, tag.New("Ab"), format.KeyFormatNarrow))
		require.Equal(t, []byte{2, 0, 0, 0, 'A', 'b'}, buf.Bytes())

		d := decoder(buf.Bytes())
		require.Equal(t, "Ab", d.ReadNarrowString())
		require.NoError(t, d.Err())
	})

	t.Run("narrow key with flagged length", func(t *testing.T) {
		got, err := ReadKey(decoder([]byte{2, 0, 0, 0x80, 'A', 'b'}), format.KeyFormatNarrow)
		require.NoError(t, err)
		require.Equal(t, tag.New("Ab"), got)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		k := tag.New("k\xfe")

		buf, enc := codec()
		err := WriteKey(enc, k, format.KeyFormatWide)
		require.ErrorIs(t, err, errs.ErrInvalidKeyFormat)
		require.Zero(t, buf.Len())

		for _, kf := range []format.KeyFormat{format.KeyFormatHashed, format.KeyFormatNarrow} {
			buf, enc := codec()
			require.NoError(t, WriteKey(enc, k, kf))
			got, err := ReadKey(decoder(buf.Bytes()), kf)
			require.NoError(t, err)
			require.Equal(t, k, got)
		}
	})

	t.Run("truncated key", func(t *testing.T) {
		_, err := ReadKey(decoder([]byte{1, 2, 3, 4, 9, 'a'}), format.KeyFormatHashed)
		require.ErrorIs(t, err, errs.ErrEndOfStream)
	})
}

func TestOffsetEntry(t *testing.T) {
	t.Run("32-bit", func(t *testing.T) {
		buf, enc := codec()
		o := OffsetEntry{Offset: 40, Size: 4}
		require.NoError(t, WriteOffsetEntry(enc, o, false))
		require.Equal(t, OffsetEntrySize32, buf.Len())

		got, err := ReadOffsetEntry(decoder(buf.Bytes()), false)
		require.NoError(t, err)
		require.Equal(t, o, got)
		require.Equal(t, uint64(44), got.End())
	})

	t.Run("64-bit", func(t *testing.T) {
		buf, enc := codec()
		o := OffsetEntry{Offset: math.MaxUint32 + 10, Size: 1 << 33}
		require.NoError(t, WriteOffsetEntry(enc, o, true))
		require.Equal(t, OffsetEntrySize64, buf.Len())

		got, err := ReadOffsetEntry(decoder(buf.Bytes()), true)
		require.NoError(t, err)
		require.Equal(t, o, got)
	})

	t.Run("overflowing 32-bit pair", func(t *testing.T) {
		_, enc := codec()
		err := WriteOffsetEntry(enc, OffsetEntry{Offset: math.MaxUint32 + 1}, false)
		require.ErrorIs(t, err, errs.ErrEntryTooLarge)
	})
}
