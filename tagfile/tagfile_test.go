package tagfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/tag"
)

func buildWriter(t *testing.T) *container.Writer {
	t.Helper()

	w, err := container.NewWriter()
	require.NoError(t, err)
	t.Cleanup(w.Release)

	require.NoError(t, container.Add(w, tag.New("Width"), uint32(256)))
	require.NoError(t, container.AddSlice(w, tag.New("Samples"), make([]float32, 1024)))
	require.NoError(t, w.AddSubContainer(tag.New("Meta"), func(child *container.Writer) error {
		return container.Add(child, tag.New("Name"), "Hello")
	}))

	return w
}

func checkContent(t *testing.T, r *container.Reader) {
	t.Helper()

	width, err := container.Get[uint32](r, tag.New("Width"))
	require.NoError(t, err)
	require.Equal(t, uint32(256), width)

	samples, err := container.GetSlice[float32](r, tag.New("Samples"))
	require.NoError(t, err)
	require.Len(t, samples, 1024)

	err = r.ProcessSubContainer(tag.New("Meta"), func(meta *container.Reader) error {
		name, err := container.Get[string](meta, tag.New("Name"))
		require.Equal(t, "Hello", name)

		return err
	})
	require.NoError(t, err)
}

func TestHeader_Parse(t *testing.T) {
	h := Header{Compression: format.CompressionS2, Version: Version, BodyLength: 42, Checksum: 0xDEADBEEF}
	b := h.Bytes()
	require.Len(t, b, HeaderSize)
	require.Equal(t, []byte("TAGD"), b[:4])

	parsed, err := ParseHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	t.Run("short", func(t *testing.T) {
		_, err := ParseHeader(b[:10])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := bytes.Clone(b)
		bad[0] = 'X'
		_, err := ParseHeader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("future version", func(t *testing.T) {
		bad := bytes.Clone(b)
		bad[5] = Version + 1
		_, err := ParseHeader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidVersion)
	})

	t.Run("unknown compression", func(t *testing.T) {
		bad := bytes.Clone(b)
		bad[4] = 0x7F
		_, err := ParseHeader(bad)
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})
}

func TestWriteRead(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, buildWriter(t), WithCompression(ct)))

			h, err := ParseHeader(buf.Bytes())
			require.NoError(t, err)
			require.Equal(t, ct, h.Compression)
			require.Equal(t, uint64(buf.Len()-HeaderSize), h.BodyLength)

			r, err := Read(&buf)
			require.NoError(t, err)
			checkContent(t, r)
		})
	}
}

func TestRead_DetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, buildWriter(t)))
	data := buf.Bytes()

	t.Run("checksum mismatch", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0xFF
		_, err := Read(bytes.NewReader(bad))
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)

		_, err = Read(bytes.NewReader(bad), WithoutChecksum())
		require.NoError(t, err)
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := Read(bytes.NewReader(data[:len(data)-10]))
		require.ErrorIs(t, err, errs.ErrEndOfStream)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := Read(bytes.NewReader(data[:5]))
		require.ErrorIs(t, err, errs.ErrEndOfStream)
	})
}

func TestCreateOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("uncompressed is read lazily", func(t *testing.T) {
		path := filepath.Join(dir, "plain.tag")
		require.NoError(t, Create(path, buildWriter(t)))

		r, err := Open(path)
		require.NoError(t, err)
		checkContent(t, r)

		info, ok := r.Entry(tag.New("Width"))
		require.True(t, ok)
		require.Equal(t, int64(4), info.Size)
		require.NoError(t, r.Close(false))
	})

	t.Run("compressed", func(t *testing.T) {
		path := filepath.Join(dir, "zstd.tag")
		require.NoError(t, Create(path, buildWriter(t), WithCompression(format.CompressionZstd)))

		r, err := Open(path)
		require.NoError(t, err)
		checkContent(t, r)
		require.NoError(t, r.Close(false))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.tag")
		require.NoError(t, Create(path, buildWriter(t)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[HeaderSize+10] ^= 0xFF
		require.NoError(t, os.WriteFile(path, data, 0o600))

		_, err = Open(path)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "missing.tag"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid option", func(t *testing.T) {
		err := Create(filepath.Join(dir, "x.tag"), buildWriter(t), WithCompression(format.CompressionType(9)))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})
}

func TestStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stat.tag")
	require.NoError(t, Create(path, buildWriter(t), WithCompression(format.CompressionS2)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	info, err := Stat(path)
	require.NoError(t, err)
	require.Equal(t, path, info.Path)
	require.Equal(t, int64(len(data)), info.Size)
	require.Equal(t, digest.FromBytes(data), info.Digest)
	require.Equal(t, format.CompressionS2, info.Header.Compression)
	require.Equal(t, 3, info.Entries)
	require.NoError(t, info.Digest.Validate())
}
