package tagfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/arloliu/tagdata/compress"
	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/internal/hash"
	"github.com/arloliu/tagdata/stream"
)

// Write serializes w into dst as a tag file.
func Write(dst io.Writer, w *container.Writer, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}

	body, err := w.Bytes()
	if err != nil {
		return err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}

	stored, err := codec.Compress(body)
	if err != nil {
		return fmt.Errorf("compress body with %s: %w", cfg.compression, err)
	}

	h := Header{
		Compression: cfg.compression,
		Version:     Version,
		BodyLength:  uint64(len(stored)),
		Checksum:    hash.Checksum(stored),
	}

	if _, err := dst.Write(h.Bytes()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := dst.Write(stored); err != nil {
		return fmt.Errorf("write body: %w", err)
	}

	cfg.logger.Debug("wrote tag file",
		slog.String("compression", cfg.compression.String()),
		slog.Int("raw_bytes", len(body)),
		slog.Int("stored_bytes", len(stored)))

	return nil
}

// Read parses a complete tag file from src into memory.
func Read(src io.Reader, opts ...Option) (*container.Reader, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	hb := make([]byte, HeaderSize)
	if _, err := io.ReadFull(src, hb); err != nil {
		return nil, fmt.Errorf("read header: %w", wrapEOF(err))
	}

	h, err := ParseHeader(hb)
	if err != nil {
		return nil, err
	}

	stored, err := readBody(src, h.BodyLength)
	if err != nil {
		return nil, err
	}

	return openBody(h, stored, cfg)
}

func readBody(src io.Reader, n uint64) ([]byte, error) {
	var buf bytes.Buffer
	m, err := io.Copy(&buf, io.LimitReader(src, int64(n))) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if uint64(m) != n {
		return nil, fmt.Errorf("read body: %w: have %d of %d bytes", errs.ErrEndOfStream, m, n)
	}

	return buf.Bytes(), nil
}

func openBody(h Header, stored []byte, cfg *Config) (*container.Reader, error) {
	if !cfg.skipChecksum && hash.Checksum(stored) != h.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	body, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("decompress body with %s: %w", h.Compression, err)
	}

	return container.NewReader(bytes.NewReader(body), cfg.containerOpts...)
}

// Create writes w to a new file at path, replacing any existing file.
func Create(path string, w *container.Writer, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := Write(f, w, opts...); err != nil {
		return err
	}

	return f.Sync()
}

// fileView is a bounded view of the body that closes the file with it.
type fileView struct {
	*stream.View
	file *os.File
}

func (v *fileView) Close() error {
	return v.file.Close()
}

// Open opens the tag file at path.
//
// Uncompressed bodies are not loaded: the returned reader owns the file and
// reads entries from it on demand, so it must be closed. Compressed bodies
// are inflated into memory and the file is closed before Open returns.
func Open(path string, opts ...Option) (*container.Reader, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := openFile(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return r, nil
}

func openFile(f *os.File, cfg *Config) (*container.Reader, error) {
	hb := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hb); err != nil {
		return nil, fmt.Errorf("read header: %w", wrapEOF(err))
	}

	h, err := ParseHeader(hb)
	if err != nil {
		return nil, err
	}

	if h.Compression != format.CompressionNone {
		stored, err := readBody(f, h.BodyLength)
		if err != nil {
			return nil, err
		}
		r, err := openBody(h, stored, cfg)
		if err != nil {
			return nil, err
		}
		_ = f.Close()

		return r, nil
	}

	if !cfg.skipChecksum {
		if err := verifyStream(f, h); err != nil {
			return nil, err
		}
		if _, err := f.Seek(HeaderSize, io.SeekStart); err != nil {
			return nil, err
		}
	}

	view := &fileView{View: stream.NewView(f, HeaderSize, int64(h.BodyLength)), file: f} //nolint:gosec
	opts := append([]container.Option{container.WithOwnedStream()}, cfg.containerOpts...)

	return container.NewReader(view, opts...)
}

func verifyStream(f io.Reader, h Header) error {
	sum := hash.NewChecksum()
	n, err := io.Copy(sum, io.LimitReader(f, int64(h.BodyLength))) //nolint:gosec
	if err != nil {
		return fmt.Errorf("checksum body: %w", err)
	}
	if uint64(n) != h.BodyLength {
		return fmt.Errorf("checksum body: %w: have %d of %d bytes", errs.ErrEndOfStream, n, h.BodyLength)
	}
	if sum.Sum64() != h.Checksum {
		return errs.ErrChecksumMismatch
	}

	return nil
}

func wrapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", errs.ErrEndOfStream, err)
	}

	return err
}

// Info describes a tag file on disk.
type Info struct {
	Path    string        `json:"path" yaml:"path"`
	Size    int64         `json:"size" yaml:"size"`
	Header  Header        `json:"header" yaml:"header"`
	Digest  digest.Digest `json:"digest" yaml:"digest"`
	Entries int           `json:"entries" yaml:"entries"`
}

// Stat reads the header of the file at path and computes its content
// digest. The container index is parsed to count entries.
func Stat(path string, opts ...Option) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	dgst, err := digest.Canonical.FromReader(f)
	if err != nil {
		return Info{}, fmt.Errorf("digest %s: %w", path, err)
	}

	size, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return Info{}, err
	}

	r, err := Open(path, opts...)
	if err != nil {
		return Info{}, err
	}
	defer r.Close(false) //nolint:errcheck

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Info{}, err
	}
	hb := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hb); err != nil {
		return Info{}, wrapEOF(err)
	}
	h, err := ParseHeader(hb)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Path:    path,
		Size:    size,
		Header:  h,
		Digest:  dgst,
		Entries: r.Len(),
	}, nil
}
