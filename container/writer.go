package container

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/endian"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/internal/collision"
	"github.com/arloliu/tagdata/internal/hash"
	"github.com/arloliu/tagdata/internal/pool"
	"github.com/arloliu/tagdata/section"
	"github.com/arloliu/tagdata/tag"
)

const saveBufferSize = 64 * 1024

type writerEntry struct {
	key tag.Key
	buf *pool.ByteBuffer
}

// Writer accumulates named entries in memory and serializes them on Save.
//
// Entries keep their insertion order. Adding a key twice fails with
// errs.ErrDuplicateKey. No I/O happens before Save, and Save may be called
// more than once. Call Release when done to recycle entry buffers.
type Writer struct {
	cfg               *Config
	engine            endian.EndianEngine
	endianIndependent bool
	entries           []*writerEntry
	tracker           *collision.Tracker
	released          bool
}

// NewWriter creates an empty writer.
func NewWriter(opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newWriter(cfg), nil
}

func newWriter(cfg *Config) *Writer {
	engine, independent := cfg.writerEngine()

	return &Writer{
		cfg:               cfg,
		engine:            engine,
		endianIndependent: independent,
		tracker:           collision.NewTracker(),
	}
}

// IsEndianIndependent reports whether the writer encodes little-endian for portable media.
func (w *Writer) IsEndianIndependent() bool {
	return w.endianIndependent
}

// Engine returns the byte order used for entry payloads.
func (w *Writer) Engine() endian.EndianEngine {
	return w.engine
}

// Len returns the number of entries.
func (w *Writer) Len() int {
	return len(w.entries)
}

// Contains reports whether an entry named k exists.
func (w *Writer) Contains(k tag.Key) bool {
	_, ok := w.tracker.Index(k.Name())
	return ok
}

// Keys returns the entry keys in insertion order.
func (w *Writer) Keys() []tag.Key {
	keys := make([]tag.Key, len(w.entries))
	for i, e := range w.entries {
		keys[i] = e.key
	}

	return keys
}

// EntrySize returns the current payload length of entry k.
func (w *Writer) EntrySize(k tag.Key) (int, error) {
	e, err := w.lookup(k)
	if err != nil {
		return 0, err
	}

	return e.buf.Len(), nil
}

// EntryBytes returns a copy of the current payload of entry k.
func (w *Writer) EntryBytes(k tag.Key) ([]byte, error) {
	e, err := w.lookup(k)
	if err != nil {
		return nil, err
	}

	return bytes.Clone(e.buf.Bytes()), nil
}

func (w *Writer) lookup(k tag.Key) (*writerEntry, error) {
	if w.released {
		return nil, errs.ErrWriterReleased
	}

	idx, ok := w.tracker.Index(k.Name())
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrKeyNotFound, k.Name())
	}

	return w.entries[idx], nil
}

func (w *Writer) register(k tag.Key, buf *pool.ByteBuffer) error {
	if w.released {
		return errs.ErrWriterReleased
	}
	if err := section.ValidateKey(k, w.cfg.keyFormat); err != nil {
		return err
	}

	other, err := w.tracker.Track(k)
	if err != nil {
		return err
	}
	if other != "" {
		w.cfg.logger.Warn("key hash collision",
			slog.String("key", k.Name()),
			slog.String("other", other),
			slog.Uint64("hash", uint64(k.Hash())))
	}

	w.entries = append(w.entries, &writerEntry{key: k, buf: buf})

	return nil
}

func (w *Writer) checkNew(k tag.Key) error {
	if w.released {
		return errs.ErrWriterReleased
	}
	if w.Contains(k) {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, k.Name())
	}
	if err := section.ValidateKey(k, w.cfg.keyFormat); err != nil {
		return err
	}

	return nil
}

// AddEntry creates entry k and returns an encoder appending to its buffer.
// The encoder stays valid until the entry is rewritten or the writer released.
func (w *Writer) AddEntry(k tag.Key) (*encoding.Encoder, error) {
	buf := pool.GetEntryBuffer()
	if err := w.register(k, buf); err != nil {
		pool.PutEntryBuffer(buf)
		return nil, err
	}

	return encoding.NewEncoder(buf, w.engine), nil
}

// AddEntryStream creates entry k and returns its buffer as a raw writer.
func (w *Writer) AddEntryStream(k tag.Key) (io.Writer, error) {
	buf := pool.GetEntryBuffer()
	if err := w.register(k, buf); err != nil {
		pool.PutEntryBuffer(buf)
		return nil, err
	}

	return buf, nil
}

// AddFunc creates entry k from the bytes fn encodes. The entry is only
// registered when fn and the encoder both succeed.
func (w *Writer) AddFunc(k tag.Key, fn func(e *encoding.Encoder) error) error {
	if err := w.checkNew(k); err != nil {
		return err
	}

	buf, err := w.encodeEntry(fn)
	if err != nil {
		return fmt.Errorf("add %q: %w", k.Name(), err)
	}

	if err := w.register(k, buf); err != nil {
		pool.PutEntryBuffer(buf)
		return err
	}

	return nil
}

// AddBytes creates entry k holding a copy of p.
func (w *Writer) AddBytes(k tag.Key, p []byte) error {
	return w.AddFunc(k, func(e *encoding.Encoder) error {
		e.WriteBytes(p)
		return nil
	})
}

// AddBoolBits creates entry k holding vs packed eight to a byte.
func (w *Writer) AddBoolBits(k tag.Key, vs []bool) error {
	return w.AddFunc(k, func(e *encoding.Encoder) error {
		e.WriteBoolBits(vs)
		return nil
	})
}

// Rewrite empties entry k and returns an encoder writing from its start.
// The entry keeps its position in the key order.
func (w *Writer) Rewrite(k tag.Key) (*encoding.Encoder, error) {
	e, err := w.lookup(k)
	if err != nil {
		return nil, err
	}

	e.buf.Reset()

	return encoding.NewEncoder(e.buf, w.engine), nil
}

// SetFunc replaces the content of entry k with the bytes fn encodes.
// On failure the previous content is kept.
func (w *Writer) SetFunc(k tag.Key, fn func(e *encoding.Encoder) error) error {
	entry, err := w.lookup(k)
	if err != nil {
		return err
	}

	buf, err := w.encodeEntry(fn)
	if err != nil {
		return fmt.Errorf("set %q: %w", k.Name(), err)
	}

	pool.PutEntryBuffer(entry.buf)
	entry.buf = buf

	return nil
}

func (w *Writer) encodeEntry(fn func(e *encoding.Encoder) error) (*pool.ByteBuffer, error) {
	buf := pool.GetEntryBuffer()
	enc := encoding.NewEncoder(buf, w.engine)

	err := fn(enc)
	if err == nil {
		err = enc.Err()
	}
	if err != nil {
		pool.PutEntryBuffer(buf)
		return nil, err
	}

	return buf, nil
}

// AddSubContainer creates entry k holding a nested container built by fn.
//
// The child writer shares this writer's configuration. It is serialized in
// full and stored behind a u32 length prefix. Nothing is added when fn fails.
func (w *Writer) AddSubContainer(k tag.Key, fn func(child *Writer) error) error {
	if err := w.checkNew(k); err != nil {
		return err
	}

	child := newWriter(w.cfg.child(w.endianIndependent))
	defer child.Release()

	if err := fn(child); err != nil {
		return fmt.Errorf("build sub-container %q: %w", k.Name(), err)
	}

	return w.AddFunc(k, func(e *encoding.Encoder) error {
		size, err := child.Size()
		if err != nil {
			return err
		}
		if size > math.MaxUint32 {
			return fmt.Errorf("%w: sub-container of %d bytes", errs.ErrEntryTooLarge, size)
		}

		e.WriteUint32(uint32(size))

		return child.writeTo(e)
	})
}

type layout struct {
	flag        section.Flag
	tableSize   uint64
	payloadBase uint64
	payloadSize uint64
}

func (l layout) total() uint64 {
	return l.payloadBase + l.payloadSize
}

func (w *Writer) layout() (layout, error) {
	flag, err := section.FlagForKeyFormat(w.cfg.keyFormat)
	if err != nil {
		return layout{}, err
	}

	if uint64(len(w.entries)) > math.MaxUint32 {
		return layout{}, fmt.Errorf("%w: %d entries", errs.ErrEntryTooLarge, len(w.entries))
	}

	keysSize := uint64(0)
	payload := uint64(0)
	for _, e := range w.entries {
		keysSize += uint64(section.KeySize(e.key, w.cfg.keyFormat))
		payload += uint64(e.buf.Len())
	}

	n := uint64(len(w.entries))
	base32 := section.HeaderSize + keysSize + n*section.OffsetEntrySize32
	wide := w.cfg.force64BitOffsets || base32+payload > w.cfg.offset64Threshold
	flag.Set64BitOffsets(wide)

	tableSize := n * uint64(flag.OffsetEntrySize())

	return layout{
		flag:        flag,
		tableSize:   tableSize,
		payloadBase: section.HeaderSize + keysSize + tableSize,
		payloadSize: payload,
	}, nil
}

// Size returns the number of bytes Save would write.
func (w *Writer) Size() (uint64, error) {
	if w.released {
		return 0, errs.ErrWriterReleased
	}

	l, err := w.layout()
	if err != nil {
		return 0, err
	}

	return l.total(), nil
}

// Save writes the container to dst: header, key table, offset table and
// payloads. Offsets are relative to the first byte written.
func (w *Writer) Save(dst io.Writer) error {
	if w.released {
		return errs.ErrWriterReleased
	}

	bw := bufio.NewWriterSize(dst, saveBufferSize)
	enc := encoding.NewEncoder(bw, w.engine)
	if err := w.writeTo(enc); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush container: %w", err)
	}

	return nil
}

func (w *Writer) writeTo(enc *encoding.Encoder) error {
	l, err := w.layout()
	if err != nil {
		return err
	}

	if l.flag.Has64BitOffsets() {
		w.cfg.logger.Debug("using 64-bit offsets",
			slog.Int("entries", len(w.entries)),
			slog.Uint64("payload_bytes", l.payloadSize))
	}

	header := section.Header{Flag: l.flag, Count: uint32(len(w.entries))} //nolint:gosec
	if err := section.WriteHeader(enc, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range w.entries {
		if err := section.WriteKey(enc, e.key, w.cfg.keyFormat); err != nil {
			return fmt.Errorf("write key table: %w", err)
		}
	}

	wide := l.flag.Has64BitOffsets()
	offset := l.payloadBase
	for _, e := range w.entries {
		size := uint64(e.buf.Len())
		if err := section.WriteOffsetEntry(enc, section.OffsetEntry{Offset: offset, Size: size}, wide); err != nil {
			return fmt.Errorf("write offset table: %w", err)
		}
		offset += size
	}

	for _, e := range w.entries {
		enc.WriteBytes(e.buf.Bytes())
	}

	if err := enc.Err(); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	return nil
}

// Bytes returns the serialized container.
func (w *Writer) Bytes() ([]byte, error) {
	size, err := w.Size()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(int(size)) //nolint:gosec
	enc := encoding.NewEncoder(&buf, w.engine)
	if err := w.writeTo(enc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Fingerprint returns the xxHash64 of the serialized container without
// materializing it.
func (w *Writer) Fingerprint() (uint64, error) {
	if w.released {
		return 0, errs.ErrWriterReleased
	}

	digest := hash.NewChecksum()
	if err := w.writeTo(encoding.NewEncoder(digest, w.engine)); err != nil {
		return 0, err
	}

	return digest.Sum64(), nil
}

// KeyFormat returns the key table form this writer emits.
func (w *Writer) KeyFormat() format.KeyFormat {
	return w.cfg.keyFormat
}

// Release returns entry buffers to the pool. The writer is unusable afterwards.
func (w *Writer) Release() {
	if w.released {
		return
	}

	for _, e := range w.entries {
		pool.PutEntryBuffer(e.buf)
		e.buf = nil
	}
	w.entries = nil
	w.tracker.Reset()
	w.released = true
}
