package container

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/endian"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/section"
	"github.com/arloliu/tagdata/stream"
	"github.com/arloliu/tagdata/tag"
)

const (
	tableBufferSize  = 4096
	entryBufferSize  = 4096
	maxPreallocCount = 1024
)

// EntryInfo locates one entry payload within the source stream.
type EntryInfo struct {
	Key    tag.Key
	Offset int64 // absolute position in the source stream
	Size   int64
}

// Reader gives random access to the entries of a container.
//
// Only the header, key table and offset table are read by NewReader;
// payloads are read on demand. A Reader is not safe for concurrent use, and
// nested readers share the source stream, so finish with one before using a
// sibling.
type Reader struct {
	cfg               *Config
	src               io.ReadSeeker
	engine            endian.EndianEngine
	endianIndependent bool
	header            section.Header
	start             int64
	end               int64
	keys              []tag.Key
	index             map[string]section.OffsetEntry
	closed            bool
}

// NewReader parses the container starting at the current position of src.
func NewReader(src io.ReadSeeker, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newReader(src, cfg)
}

func newReader(src io.ReadSeeker, cfg *Config) (*Reader, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locate container start: %w", err)
	}

	engine, independent := cfg.readerEngine(src)
	r := &Reader{
		cfg:               cfg,
		src:               src,
		engine:            engine,
		endianIndependent: independent,
		start:             start,
	}

	d := encoding.NewDecoder(src, engine)
	r.header, err = section.ReadHeader(d)
	if err != nil {
		return nil, err
	}

	if r.header.IsLegacy() {
		err = r.readLegacyTable(d)
	} else {
		err = r.readVersionedTables()
	}
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reader) addEntry(k tag.Key, o section.OffsetEntry) {
	if _, dup := r.index[k.Name()]; dup {
		r.cfg.logger.Warn("duplicate key in container, keeping first",
			slog.String("key", k.Name()))

		return
	}

	r.keys = append(r.keys, k)
	r.index[k.Name()] = o
}

func (r *Reader) readVersionedTables() error {
	kf := r.header.Flag.KeyFormat()
	wide := r.header.Flag.Has64BitOffsets()
	count := int(r.header.Count)

	r.keys = make([]tag.Key, 0, min(count, maxPreallocCount))
	r.index = make(map[string]section.OffsetEntry, min(count, maxPreallocCount))

	d := encoding.NewDecoder(bufio.NewReaderSize(r.src, tableBufferSize), r.engine)

	keys := make([]tag.Key, 0, min(count, maxPreallocCount))
	for range count {
		k, err := section.ReadKey(d, kf)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}

	tableEnd := uint64(section.HeaderSize)
	for _, k := range keys {
		o, err := section.ReadOffsetEntry(d, wide)
		if err != nil {
			return err
		}
		if o.End() < o.Offset || o.End() > math.MaxInt64-uint64(r.start) {
			return fmt.Errorf("%w: entry %q offset %d size %d out of range",
				errs.ErrInvalidFormat, k.Name(), o.Offset, o.Size)
		}

		tableEnd = max(tableEnd, o.End())
		r.addEntry(k, o)
	}

	r.end = r.start + max(int64(tableEnd), d.Consumed()+section.HeaderSize) //nolint:gosec

	r.cfg.logger.Debug("opened container",
		slog.String("flags", r.header.Flag.String()),
		slog.Int("entries", len(r.keys)))

	return nil
}

// readLegacyTable walks the legacy layout where every payload follows its
// name and size in place. d has consumed the count word.
func (r *Reader) readLegacyTable(d *encoding.Decoder) error {
	count := int(r.header.Count)
	r.keys = make([]tag.Key, 0, min(count, maxPreallocCount))
	r.index = make(map[string]section.OffsetEntry, min(count, maxPreallocCount))

	for range count {
		k, err := section.ReadKey(d, r.header.Flag.KeyFormat())
		if err != nil {
			return err
		}

		size := uint64(d.ReadUint32())
		offset := uint64(d.Consumed()) //nolint:gosec
		d.Skip(int64(size))
		if err := d.Err(); err != nil {
			return fmt.Errorf("skip legacy entry %q: %w", k.Name(), err)
		}

		r.addEntry(k, section.OffsetEntry{Offset: offset, Size: size})
	}

	r.end = r.start + d.Consumed()

	r.cfg.logger.Debug("opened legacy container", slog.Int("entries", len(r.keys)))

	return nil
}

// Flags returns the header flag word. Legacy containers report zero.
func (r *Reader) Flags() section.Flag {
	return r.header.Flag
}

// IsLegacy reports whether the container uses the legacy layout.
func (r *Reader) IsLegacy() bool {
	return r.header.IsLegacy()
}

// IsEndianIndependent reports whether payloads are decoded as little-endian.
func (r *Reader) IsEndianIndependent() bool {
	return r.endianIndependent
}

// Engine returns the byte order used to decode payloads.
func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// Start returns the absolute position of the container in the source stream.
func (r *Reader) Start() int64 {
	return r.start
}

// End returns the absolute position one past the last byte of the container.
func (r *Reader) End() int64 {
	return r.end
}

// Len returns the number of entries.
func (r *Reader) Len() int {
	return len(r.keys)
}

// Keys returns the entry keys in stored order.
func (r *Reader) Keys() []tag.Key {
	return append([]tag.Key(nil), r.keys...)
}

// Contains reports whether an entry named k exists.
func (r *Reader) Contains(k tag.Key) bool {
	_, ok := r.index[k.Name()]
	return ok
}

// Entry returns the location of entry k.
func (r *Reader) Entry(k tag.Key) (EntryInfo, bool) {
	o, ok := r.index[k.Name()]
	if !ok {
		return EntryInfo{}, false
	}

	return r.entryInfo(k, o), true
}

func (r *Reader) entryInfo(k tag.Key, o section.OffsetEntry) EntryInfo {
	return EntryInfo{
		Key:    k,
		Offset: r.start + int64(o.Offset), //nolint:gosec
		Size:   int64(o.Size),             //nolint:gosec
	}
}

// All iterates over the entries in stored order.
func (r *Reader) All() iter.Seq2[tag.Key, EntryInfo] {
	return func(yield func(tag.Key, EntryInfo) bool) {
		for _, k := range r.keys {
			if !yield(k, r.entryInfo(k, r.index[k.Name()])) {
				return
			}
		}
	}
}

func (r *Reader) lookup(k tag.Key) (EntryInfo, error) {
	if r.closed {
		return EntryInfo{}, errs.ErrReaderClosed
	}

	info, ok := r.Entry(k)
	if !ok {
		return EntryInfo{}, fmt.Errorf("%w: %q", errs.ErrKeyNotFound, k.Name())
	}

	return info, nil
}

// OpenEntry returns a bounded view over the payload of entry k.
// The view shares the source stream and is valid until the reader is closed.
func (r *Reader) OpenEntry(k tag.Key) (*stream.View, error) {
	info, err := r.lookup(k)
	if err != nil {
		return nil, err
	}

	return stream.NewView(r.src, info.Offset, info.Size), nil
}

// ProcessEntry hands fn a decoder positioned at the start of entry k.
// The decoder cannot read past the end of the entry.
func (r *Reader) ProcessEntry(k tag.Key, fn func(d *encoding.Decoder) error) error {
	view, err := r.OpenEntry(k)
	if err != nil {
		return err
	}

	size, _ := view.Len()
	d := encoding.NewDecoder(bufio.NewReaderSize(view, int(min(size, entryBufferSize))+1), r.engine)

	if err := fn(d); err != nil {
		return fmt.Errorf("process entry %q: %w", k.Name(), err)
	}
	if err := d.Err(); err != nil {
		return fmt.Errorf("process entry %q: %w", k.Name(), err)
	}

	return nil
}

// ReadEntry returns a copy of the payload of entry k.
func (r *Reader) ReadEntry(k tag.Key) ([]byte, error) {
	var out []byte
	err := r.ProcessEntry(k, func(d *encoding.Decoder) error {
		info, _ := r.Entry(k)
		out = d.ReadBytes(int(info.Size))

		return nil
	})

	return out, err
}

// GetBoolBits decodes n booleans packed eight to a byte from entry k.
func (r *Reader) GetBoolBits(k tag.Key, n int) ([]bool, error) {
	var out []bool
	err := r.ProcessEntry(k, func(d *encoding.Decoder) error {
		out = d.ReadBoolBits(n)
		return nil
	})

	return out, err
}

// ProcessSubContainer parses the nested container stored in entry k and
// hands it to fn. The nested reader sees a bounded view of the source.
func (r *Reader) ProcessSubContainer(k tag.Key, fn func(child *Reader) error) error {
	info, err := r.lookup(k)
	if err != nil {
		return err
	}

	if info.Size < section.SubContainerLen {
		return fmt.Errorf("%w: sub-container %q has %d bytes", errs.ErrInvalidFormat, k.Name(), info.Size)
	}

	var length uint32
	err = r.ProcessEntry(k, func(d *encoding.Decoder) error {
		length = d.ReadUint32()
		return nil
	})
	if err != nil {
		return err
	}

	if int64(length) > info.Size-section.SubContainerLen {
		return fmt.Errorf("%w: sub-container %q declares %d bytes in a %d byte entry",
			errs.ErrInvalidFormat, k.Name(), length, info.Size-section.SubContainerLen)
	}

	view := stream.NewView(r.src, info.Offset+section.SubContainerLen, int64(length))
	child, err := newReader(view, r.cfg.child(r.endianIndependent))
	if err != nil {
		return fmt.Errorf("open sub-container %q: %w", k.Name(), err)
	}
	defer child.Close(false) //nolint:errcheck

	if err := fn(child); err != nil {
		return fmt.Errorf("process sub-container %q: %w", k.Name(), err)
	}

	return nil
}

// Close releases the reader. With seekToEnd the source is positioned just
// past the container so the caller can continue reading what follows.
// When the reader owns the stream it is closed instead. Close is idempotent.
func (r *Reader) Close(seekToEnd bool) error {
	if r.closed {
		return nil
	}
	r.closed = true

	if r.cfg.ownsStream {
		if c, ok := r.src.(io.Closer); ok {
			return c.Close()
		}

		return nil
	}

	if seekToEnd {
		if _, err := r.src.Seek(r.end, io.SeekStart); err != nil {
			return fmt.Errorf("seek past container: %w", err)
		}
	}

	return nil
}
