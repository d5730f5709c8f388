package encoding

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/tagdata/endian"
	"github.com/arloliu/tagdata/errs"
)

// chunkedReadThreshold bounds the allocation made up front for a length read
// from the stream. Larger payloads are read incrementally so a corrupt length
// fails with ErrEndOfStream instead of allocating gigabytes.
const chunkedReadThreshold = 1 << 16

// Decoder reads primitive values from an underlying reader.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r       io.Reader
	engine  endian.EndianEngine
	scratch [8]byte
	read    int64
	err     error
}

// NewDecoder creates a decoder reading from r in the byte order of engine.
func NewDecoder(r io.Reader, engine endian.EndianEngine) *Decoder {
	return &Decoder{r: r, engine: engine}
}

// Reset points the decoder at a new reader and clears the error state.
func (d *Decoder) Reset(r io.Reader) {
	d.r = r
	d.read = 0
	d.err = nil
}

// Err returns the first error encountered, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Consumed returns the number of bytes consumed since creation or the last Reset.
func (d *Decoder) Consumed() int64 {
	return d.read
}

// Engine returns the byte order used by the decoder.
func (d *Decoder) Engine() endian.EndianEngine {
	return d.engine
}

// Fail records err unless an earlier error was already recorded.
func (d *Decoder) Fail(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// Read implements io.Reader on top of the sticky error state.
func (d *Decoder) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}

	n, err := d.r.Read(p)
	d.read += int64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		d.err = err
	}

	return n, err
}

// ReadFull fills p entirely or records ErrEndOfStream.
func (d *Decoder) ReadFull(p []byte) {
	if d.err != nil {
		return
	}

	n, err := io.ReadFull(d.r, p)
	d.read += int64(n)
	if err != nil {
		d.err = wrapReadErr(err)
	}
}

// ReadBytes reads exactly n bytes into a new slice.
func (d *Decoder) ReadBytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 {
		d.err = fmt.Errorf("%w: %d", errs.ErrInvalidLength, n)
		return nil
	}

	if n <= chunkedReadThreshold {
		buf := make([]byte, n)
		d.ReadFull(buf)
		if d.err != nil {
			return nil
		}

		return buf
	}

	buf := make([]byte, 0, chunkedReadThreshold)
	lr := io.LimitReader(d.r, int64(n))
	for len(buf) < n {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		m, err := lr.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+m]
		d.read += int64(m)
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) == n {
				break
			}
			d.err = wrapReadErr(err)
			return nil
		}
	}

	return buf
}

// Skip discards n bytes, seeking when the reader supports it.
func (d *Decoder) Skip(n int64) {
	if d.err != nil || n == 0 {
		return
	}

	if s, ok := d.r.(io.Seeker); ok {
		if _, err := s.Seek(n, io.SeekCurrent); err != nil {
			d.err = err
			return
		}
		d.read += n

		return
	}

	m, err := io.CopyN(io.Discard, d.r, n)
	d.read += m
	if err != nil {
		d.err = wrapReadErr(err)
	}
}

func (d *Decoder) fill(n int) []byte {
	buf := d.scratch[:n]
	d.ReadFull(buf)
	if d.err != nil {
		clear(buf)
	}

	return buf
}

// ReadUint8 reads one byte.
func (d *Decoder) ReadUint8() uint8 {
	return d.fill(1)[0]
}

// ReadInt8 reads a signed byte.
func (d *Decoder) ReadInt8() int8 {
	return int8(d.ReadUint8()) //nolint:gosec
}

// ReadBool reads one byte; any non-zero value is true.
func (d *Decoder) ReadBool() bool {
	return d.ReadUint8() != 0
}

// ReadUint16 reads a 16-bit unsigned integer.
func (d *Decoder) ReadUint16() uint16 {
	return d.engine.Uint16(d.fill(2))
}

// ReadInt16 reads a 16-bit signed integer.
func (d *Decoder) ReadInt16() int16 {
	return int16(d.ReadUint16()) //nolint:gosec
}

// ReadUint32 reads a 32-bit unsigned integer.
func (d *Decoder) ReadUint32() uint32 {
	return d.engine.Uint32(d.fill(4))
}

// ReadInt32 reads a 32-bit signed integer.
func (d *Decoder) ReadInt32() int32 {
	return int32(d.ReadUint32()) //nolint:gosec
}

// ReadUint64 reads a 64-bit unsigned integer.
func (d *Decoder) ReadUint64() uint64 {
	return d.engine.Uint64(d.fill(8))
}

// ReadInt64 reads a 64-bit signed integer.
func (d *Decoder) ReadInt64() int64 {
	return int64(d.ReadUint64()) //nolint:gosec
}

// ReadFloat32 reads an IEEE 754 single precision value.
func (d *Decoder) ReadFloat32() float32 {
	return math.Float32frombits(d.ReadUint32())
}

// ReadFloat64 reads an IEEE 754 double precision value.
func (d *Decoder) ReadFloat64() float64 {
	return math.Float64frombits(d.ReadUint64())
}

// ReadFloat32s fills dst with consecutive float32 values.
func (d *Decoder) ReadFloat32s(dst ...*float32) {
	for _, p := range dst {
		*p = d.ReadFloat32()
	}
}

// ReadInt32s fills dst with consecutive int32 values.
func (d *Decoder) ReadInt32s(dst ...*int32) {
	for _, p := range dst {
		*p = d.ReadInt32()
	}
}

func wrapReadErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", errs.ErrEndOfStream, err)
	}

	return err
}
