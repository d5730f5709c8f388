package encoding

import (
	"io"
	"math"

	"github.com/arloliu/tagdata/endian"
)

// Encoder writes primitive values to an underlying writer.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w       io.Writer
	engine  endian.EndianEngine
	scratch []byte
	written int64
	err     error
}

// NewEncoder creates an encoder writing to w in the byte order of engine.
func NewEncoder(w io.Writer, engine endian.EndianEngine) *Encoder {
	return &Encoder{
		w:       w,
		engine:  engine,
		scratch: make([]byte, 0, 16),
	}
}

// Reset points the encoder at a new writer and clears the error state.
func (e *Encoder) Reset(w io.Writer) {
	e.w = w
	e.written = 0
	e.err = nil
}

// Err returns the first error encountered, if any.
func (e *Encoder) Err() error {
	return e.err
}

// Written returns the number of bytes written since creation or the last Reset.
func (e *Encoder) Written() int64 {
	return e.written
}

// Engine returns the byte order used by the encoder.
func (e *Encoder) Engine() endian.EndianEngine {
	return e.engine
}

// Fail records err unless an earlier error was already recorded.
// Marshalers use it to report validation failures.
func (e *Encoder) Fail(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// Write implements io.Writer so an Encoder can be handed to code that
// produces raw bytes. It honors the sticky error.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	n, err := e.w.Write(p)
	e.written += int64(n)
	if err != nil {
		e.err = err
	} else if n < len(p) {
		e.err = io.ErrShortWrite
	}

	return n, e.err
}

// WriteBytes writes p verbatim.
func (e *Encoder) WriteBytes(p []byte) {
	_, _ = e.Write(p)
}

func (e *Encoder) flushScratch() {
	_, _ = e.Write(e.scratch)
	e.scratch = e.scratch[:0]
}

// WriteUint8 writes a single byte.
func (e *Encoder) WriteUint8(v uint8) {
	e.scratch = append(e.scratch[:0], v)
	e.flushScratch()
}

// WriteInt8 writes a signed byte.
func (e *Encoder) WriteInt8(v int8) {
	e.WriteUint8(uint8(v)) //nolint:gosec
}

// WriteBool writes v as one byte, 1 for true and 0 for false.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
		return
	}
	e.WriteUint8(0)
}

// WriteUint16 writes a 16-bit unsigned integer.
func (e *Encoder) WriteUint16(v uint16) {
	e.scratch = e.engine.AppendUint16(e.scratch[:0], v)
	e.flushScratch()
}

// WriteInt16 writes a 16-bit signed integer.
func (e *Encoder) WriteInt16(v int16) {
	e.WriteUint16(uint16(v)) //nolint:gosec
}

// WriteUint32 writes a 32-bit unsigned integer.
func (e *Encoder) WriteUint32(v uint32) {
	e.scratch = e.engine.AppendUint32(e.scratch[:0], v)
	e.flushScratch()
}

// WriteInt32 writes a 32-bit signed integer.
func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v)) //nolint:gosec
}

// WriteUint64 writes a 64-bit unsigned integer.
func (e *Encoder) WriteUint64(v uint64) {
	e.scratch = e.engine.AppendUint64(e.scratch[:0], v)
	e.flushScratch()
}

// WriteInt64 writes a 64-bit signed integer.
func (e *Encoder) WriteInt64(v int64) {
	e.WriteUint64(uint64(v)) //nolint:gosec
}

// WriteFloat32 writes the IEEE 754 bits of v.
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes the IEEE 754 bits of v.
func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

// WriteFloat32s writes each value of vs in order.
func (e *Encoder) WriteFloat32s(vs ...float32) {
	if e.err != nil {
		return
	}

	e.scratch = e.scratch[:0]
	for _, v := range vs {
		e.scratch = e.engine.AppendUint32(e.scratch, math.Float32bits(v))
	}
	e.flushScratch()
}

// WriteInt32s writes each value of vs in order.
func (e *Encoder) WriteInt32s(vs ...int32) {
	if e.err != nil {
		return
	}

	e.scratch = e.scratch[:0]
	for _, v := range vs {
		e.scratch = e.engine.AppendUint32(e.scratch, uint32(v)) //nolint:gosec
	}
	e.flushScratch()
}
