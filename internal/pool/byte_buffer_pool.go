package pool

import (
	"io"
	"sync"
)

// Default sizes of pooled buffers.
const (
	EntryBufferDefaultSize  = 256             // 256B, most entries hold a single scalar or short string
	EntryBufferMaxThreshold = 1024 * 64       // 64KiB
	BodyBufferDefaultSize   = 1024 * 16       // 16KiB
	BodyBufferMaxThreshold  = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable byte slice that implements io.Writer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

var (
	_ io.Writer   = (*ByteBuffer)(nil)
	_ io.WriterTo = (*ByteBuffer)(nil)
)

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures the buffer can take requiredBytes more bytes without reallocating.
//
// Small buffers grow by at least EntryBufferDefaultSize, larger ones by 25% of
// their capacity, and always by at least requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := EntryBufferDefaultSize
	if cap(bb.B) > 4*EntryBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, requiredBytes)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being
// retained, so one huge entry does not pin memory for the process lifetime.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	entryPool = NewByteBufferPool(EntryBufferDefaultSize, EntryBufferMaxThreshold)
	bodyPool  = NewByteBufferPool(BodyBufferDefaultSize, BodyBufferMaxThreshold)
)

// GetEntryBuffer retrieves a buffer sized for a single container entry.
func GetEntryBuffer() *ByteBuffer {
	return entryPool.Get()
}

// PutEntryBuffer returns an entry buffer to its pool.
func PutEntryBuffer(bb *ByteBuffer) {
	entryPool.Put(bb)
}

// GetBodyBuffer retrieves a buffer sized for a whole serialized container.
func GetBodyBuffer() *ByteBuffer {
	return bodyPool.Get()
}

// PutBodyBuffer returns a body buffer to its pool.
func PutBodyBuffer(bb *ByteBuffer) {
	bodyPool.Put(bb)
}
