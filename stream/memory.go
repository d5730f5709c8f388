package stream

import (
	"fmt"
	"io"

	"github.com/arloliu/tagdata/errs"
)

// Memory is a growable in-memory stream supporting reads, writes and seeks.
//
// Writes at the current position overwrite existing bytes and extend the
// stream when they run past its end. The zero value is an empty, host-local stream.
type Memory struct {
	buf               []byte
	pos               int64
	endianIndependent bool
}

var (
	_ io.ReadWriteSeeker = (*Memory)(nil)
	_ EndianDeclarer     = (*Memory)(nil)
)

// NewMemory creates a stream over data, positioned at its start.
// The stream takes ownership of data.
func NewMemory(data []byte, endianIndependent bool) *Memory {
	return &Memory{buf: data, endianIndependent: endianIndependent}
}

// Bytes returns the stream contents. The slice aliases internal storage.
func (m *Memory) Bytes() []byte {
	return m.buf
}

// Len returns the stream length.
func (m *Memory) Len() int {
	return len(m.buf)
}

// IsEndianIndependent implements EndianDeclarer.
func (m *Memory) IsEndianIndependent() bool {
	return m.endianIndependent
}

// Read implements io.Reader.
func (m *Memory) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

// Write implements io.Writer.
func (m *Memory) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if oldLen := int64(len(m.buf)); end > oldLen {
		if end > int64(cap(m.buf)) {
			grown := make([]byte, len(m.buf), max(end, int64(cap(m.buf))*2))
			copy(grown, m.buf)
			m.buf = grown
		}
		m.buf = m.buf[:end]
		if m.pos > oldLen {
			clear(m.buf[oldLen:m.pos])
		}
	}

	n := copy(m.buf[m.pos:], p)
	m.pos += int64(n)

	return n, nil
}

// Seek implements io.Seeker. Seeking past the end is allowed; a later write
// fills the gap with zeros.
func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	var abs int64

	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("stream: invalid whence %d", whence)
	}

	if abs < 0 {
		return 0, errs.ErrNegativeSeek
	}
	m.pos = abs

	return abs, nil
}
