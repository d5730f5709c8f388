package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/tagdata/errs"
)

// Unbounded is the length of a view that extends to the end of its base.
const Unbounded int64 = -1

var (
	errNotReadable = errors.New("stream: base is not readable")
	errNotWritable = errors.New("stream: base is not writable")
)

// View is a window over a base stream starting at a fixed offset.
//
// Every operation positions the base before touching it, so several views
// over the same base may be used one after another. A View is not safe for
// concurrent use and neither are views sharing a base.
type View struct {
	base   io.Seeker
	offset int64
	length int64
	pos    int64
}

var (
	_ io.ReadWriteSeeker = (*View)(nil)
	_ io.ReaderAt        = (*View)(nil)
	_ io.Closer          = (*View)(nil)
)

// NewView creates a view of length bytes starting at offset within base.
// A length of Unbounded lets the view extend to the end of base.
func NewView(base io.Seeker, offset, length int64) *View {
	return &View{base: base, offset: offset, length: length}
}

// Offset returns the absolute position of the view start within the base.
func (v *View) Offset() int64 {
	return v.offset
}

// Len returns the view length, or the remaining base length for unbounded views.
func (v *View) Len() (int64, error) {
	if v.length != Unbounded {
		return v.length, nil
	}

	end, err := v.base.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	return max(end-v.offset, 0), nil
}

// Position returns the current position relative to the view start.
func (v *View) Position() int64 {
	return v.pos
}

// Base returns the underlying stream.
func (v *View) Base() io.Seeker {
	return v.base
}

func (v *View) remaining() int64 {
	if v.length == Unbounded {
		return -1
	}

	return v.length - v.pos
}

// Read reads up to len(p) bytes without crossing the end of the view.
func (v *View) Read(p []byte) (int, error) {
	r, ok := v.base.(io.Reader)
	if !ok {
		return 0, errNotReadable
	}

	if rem := v.remaining(); rem >= 0 {
		if rem == 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > rem {
			p = p[:rem]
		}
	}

	if _, err := v.base.Seek(v.offset+v.pos, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := r.Read(p)
	v.pos += int64(n)

	return n, err
}

// ReadAt reads len(p) bytes at off relative to the view start without moving the view position.
func (v *View) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errs.ErrNegativeSeek
	}

	saved := v.pos
	defer func() { v.pos = saved }()

	v.pos = off

	return io.ReadFull(v, p)
}

// Write writes p at the current position. Bounded views reject writes past
// their end with errs.ErrWriteOutOfRange after writing what fits.
func (v *View) Write(p []byte) (int, error) {
	w, ok := v.base.(io.Writer)
	if !ok {
		return 0, errNotWritable
	}

	var overflow bool
	if rem := v.remaining(); rem >= 0 && int64(len(p)) > rem {
		p = p[:rem]
		overflow = true
	}

	if _, err := v.base.Seek(v.offset+v.pos, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := w.Write(p)
	v.pos += int64(n)
	if err == nil && overflow {
		err = fmt.Errorf("%w: view of %d bytes", errs.ErrWriteOutOfRange, v.length)
	}

	return n, err
}

// Seek sets the position relative to the view. Positions beyond the end of a
// bounded view are allowed; reads there return io.EOF.
func (v *View) Seek(offset int64, whence int) (int64, error) {
	var abs int64

	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = v.pos + offset
	case io.SeekEnd:
		n, err := v.Len()
		if err != nil {
			return 0, err
		}
		abs = n + offset
	default:
		return 0, fmt.Errorf("stream: invalid whence %d", whence)
	}

	if abs < 0 {
		return 0, errs.ErrNegativeSeek
	}
	v.pos = abs

	return abs, nil
}

// Close is a no-op: a view never owns its base.
func (v *View) Close() error {
	return nil
}

// IsEndianIndependent forwards the declaration of the base stream.
func (v *View) IsEndianIndependent() bool {
	return IsEndianIndependent(v.base)
}
