package encoding

import (
	"fmt"
	"math"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/tagdata/errs"
)

// NarrowStringFlag marks a string length prefix whose characters are one byte wide.
const NarrowStringFlag uint32 = 0x80000000

// MaxStringLength is the largest character count a string length prefix can carry.
const MaxStringLength = math.MaxInt32

// WriteString writes s with a u32 length prefix.
//
// Strings whose code points all fit in one byte are stored narrow, one byte per
// character, with NarrowStringFlag set in the prefix. Anything else is stored
// as UTF-16 code units. s must be valid UTF-8.
func (e *Encoder) WriteString(s string) {
	if e.err != nil {
		return
	}

	if !utf8.ValidString(s) {
		e.Fail(fmt.Errorf("%w: string %q is not valid UTF-8", errs.ErrInvalidFormat, s))
		return
	}

	if count, ok := narrowLength(s); ok {
		if count > MaxStringLength {
			e.Fail(fmt.Errorf("%w: string of %d characters", errs.ErrInvalidLength, count))
			return
		}
		e.WriteUint32(uint32(count) | NarrowStringFlag) //nolint:gosec

		e.scratch = e.scratch[:0]
		for _, r := range s {
			e.scratch = append(e.scratch, byte(r))
		}
		e.flushScratch()

		return
	}

	e.WriteWideString(s)
}

// WriteWideString writes s as a u32 code unit count followed by UTF-16 code units,
// regardless of its content. s must be valid UTF-8.
func (e *Encoder) WriteWideString(s string) {
	if e.err != nil {
		return
	}

	if !utf8.ValidString(s) {
		e.Fail(fmt.Errorf("%w: string %q is not valid UTF-8", errs.ErrInvalidFormat, s))
		return
	}

	units := utf16.Encode([]rune(s))
	if len(units) > MaxStringLength {
		e.Fail(fmt.Errorf("%w: string of %d code units", errs.ErrInvalidLength, len(units)))
		return
	}

	e.WriteUint32(uint32(len(units))) //nolint:gosec
	e.scratch = e.scratch[:0]
	for _, u := range units {
		e.scratch = e.engine.AppendUint16(e.scratch, u)
	}
	e.flushScratch()
}

// WriteNarrowString writes s as a u32 byte length followed by its raw bytes.
func (e *Encoder) WriteNarrowString(s string) {
	if uint64(len(s)) > math.MaxUint32 {
		e.Fail(fmt.Errorf("%w: string of %d bytes", errs.ErrInvalidLength, len(s)))
		return
	}

	e.WriteUint32(uint32(len(s))) //nolint:gosec
	_, _ = e.Write([]byte(s))
}

// ReadString reads a string written by WriteString or WriteWideString.
func (d *Decoder) ReadString() string {
	n := d.ReadUint32()
	if d.err != nil {
		return ""
	}

	if n&NarrowStringFlag != 0 {
		return latin1ToString(d.ReadBytes(int(n &^ NarrowStringFlag)))
	}

	return d.readUTF16(int(n))
}

// ReadNarrowString reads a string written by WriteNarrowString.
func (d *Decoder) ReadNarrowString() string {
	n := d.ReadUint32()
	if d.err != nil {
		return ""
	}

	return string(d.ReadBytes(int(n)))
}

func (d *Decoder) readUTF16(count int) string {
	raw := d.ReadBytes(count * 2)
	if d.err != nil {
		return ""
	}

	units := make([]uint16, count)
	for i := range units {
		units[i] = d.engine.Uint16(raw[i*2:])
	}

	return string(utf16.Decode(units))
}

// narrowLength reports the character count of s and whether every code point fits in one byte.
func narrowLength(s string) (int, bool) {
	count := 0
	for _, r := range s {
		if r > 0xFF {
			return 0, false
		}
		count++
	}

	return count, true
}

func latin1ToString(b []byte) string {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			runes := make([]rune, len(b))
			for i, c := range b {
				runes[i] = rune(c)
			}

			return string(runes)
		}
	}

	return string(b)
}

// StringSize returns the number of bytes WriteString produces for s.
func StringSize(s string) int {
	if count, ok := narrowLength(s); ok {
		return 4 + count
	}

	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}

	return 4 + 2*n
}
