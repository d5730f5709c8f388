package section

import (
	"fmt"

	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
)

// Flag is the version word of a container.
// A zero Options value describes a legacy container.
type Flag struct {
	Options uint32
}

// NewFlag returns the flag written by default: versioned, hashed keys, 32-bit offsets.
func NewFlag() Flag {
	return Flag{Options: VersionMarker | HashKeyMask}
}

// FlagForKeyFormat returns a versioned flag using the given key table form.
func FlagForKeyFormat(kf format.KeyFormat) (Flag, error) {
	switch kf {
	case format.KeyFormatHashed:
		return NewFlag(), nil
	case format.KeyFormatNarrow:
		return Flag{Options: VersionMarker | NarrowKeyMask}, nil
	case format.KeyFormatWide:
		return Flag{Options: VersionMarker}, nil
	default:
		return Flag{}, fmt.Errorf("%w: cannot write %s keys", errs.ErrInvalidKeyFormat, kf)
	}
}

// IsVersioned reports whether the flag carries the version marker.
func (f Flag) IsVersioned() bool {
	return f.Options&VersionMarker != 0
}

// HasHashedKeys reports whether the key table stores hashed keys.
func (f Flag) HasHashedKeys() bool {
	return f.Options&HashKeyMask != 0
}

// HasNarrowKeys reports whether the key table stores single-byte names.
func (f Flag) HasNarrowKeys() bool {
	return f.Options&NarrowKeyMask != 0
}

// Has64BitOffsets reports whether offset table pairs are 64-bit.
func (f Flag) Has64BitOffsets() bool {
	return f.Options&Offset64Mask != 0
}

// Set64BitOffsets enables or disables 64-bit offset table pairs.
func (f *Flag) Set64BitOffsets(enabled bool) {
	if enabled {
		f.Options |= Offset64Mask
	} else {
		f.Options &^= Offset64Mask
	}
}

// KeyFormat returns the key table form. Hashed keys take precedence over narrow ones.
func (f Flag) KeyFormat() format.KeyFormat {
	switch {
	case !f.IsVersioned():
		return format.KeyFormatLegacy
	case f.HasHashedKeys():
		return format.KeyFormatHashed
	case f.HasNarrowKeys():
		return format.KeyFormatNarrow
	default:
		return format.KeyFormatWide
	}
}

// OffsetEntrySize returns the width of one offset table pair.
func (f Flag) OffsetEntrySize() int {
	if f.Has64BitOffsets() {
		return OffsetEntrySize64
	}

	return OffsetEntrySize32
}

// Validate rejects version words with bits this package does not understand.
func (f Flag) Validate() error {
	if !f.IsVersioned() {
		return nil
	}

	if bits := f.Options & ReservedBitsMask; bits != 0 {
		return fmt.Errorf("%w: unknown flag bits 0x%08x", errs.ErrInvalidFormat, bits)
	}

	return nil
}

func (f Flag) String() string {
	if !f.IsVersioned() {
		return "legacy"
	}

	width := 32
	if f.Has64BitOffsets() {
		width = 64
	}

	return fmt.Sprintf("versioned keys=%s offsets=%d-bit", f.KeyFormat(), width)
}
