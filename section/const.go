package section

const (
	// Version word bits
	VersionMarker    uint32 = 0x80000000 // VersionMarker is set in the first word of every versioned container.
	NarrowKeyMask    uint32 = 0x00000001 // NarrowKeyMask selects single-byte key names (bit 0).
	HashKeyMask      uint32 = 0x00000004 // HashKeyMask selects hashed keys (bit 2).
	Offset64Mask     uint32 = 0x00000010 // Offset64Mask selects 64-bit offset table pairs (bit 4).
	KnownFlagsMask          = NarrowKeyMask | HashKeyMask | Offset64Mask
	ReservedBitsMask        = ^(VersionMarker | KnownFlagsMask)
)

const (
	HeaderSize        = 8  // version word and entry count
	LegacyHeaderSize  = 4  // entry count only
	OffsetEntrySize32 = 8  // u32 offset + u32 size
	OffsetEntrySize64 = 16 // u64 offset + u64 size
	MaxHashedNameLen  = 255
	SubContainerLen   = 4 // u32 length prefix in front of a nested container
)
