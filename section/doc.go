// Package section implements the wire layout of a tagged data container's
// header, key table and offset table.
//
// # Versioned layout
//
//	u32    version word: 0x80000000 | flags
//	u32    entry count
//	       key table, one key per entry, in entry order
//	       offset table, one {offset, size} pair per entry (u32 or u64 each)
//	       payloads
//
// Flags select the key table form and the offset width:
//
//	bit 0  NarrowKeyFormat   u32 length + raw bytes
//	bit 2  HashKeyFormat     u32 FNV-1a hash + u8 length + raw bytes
//	bit 4  64BitOffsets      offset table pairs are u64
//
// Without either key format bit, keys are stored with the string codec of
// the encoding package. Offsets are relative to the first byte of the
// container.
//
// # Legacy layout
//
// A first word with the top bit clear is the entry count of a legacy
// container, where each entry is stored as a string key, a u32 payload size
// and the payload itself.
package section
