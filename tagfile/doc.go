// Package tagfile stores a tagged data container as a self-checking file.
//
// A tag file is a fixed 24-byte little-endian header followed by the
// container body, optionally compressed:
//
//	offset  size  field
//	0       4     magic "TAGD"
//	4       1     compression type
//	5       1     format version
//	6       2     reserved, zero
//	8       8     stored body length
//	16      8     xxHash64 of the stored body
//
// Uncompressed files are opened lazily: the container reader works directly
// on the file through a bounded view and only reads the entries asked for.
// Compressed files are read and inflated in full.
package tagfile
