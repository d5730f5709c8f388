package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewChecksum returns a streaming xxHash64 digest for bodies that are not held in memory.
func NewChecksum() *xxhash.Digest {
	return xxhash.New()
}
