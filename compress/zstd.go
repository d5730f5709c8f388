package compress

// ZstdCompressor implements Zstandard frames.
//
// The implementation is chosen at build time, see the package documentation.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec with the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
