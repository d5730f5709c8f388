package format

type (
	CompressionType uint8
	KeyFormat       uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	KeyFormatLegacy KeyFormat = 0x0 // KeyFormatLegacy is the unversioned layout with keys and payloads interleaved.
	KeyFormatWide   KeyFormat = 0x1 // KeyFormatWide stores key names as UTF-16 strings in the key table.
	KeyFormatNarrow KeyFormat = 0x2 // KeyFormatNarrow stores key names as single-byte strings in the key table.
	KeyFormatHashed KeyFormat = 0x3 // KeyFormatHashed stores a 32-bit FNV-1a hash and a short inline name.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-sensitive lowercase name to a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (k KeyFormat) String() string {
	switch k {
	case KeyFormatLegacy:
		return "Legacy"
	case KeyFormatWide:
		return "Wide"
	case KeyFormatNarrow:
		return "Narrow"
	case KeyFormatHashed:
		return "Hashed"
	default:
		return "Unknown"
	}
}
