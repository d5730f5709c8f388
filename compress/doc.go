// Package compress provides the compression codecs used for compressed
// container entries and compressed tag files.
//
// Four algorithms are available, selected by format.CompressionType:
//
//   - None: bytes pass through unchanged
//   - Zstd: best ratio, moderate speed; suited to archived asset packs
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression; suited to data loaded at startup
//
// Codecs are stateless values and safe for concurrent use. Zstd and LZ4 keep
// pooled encoder state internally.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(body)
//
// The pure Go Zstandard implementation is used by default. Building with the
// cgozstd tag and cgo enabled switches to the libzstd binding instead; both
// produce standard Zstandard frames and can read each other's output.
package compress
