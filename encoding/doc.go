// Package encoding implements the primitive codec used by tagged data containers.
//
// An Encoder writes fixed-width numbers, strings and composite values to an
// io.Writer, and a Decoder reads them back from an io.Reader. Both use an
// endian.EndianEngine to pick the byte order: containers bound for
// endian-independent media are always little-endian, others use host order.
//
// # Sticky errors
//
// Encoder and Decoder record the first error they hit and turn every later
// call into a no-op, so a composite value can be written as a straight
// sequence of calls and checked once:
//
//	enc := encoding.NewEncoder(w, endian.ForMedium(true))
//	enc.WriteFloat32(v.X)
//	enc.WriteFloat32(v.Y)
//	if err := enc.Err(); err != nil {
//	    return err
//	}
//
// A short read is reported as errs.ErrEndOfStream.
//
// # Wire forms
//
//   - integers and floats: their natural width, IEEE 754 for floats
//   - bool: one byte, 0 or 1
//   - string: u32 length; when the top bit is set the remaining 31 bits count
//     single-byte characters, otherwise they count UTF-16 code units
//   - narrow string: u32 byte length followed by the raw bytes
//   - packed bools: ceil(n/8) bytes, bit i of byte i/8 holds element i
//
// # Generic values
//
// Encode and Decode accept any supported scalar, string, or a type that
// implements Marshaler and Unmarshaler, which is how the geom package plugs
// vectors and matrices into the codec.
package encoding
