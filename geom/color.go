package geom

import "github.com/arloliu/tagdata/encoding"

// Color4 is a floating point RGBA color.
type Color4 struct {
	R, G, B, A float32
}

// ColorFromARGB converts a packed 0xAARRGGBB value.
func ColorFromARGB(argb uint32) Color4 {
	return Color4{
		R: float32((argb>>16)&0xFF) / 255,
		G: float32((argb>>8)&0xFF) / 255,
		B: float32(argb&0xFF) / 255,
		A: float32(argb>>24) / 255,
	}
}

// MarshalTagged writes R, G, B and A as float32.
func (c Color4) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(c.R, c.G, c.B, c.A) }

// UnmarshalTagged reads a Color4 written by MarshalTagged.
func (c *Color4) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&c.R, &c.G, &c.B, &c.A) }

// TaggedSize returns the encoded size of a Color4 in bytes.
func (Color4) TaggedSize() int { return 16 }
