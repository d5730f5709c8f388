package geom

import "github.com/arloliu/tagdata/encoding"

// Point is an integral 2D point.
type Point struct {
	X, Y int32
}

// MarshalTagged writes X then Y as int32.
func (p Point) MarshalTagged(e *encoding.Encoder) { e.WriteInt32s(p.X, p.Y) }

// UnmarshalTagged reads a Point written by MarshalTagged.
func (p *Point) UnmarshalTagged(d *encoding.Decoder) { d.ReadInt32s(&p.X, &p.Y) }

// TaggedSize returns the encoded size of a Point in bytes.
func (Point) TaggedSize() int { return 8 }

// PointF is a floating point 2D point.
type PointF struct {
	X, Y float32
}

// MarshalTagged writes X then Y as float32.
func (p PointF) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(p.X, p.Y) }

// UnmarshalTagged reads a PointF written by MarshalTagged.
func (p *PointF) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&p.X, &p.Y) }

// TaggedSize returns the encoded size of a PointF in bytes.
func (PointF) TaggedSize() int { return 8 }

// Size is an integral width and height.
type Size struct {
	Width, Height int32
}

// MarshalTagged writes Width then Height as int32.
func (s Size) MarshalTagged(e *encoding.Encoder) { e.WriteInt32s(s.Width, s.Height) }

// UnmarshalTagged reads a Size written by MarshalTagged.
func (s *Size) UnmarshalTagged(d *encoding.Decoder) { d.ReadInt32s(&s.Width, &s.Height) }

// TaggedSize returns the encoded size of a Size in bytes.
func (Size) TaggedSize() int { return 8 }

// Rectangle is an integral rectangle given by its top-left corner and extent.
type Rectangle struct {
	X, Y, Width, Height int32
}

// Right returns the exclusive right edge.
func (r Rectangle) Right() int32 { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rectangle) Bottom() int32 { return r.Y + r.Height }

// MarshalTagged writes X, Y, Width and Height as int32.
func (r Rectangle) MarshalTagged(e *encoding.Encoder) { e.WriteInt32s(r.X, r.Y, r.Width, r.Height) }

// UnmarshalTagged reads a Rectangle written by MarshalTagged.
func (r *Rectangle) UnmarshalTagged(d *encoding.Decoder) {
	d.ReadInt32s(&r.X, &r.Y, &r.Width, &r.Height)
}

// TaggedSize returns the encoded size of a Rectangle in bytes.
func (Rectangle) TaggedSize() int { return 16 }

// RectangleF is a floating point rectangle.
type RectangleF struct {
	X, Y, Width, Height float32
}

// MarshalTagged writes X, Y, Width and Height as float32.
func (r RectangleF) MarshalTagged(e *encoding.Encoder) {
	e.WriteFloat32s(r.X, r.Y, r.Width, r.Height)
}

// UnmarshalTagged reads a RectangleF written by MarshalTagged.
func (r *RectangleF) UnmarshalTagged(d *encoding.Decoder) {
	d.ReadFloat32s(&r.X, &r.Y, &r.Width, &r.Height)
}

// TaggedSize returns the encoded size of a RectangleF in bytes.
func (RectangleF) TaggedSize() int { return 16 }

// Viewport is a render target region with its depth range.
type Viewport struct {
	X, Y, Width, Height int32
	MinZ, MaxZ          float32
}

// MarshalTagged writes X, Y, Width and Height as int32 followed by MinZ and MaxZ as float32.
func (v Viewport) MarshalTagged(e *encoding.Encoder) {
	e.WriteInt32s(v.X, v.Y, v.Width, v.Height)
	e.WriteFloat32s(v.MinZ, v.MaxZ)
}

// UnmarshalTagged reads a Viewport written by MarshalTagged.
func (v *Viewport) UnmarshalTagged(d *encoding.Decoder) {
	d.ReadInt32s(&v.X, &v.Y, &v.Width, &v.Height)
	d.ReadFloat32s(&v.MinZ, &v.MaxZ)
}

// TaggedSize returns the encoded size of a Viewport in bytes.
func (Viewport) TaggedSize() int { return 24 }
