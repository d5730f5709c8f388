package geom

import "github.com/arloliu/tagdata/encoding"

// Plane is the plane X*x + Y*y + Z*z + D = 0.
type Plane struct {
	X, Y, Z, D float32
}

// MarshalTagged writes X, Y, Z and D as float32.
func (p Plane) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(p.X, p.Y, p.Z, p.D) }

// UnmarshalTagged reads a Plane written by MarshalTagged.
func (p *Plane) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&p.X, &p.Y, &p.Z, &p.D) }

// TaggedSize returns the encoded size of a Plane in bytes.
func (Plane) TaggedSize() int { return 16 }

// Ray is a half line starting at Position heading along Direction.
type Ray struct {
	Position  Vector3
	Direction Vector3
}

// MarshalTagged writes Position followed by Direction.
func (r Ray) MarshalTagged(e *encoding.Encoder) {
	r.Position.MarshalTagged(e)
	r.Direction.MarshalTagged(e)
}

// UnmarshalTagged reads a Ray written by MarshalTagged.
func (r *Ray) UnmarshalTagged(d *encoding.Decoder) {
	r.Position.UnmarshalTagged(d)
	r.Direction.UnmarshalTagged(d)
}

// TaggedSize returns the encoded size of a Ray in bytes.
func (Ray) TaggedSize() int { return 24 }

// BoundingBox is an axis aligned box.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// MarshalTagged writes Min followed by Max.
func (b BoundingBox) MarshalTagged(e *encoding.Encoder) {
	b.Min.MarshalTagged(e)
	b.Max.MarshalTagged(e)
}

// UnmarshalTagged reads a BoundingBox written by MarshalTagged.
func (b *BoundingBox) UnmarshalTagged(d *encoding.Decoder) {
	b.Min.UnmarshalTagged(d)
	b.Max.UnmarshalTagged(d)
}

// TaggedSize returns the encoded size of a BoundingBox in bytes.
func (BoundingBox) TaggedSize() int { return 24 }

// BoundingSphere is a sphere given by its center and radius.
type BoundingSphere struct {
	Center Vector3
	Radius float32
}

// MarshalTagged writes Center followed by Radius as float32.
func (s BoundingSphere) MarshalTagged(e *encoding.Encoder) {
	s.Center.MarshalTagged(e)
	e.WriteFloat32(s.Radius)
}

// UnmarshalTagged reads a BoundingSphere written by MarshalTagged.
func (s *BoundingSphere) UnmarshalTagged(d *encoding.Decoder) {
	s.Center.UnmarshalTagged(d)
	s.Radius = d.ReadFloat32()
}

// TaggedSize returns the encoded size of a BoundingSphere in bytes.
func (BoundingSphere) TaggedSize() int { return 16 }
