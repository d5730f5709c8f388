package geom

import "github.com/arloliu/tagdata/encoding"

// Vector2 is a two component single precision vector.
type Vector2 struct {
	X, Y float32
}

// MarshalTagged writes X then Y as float32.
func (v Vector2) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(v.X, v.Y) }

// UnmarshalTagged reads a Vector2 written by MarshalTagged.
func (v *Vector2) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&v.X, &v.Y) }

// TaggedSize returns the encoded size of a Vector2 in bytes.
func (Vector2) TaggedSize() int { return 8 }

// Vector3 is a three component single precision vector.
type Vector3 struct {
	X, Y, Z float32
}

// MarshalTagged writes X, Y and Z as float32.
func (v Vector3) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(v.X, v.Y, v.Z) }

// UnmarshalTagged reads a Vector3 written by MarshalTagged.
func (v *Vector3) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&v.X, &v.Y, &v.Z) }

// TaggedSize returns the encoded size of a Vector3 in bytes.
func (Vector3) TaggedSize() int { return 12 }

// Vector4 is a four component single precision vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// MarshalTagged writes X, Y, Z and W as float32.
func (v Vector4) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(v.X, v.Y, v.Z, v.W) }

// UnmarshalTagged reads a Vector4 written by MarshalTagged.
func (v *Vector4) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&v.X, &v.Y, &v.Z, &v.W) }

// TaggedSize returns the encoded size of a Vector4 in bytes.
func (Vector4) TaggedSize() int { return 16 }

// Quaternion is a rotation stored as X, Y, Z, W.
type Quaternion struct {
	X, Y, Z, W float32
}

// IdentityQuaternion returns the rotation that leaves vectors unchanged.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// MarshalTagged writes X, Y, Z and W as float32.
func (q Quaternion) MarshalTagged(e *encoding.Encoder) { e.WriteFloat32s(q.X, q.Y, q.Z, q.W) }

// UnmarshalTagged reads a Quaternion written by MarshalTagged.
func (q *Quaternion) UnmarshalTagged(d *encoding.Decoder) { d.ReadFloat32s(&q.X, &q.Y, &q.Z, &q.W) }

// TaggedSize returns the encoded size of a Quaternion in bytes.
func (Quaternion) TaggedSize() int { return 16 }
