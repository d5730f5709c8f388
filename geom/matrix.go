package geom

import "github.com/arloliu/tagdata/encoding"

// Matrix is a 4x4 single precision matrix stored row-major, M11 first and M44 last.
type Matrix [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the zero-based row and column.
func (m Matrix) At(row, col int) float32 {
	return m[row*4+col]
}

// Set stores v at the zero-based row and column.
func (m *Matrix) Set(row, col int, v float32) {
	m[row*4+col] = v
}

// MarshalTagged writes the 16 elements row by row as float32.
func (m Matrix) MarshalTagged(e *encoding.Encoder) {
	e.WriteFloat32s(m[:]...)
}

// UnmarshalTagged reads a Matrix written by MarshalTagged.
func (m *Matrix) UnmarshalTagged(d *encoding.Decoder) {
	for i := range m {
		m[i] = d.ReadFloat32()
	}
}

// TaggedSize returns the encoded size of a Matrix in bytes.
func (Matrix) TaggedSize() int { return 64 }
