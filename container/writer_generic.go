package container

import (
	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/tag"
)

// Add creates entry k holding the encoded form of v.
func Add[T any](w *Writer, k tag.Key, v T) error {
	return w.AddFunc(k, func(e *encoding.Encoder) error {
		encoding.Encode(e, v)
		return nil
	})
}

// AddSlice creates entry k holding every element of vs back to back.
// No element count is stored; readers infer it from the entry size.
func AddSlice[T any](w *Writer, k tag.Key, vs []T) error {
	return w.AddFunc(k, func(e *encoding.Encoder) error {
		encoding.EncodeSlice(e, vs)
		return nil
	})
}

// Set replaces the content of the existing entry k with v.
func Set[T any](w *Writer, k tag.Key, v T) error {
	return w.SetFunc(k, func(e *encoding.Encoder) error {
		encoding.Encode(e, v)
		return nil
	})
}

// SetSlice replaces the content of the existing entry k with vs.
func SetSlice[T any](w *Writer, k tag.Key, vs []T) error {
	return w.SetFunc(k, func(e *encoding.Encoder) error {
		encoding.EncodeSlice(e, vs)
		return nil
	})
}
