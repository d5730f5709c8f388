package container

import (
	"fmt"

	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/tag"
)

// Get decodes entry k as a T.
func Get[T any](r *Reader, k tag.Key) (T, error) {
	var v T
	err := r.ProcessEntry(k, func(d *encoding.Decoder) error {
		encoding.DecodeInto(d, &v)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

// TryGet decodes entry k as a T, reporting false instead of an error.
// A failed decode never yields a partially filled value.
func TryGet[T any](r *Reader, k tag.Key) (T, bool) {
	v, err := Get[T](r, k)
	return v, err == nil
}

// GetOr decodes entry k as a T, falling back to def when the entry is
// missing or cannot be decoded.
func GetOr[T any](r *Reader, k tag.Key, def T) T {
	if v, ok := TryGet[T](r, k); ok {
		return v
	}

	return def
}

// GetSlice decodes entry k as a run of fixed-size T values. The element
// count is the entry size divided by the size of T.
func GetSlice[T any](r *Reader, k tag.Key) ([]T, error) {
	info, err := r.lookup(k)
	if err != nil {
		return nil, err
	}

	width := encoding.SizeOf[T]()
	if width == 0 {
		var zero T
		return nil, fmt.Errorf("%w: %T has no fixed size", errs.ErrUnsupportedType, zero)
	}
	if info.Size%int64(width) != 0 {
		return nil, fmt.Errorf("%w: entry %q of %d bytes is not a multiple of %d",
			errs.ErrInvalidFormat, k.Name(), info.Size, width)
	}

	return GetSliceN[T](r, k, int(info.Size/int64(width)))
}

// GetSliceN decodes the first n T values of entry k.
func GetSliceN[T any](r *Reader, k tag.Key, n int) ([]T, error) {
	var out []T
	err := r.ProcessEntry(k, func(d *encoding.Decoder) error {
		out = encoding.DecodeSlice[T](d, n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// TryGetSlice is GetSlice reporting false instead of an error.
func TryGetSlice[T any](r *Reader, k tag.Key) ([]T, bool) {
	vs, err := GetSlice[T](r, k)
	return vs, err == nil
}
