package encoding

import (
	"fmt"

	"github.com/arloliu/tagdata/errs"
)

// Marshaler is implemented by composite types that know how to write themselves.
type Marshaler interface {
	MarshalTagged(e *Encoder)
}

// Unmarshaler is implemented by composite types that know how to read themselves.
// It is expected on a pointer receiver.
type Unmarshaler interface {
	UnmarshalTagged(d *Decoder)
}

// FixedSizer is implemented by composite types with a constant encoded size.
type FixedSizer interface {
	TaggedSize() int
}

// Encode writes v using the codec for its type.
//
// Supported types are bool, the sized integer and float types, string and any
// Marshaler. int and uint are written as 64-bit values. Other types record
// errs.ErrUnsupportedType.
func Encode[T any](e *Encoder, v T) {
	switch x := any(v).(type) {
	case bool:
		e.WriteBool(x)
	case int8:
		e.WriteInt8(x)
	case uint8:
		e.WriteUint8(x)
	case int16:
		e.WriteInt16(x)
	case uint16:
		e.WriteUint16(x)
	case int32:
		e.WriteInt32(x)
	case uint32:
		e.WriteUint32(x)
	case int64:
		e.WriteInt64(x)
	case uint64:
		e.WriteUint64(x)
	case int:
		e.WriteInt64(int64(x))
	case uint:
		e.WriteUint64(uint64(x))
	case float32:
		e.WriteFloat32(x)
	case float64:
		e.WriteFloat64(x)
	case string:
		e.WriteString(x)
	case Marshaler:
		x.MarshalTagged(e)
	default:
		e.Fail(fmt.Errorf("%w: %T", errs.ErrUnsupportedType, v))
	}
}

// Decode reads a value of type T. Check d.Err() afterwards.
func Decode[T any](d *Decoder) T {
	var v T
	DecodeInto(d, &v)

	return v
}

// DecodeInto reads a value into *dst.
func DecodeInto[T any](d *Decoder, dst *T) {
	switch p := any(dst).(type) {
	case *bool:
		*p = d.ReadBool()
	case *int8:
		*p = d.ReadInt8()
	case *uint8:
		*p = d.ReadUint8()
	case *int16:
		*p = d.ReadInt16()
	case *uint16:
		*p = d.ReadUint16()
	case *int32:
		*p = d.ReadInt32()
	case *uint32:
		*p = d.ReadUint32()
	case *int64:
		*p = d.ReadInt64()
	case *uint64:
		*p = d.ReadUint64()
	case *int:
		*p = int(d.ReadInt64())
	case *uint:
		*p = uint(d.ReadUint64())
	case *float32:
		*p = d.ReadFloat32()
	case *float64:
		*p = d.ReadFloat64()
	case *string:
		*p = d.ReadString()
	case Unmarshaler:
		p.UnmarshalTagged(d)
	default:
		d.Fail(fmt.Errorf("%w: %T", errs.ErrUnsupportedType, *dst))
	}
}

// EncodeSlice writes every element of vs in order. No count is written.
func EncodeSlice[T any](e *Encoder, vs []T) {
	for i := range vs {
		if e.err != nil {
			return
		}
		Encode(e, vs[i])
	}
}

// DecodeSlice reads n consecutive values of type T.
func DecodeSlice[T any](d *Decoder, n int) []T {
	if n < 0 {
		d.Fail(fmt.Errorf("%w: %d", errs.ErrInvalidLength, n))
		return nil
	}

	out := make([]T, 0, min(n, chunkedReadThreshold))
	for range n {
		var v T
		DecodeInto(d, &v)
		if d.err != nil {
			return nil
		}
		out = append(out, v)
	}

	return out
}

// SizeOf returns the encoded width of T, or 0 when the width depends on the value.
func SizeOf[T any]() int {
	var v T
	switch x := any(&v).(type) {
	case *bool, *int8, *uint8:
		return 1
	case *int16, *uint16:
		return 2
	case *int32, *uint32, *float32:
		return 4
	case *int64, *uint64, *int, *uint, *float64:
		return 8
	case FixedSizer:
		return x.TaggedSize()
	default:
		return 0
	}
}
