package main

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/geom"
	"github.com/arloliu/tagdata/tag"
)

// valueType adds a manifest value to a writer and decodes an entry for display.
type valueType struct {
	add func(w *container.Writer, k tag.Key, n *yaml.Node) error
	get func(r *container.Reader, k tag.Key) (any, error)
}

func scalar[T any]() valueType {
	return valueType{
		add: func(w *container.Writer, k tag.Key, n *yaml.Node) error {
			var v T
			if err := n.Decode(&v); err != nil {
				return err
			}

			return container.Add(w, k, v)
		},
		get: func(r *container.Reader, k tag.Key) (any, error) {
			v, err := container.Get[T](r, k)
			return v, err
		},
	}
}

func array[T any]() valueType {
	return valueType{
		add: func(w *container.Writer, k tag.Key, n *yaml.Node) error {
			var vs []T
			if err := n.Decode(&vs); err != nil {
				return err
			}

			return container.AddSlice(w, k, vs)
		},
		get: func(r *container.Reader, k tag.Key) (any, error) {
			vs, err := container.GetSlice[T](r, k)
			return vs, err
		},
	}
}

var bytesType = valueType{
	add: func(w *container.Writer, k tag.Key, n *yaml.Node) error {
		var s string
		if err := n.Decode(&s); err != nil {
			return err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return err
		}

		return w.AddBytes(k, b)
	},
	get: func(r *container.Reader, k tag.Key) (any, error) {
		b, err := r.ReadEntry(k)
		if err != nil {
			return nil, err
		}

		return hex.EncodeToString(b), nil
	},
}

var valueTypes = map[string]valueType{
	"bool":       scalar[bool](),
	"int8":       scalar[int8](),
	"uint8":      scalar[uint8](),
	"int16":      scalar[int16](),
	"uint16":     scalar[uint16](),
	"int32":      scalar[int32](),
	"uint32":     scalar[uint32](),
	"int64":      scalar[int64](),
	"uint64":     scalar[uint64](),
	"float32":    scalar[float32](),
	"float64":    scalar[float64](),
	"string":     scalar[string](),
	"vector2":    scalar[geom.Vector2](),
	"vector3":    scalar[geom.Vector3](),
	"vector4":    scalar[geom.Vector4](),
	"quaternion": scalar[geom.Quaternion](),
	"color":      scalar[geom.Color4](),
	"matrix":     scalar[geom.Matrix](),
	"rectangle":  scalar[geom.Rectangle](),
	"bytes":      bytesType,

	"int16[]":   array[int16](),
	"uint16[]":  array[uint16](),
	"int32[]":   array[int32](),
	"uint32[]":  array[uint32](),
	"int64[]":   array[int64](),
	"uint64[]":  array[uint64](),
	"float32[]": array[float32](),
	"float64[]": array[float64](),
	"vector3[]": array[geom.Vector3](),
}

func lookupType(name string) (valueType, error) {
	vt, ok := valueTypes[strings.ToLower(name)]
	if !ok {
		return valueType{}, fmt.Errorf("unknown value type %q (known: %s)", name, strings.Join(typeNames(), ", "))
	}

	return vt, nil
}

func typeNames() []string {
	names := make([]string, 0, len(valueTypes))
	for name := range valueTypes {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
