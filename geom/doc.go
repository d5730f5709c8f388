// Package geom defines the math aggregates that tagged data containers store
// natively: vectors, matrices, colors, planes, rectangles, bounding volumes and
// viewports.
//
// Every type implements encoding.Marshaler, encoding.Unmarshaler and
// encoding.FixedSizer, so it can be passed straight to container.Add and
// container.Get. Fields are written in declaration order; single precision
// floats are used for all real-valued components and int32 for integral ones.
package geom
