// Package container reads and writes tagged data containers.
//
// A container is an ordered set of named entries. Each entry holds the
// encoded bytes of one value, an array of values, or another container.
// Writers collect entries in memory and lay them out in one pass on Save;
// Readers parse the header and index eagerly and decode payloads on demand
// through bounded views of the source stream.
//
// # Writing
//
//	w, err := container.NewWriter()
//	if err != nil {
//	    return err
//	}
//	defer w.Release()
//
//	_ = container.Add(w, tag.New("Width"), uint32(256))
//	_ = container.Add(w, tag.New("Name"), "Hello")
//	_ = w.AddSubContainer(tag.New("Meta"), func(child *container.Writer) error {
//	    return container.Add(child, tag.New("Scale"), float32(2.5))
//	})
//	err = w.Save(out)
//
// # Reading
//
//	r, err := container.NewReader(src)
//	if err != nil {
//	    return err
//	}
//	defer r.Close(false)
//
//	width, err := container.Get[uint32](r, tag.New("Width"))
//	err = r.ProcessSubContainer(tag.New("Meta"), func(meta *container.Reader) error {
//	    scale, err := container.Get[float32](meta, tag.New("Scale"))
//	    ...
//	})
//
// Neither Reader nor Writer is safe for concurrent use. Readers created for
// nested containers share the parent's stream and must be finished before a
// sibling is opened.
//
// # Byte order
//
// Writers encode little-endian unless configured for a host-local medium with
// WithEndianIndependent(false). Readers follow the EndianDeclarer of their
// source stream, or the explicit WithEndianIndependent option.
package container
