package container

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/arloliu/tagdata/encoding"
)

// digestInlineLimit is the largest payload rendered as hex; larger ones are
// summarized by their length.
const digestInlineLimit = 8

// DigestEntry is the human-readable summary of one entry.
type DigestEntry struct {
	Key  string `json:"key" yaml:"key"`
	Size int64  `json:"size" yaml:"size"`
	Text string `json:"text" yaml:"text"`
}

// Digest is a named, ordered summary of a container's entries.
type Digest struct {
	Name    string        `json:"name" yaml:"name"`
	Entries []DigestEntry `json:"entries" yaml:"entries"`
}

func (d Digest) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(d.Name)
	sb.WriteString("]\n")
	for _, e := range d.Entries {
		sb.WriteString(e.Key)
		sb.WriteString(" = ")
		sb.WriteString(e.Text)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// digestText renders short payloads as lowercase hex and longer ones as a byte count.
func digestText(p []byte, size int64) string {
	if size > digestInlineLimit {
		return strconv.FormatInt(size, 10) + " bytes"
	}

	return hex.EncodeToString(p)
}

// MakeDigest summarizes the writer's entries under name.
func (w *Writer) MakeDigest(name string) Digest {
	d := Digest{Name: name, Entries: make([]DigestEntry, 0, len(w.entries))}
	for _, e := range w.entries {
		size := int64(e.buf.Len())
		d.Entries = append(d.Entries, DigestEntry{
			Key:  e.key.Name(),
			Size: size,
			Text: digestText(e.buf.Bytes(), size),
		})
	}

	return d
}

// MakeDigest summarizes the reader's entries under name. Only payloads
// short enough to be rendered inline are read.
func (r *Reader) MakeDigest(name string) (Digest, error) {
	d := Digest{Name: name, Entries: make([]DigestEntry, 0, len(r.keys))}
	for k, info := range r.All() {
		var inline []byte
		if info.Size <= digestInlineLimit {
			err := r.ProcessEntry(k, func(dec *encoding.Decoder) error {
				inline = dec.ReadBytes(int(info.Size))
				return nil
			})
			if err != nil {
				return Digest{}, err
			}
		}

		d.Entries = append(d.Entries, DigestEntry{
			Key:  k.Name(),
			Size: info.Size,
			Text: digestText(inline, info.Size),
		})
	}

	return d, nil
}
