package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/tag"
	"github.com/arloliu/tagdata/tagfile"
)

var tagFileMagic = []byte("TAGD")

// openSource opens path as a tag file when it starts with the tag file
// magic and as a bare container otherwise. The reader owns the file.
func (a *app) openSource(path string) (*container.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}

	magic := make([]byte, len(tagFileMagic))
	_, err = io.ReadFull(f, magic)
	isTagFile := err == nil && bytes.Equal(magic, tagFileMagic)

	if isTagFile {
		_ = f.Close()

		opts := []tagfile.Option{
			tagfile.WithLogger(a.log.Slog()),
			tagfile.WithContainerOptions(container.WithLogger(a.log.Slog())),
		}
		if !a.verify {
			opts = append(opts, tagfile.WithoutChecksum())
		}

		r, err := tagfile.Open(path, opts...)
		if err != nil {
			return nil, "", err
		}

		return r, "tagfile", nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, "", err
	}

	r, err := container.NewReader(f, container.WithOwnedStream(), container.WithLogger(a.log.Slog()))
	if err != nil {
		_ = f.Close()
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}

	return r, "container", nil
}

// splitKeyPath splits "A/B/C" into its keys.
func splitKeyPath(path string) []tag.Key {
	var keys []tag.Key
	for part := range strings.SplitSeq(path, "/") {
		if part != "" {
			keys = append(keys, tag.New(part))
		}
	}

	return keys
}

// walk descends through the sub-containers named by path and calls fn on the
// innermost reader.
func walk(r *container.Reader, path []tag.Key, fn func(*container.Reader) error) error {
	if len(path) == 0 {
		return fn(r)
	}

	return r.ProcessSubContainer(path[0], func(child *container.Reader) error {
		return walk(child, path[1:], fn)
	})
}
