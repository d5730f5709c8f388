package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/tag"
	"github.com/arloliu/tagdata/tagfile"
)

// Manifest describes a container to build.
//
//	key_format: hashed
//	entries:
//	  - key: Width
//	    type: uint32
//	    value: 256
//	  - key: Meta
//	    entries:
//	      - {key: Scale, type: float32, value: 2.5}
type Manifest struct {
	KeyFormat string          `yaml:"key_format"`
	Raw       bool            `yaml:"raw"` // write a bare container instead of a tag file
	Entries   []ManifestEntry `yaml:"entries"`
}

// ManifestEntry is one value or, when Entries is set, one sub-container.
type ManifestEntry struct {
	Key         string          `yaml:"key"`
	Type        string          `yaml:"type"`
	Value       yaml.Node       `yaml:"value"`
	Compression string          `yaml:"compression"`
	Entries     []ManifestEntry `yaml:"entries"`
}

func parseKeyFormat(name string) (format.KeyFormat, error) {
	switch name {
	case "", "hashed":
		return format.KeyFormatHashed, nil
	case "narrow":
		return format.KeyFormatNarrow, nil
	case "wide":
		return format.KeyFormatWide, nil
	default:
		return 0, fmt.Errorf("unknown key format %q", name)
	}
}

func (a *app) packCmd() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "Build a container file from a YAML manifest",
		ArgsUsage: "MANIFEST OUTPUT",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 2 {
				return cli.Exit("error: MANIFEST and OUTPUT are required", 1)
			}

			data, err := os.ReadFile(c.Args().Get(0))
			if err != nil {
				return err
			}

			var m Manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("parse manifest: %w", err)
			}

			return a.pack(m, c.Args().Get(1))
		},
	}
}

func (a *app) pack(m Manifest, out string) error {
	kf, err := parseKeyFormat(m.KeyFormat)
	if err != nil {
		return err
	}

	ct, ok := format.ParseCompression(a.compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", a.compression)
	}

	w, err := container.NewWriter(container.WithKeyFormat(kf), container.WithLogger(a.log.Slog()))
	if err != nil {
		return err
	}
	defer w.Release()

	if err := addEntries(w, m.Entries); err != nil {
		return err
	}

	if m.Raw {
		data, err := w.Bytes()
		if err != nil {
			return err
		}

		return os.WriteFile(out, data, 0o644) //nolint:gosec
	}

	return tagfile.Create(out, w, tagfile.WithCompression(ct), tagfile.WithLogger(a.log.Slog()))
}

func addEntries(w *container.Writer, entries []ManifestEntry) error {
	for _, e := range entries {
		if err := addEntry(w, e); err != nil {
			return fmt.Errorf("entry %q: %w", e.Key, err)
		}
	}

	return nil
}

func addEntry(w *container.Writer, e ManifestEntry) error {
	k := tag.New(e.Key)

	if len(e.Entries) > 0 || e.Type == "container" {
		return w.AddSubContainer(k, func(child *container.Writer) error {
			return addEntries(child, e.Entries)
		})
	}

	vt, err := lookupType(e.Type)
	if err != nil {
		return err
	}

	if e.Compression == "" {
		return vt.add(w, k, &e.Value)
	}

	ct, ok := format.ParseCompression(e.Compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", e.Compression)
	}

	// encode into a scratch writer, then compress the resulting payload
	scratch, err := container.NewWriter()
	if err != nil {
		return err
	}
	defer scratch.Release()

	if err := vt.add(scratch, k, &e.Value); err != nil {
		return err
	}
	payload, err := scratch.EntryBytes(k)
	if err != nil {
		return err
	}

	return w.AddCompressed(k, ct, func(enc *encoding.Encoder) error {
		enc.WriteBytes(payload)
		return nil
	})
}
