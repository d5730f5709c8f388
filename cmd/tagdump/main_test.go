package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/encoding"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/geom"
	"github.com/arloliu/tagdata/tag"
	"github.com/arloliu/tagdata/tagfile"
)

const testManifest = `
key_format: hashed
entries:
  - key: Width
    type: uint32
    value: 256
  - key: Name
    type: string
    value: Hello
  - key: Samples
    type: float32[]
    value: [1, 2, 3, 4]
    compression: s2
  - key: Meta
    entries:
      - key: Scale
        type: float32
        value: 2.5
      - key: Origin
        type: vector3
        value: {x: 1, y: 2, z: 3}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	// an explicit empty config keeps the host config file out of tests
	full := append([]string{"tagdump", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	err := newApp(&out, &errOut).Run(context.Background(), full)

	return out.String(), err
}

func packTestFile(t *testing.T, extra ...string) string {
	t.Helper()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(testManifest), 0o600))

	out := filepath.Join(dir, "out.tag")
	args := append(extra, "pack", manifest, out)
	_, err := run(t, args...)
	require.NoError(t, err)

	return out
}

func TestPack(t *testing.T) {
	path := packTestFile(t, "--compression", "zstd")

	info, err := tagfile.Stat(path)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, info.Header.Compression)
	require.Equal(t, 4, info.Entries)

	r, err := tagfile.Open(path)
	require.NoError(t, err)
	defer r.Close(false) //nolint:errcheck

	width, err := container.Get[uint32](r, tag.New("Width"))
	require.NoError(t, err)
	require.Equal(t, uint32(256), width)

	var samples []float32
	err = r.ProcessCompressedEntry(tag.New("Samples"), func(d *encoding.Decoder) error {
		samples = encoding.DecodeSlice[float32](d, 4)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3, 4}, samples)

	err = r.ProcessSubContainer(tag.New("Meta"), func(meta *container.Reader) error {
		origin, err := container.Get[geom.Vector3](meta, tag.New("Origin"))
		require.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3}, origin)

		return err
	})
	require.NoError(t, err)
}

func TestPack_Errors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

		return p
	}

	_, err := run(t, "pack", write("bad_type.yaml", "entries: [{key: A, type: complex, value: 1}]"), filepath.Join(dir, "a.tag"))
	require.ErrorContains(t, err, "unknown value type")

	_, err = run(t, "pack", write("dup.yaml", "entries: [{key: A, type: uint8, value: 1}, {key: A, type: uint8, value: 2}]"), filepath.Join(dir, "b.tag"))
	require.ErrorContains(t, err, "duplicate key")

	_, err = run(t, "pack", write("overflow.yaml", "entries: [{key: A, type: uint8, value: 300}]"), filepath.Join(dir, "c.tag"))
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	first := packTestFile(t)
	second := packTestFile(t, "--compression", "lz4")

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "inspect", first, second)
		require.NoError(t, err)
		require.Contains(t, out, "File:       "+first)
		require.Contains(t, out, "File:       "+second)
		require.Contains(t, out, "Key format: Hashed")
		require.Contains(t, out, "Offsets:    32-bit")
		require.Contains(t, out, "sha256:")
		require.Less(t, strings.Index(out, first), strings.Index(out, second))
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--format", "json", "inspect", first)
		require.NoError(t, err)

		var results []inspectResult
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		require.Equal(t, "tagfile", results[0].Kind)
		require.Len(t, results[0].Entries, 4)
		require.Equal(t, "Width", results[0].Entries[0].Key)
		require.Equal(t, "Meta", results[0].Entries[3].Key)
		require.NoError(t, results[0].Digest.Validate())
	})

	t.Run("raw container", func(t *testing.T) {
		w, err := container.NewWriter(container.WithKeyFormat(format.KeyFormatNarrow))
		require.NoError(t, err)
		defer w.Release()
		require.NoError(t, container.Add(w, tag.New("A"), int64(-1)))
		data, err := w.Bytes()
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "raw.bin")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		out, err := run(t, "-o", "yaml", "inspect", path)
		require.NoError(t, err)

		var results []inspectResult
		require.NoError(t, yaml.Unmarshal([]byte(out), &results))
		require.Equal(t, "container", results[0].Kind)
		require.Equal(t, "Narrow", results[0].KeyFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "inspect", first, filepath.Join(t.TempDir(), "missing.tag"))
		require.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	path := packTestFile(t)

	out, err := run(t, "get", "--type", "uint32", path, "Width")
	require.NoError(t, err)
	require.Equal(t, "256\n", out)

	out, err = run(t, "get", "-t", "float32", path, "Meta/Scale")
	require.NoError(t, err)
	require.Equal(t, "2.5\n", out)

	out, err = run(t, "-o", "json", "get", "-t", "vector3", path, "Meta/Origin")
	require.NoError(t, err)
	var res struct {
		Key   string       `json:"key"`
		Value geom.Vector3 `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "Meta/Origin", res.Key)
	require.Equal(t, geom.Vector3{X: 1, Y: 2, Z: 3}, res.Value)

	out, err = run(t, "get", path, "Width")
	require.NoError(t, err)
	require.Equal(t, "00010000\n", out)

	_, err = run(t, "get", "-t", "uint32", path, "Missing")
	require.ErrorContains(t, err, "key not found")
}

func TestDigest(t *testing.T) {
	path := packTestFile(t)

	out, err := run(t, "digest", path)
	require.NoError(t, err)
	require.Contains(t, out, "[out.tag]\n")
	require.Contains(t, out, "Width = 00010000\n")

	out, err = run(t, "digest", "--path", "Meta", path)
	require.NoError(t, err)
	require.Contains(t, out, "[Meta]\n")
	require.Contains(t, out, "Scale = 00002040\n")
	require.Contains(t, out, "Origin = 12 bytes\n")

	out, err = run(t, "digest", "-r", path)
	require.NoError(t, err)
	require.Contains(t, out, "[out.tag/Meta]\n")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\nconcurrency: 2\n"), 0o600))

	cfg, err := LoadConfig(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Format)
	require.NotNil(t, cfg.Concurrency)
	require.Equal(t, 2, *cfg.Concurrency)

	missing, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Zero(t, missing)

	path := packTestFile(t)

	var out bytes.Buffer
	err = newApp(&out, &bytes.Buffer{}).Run(context.Background(),
		[]string{"tagdump", "--config", cfgPath, "get", "-t", "string", path, "Name"})
	require.NoError(t, err)
	require.Contains(t, out.String(), `"value": "Hello"`)

	out.Reset()
	err = newApp(&out, &bytes.Buffer{}).Run(context.Background(),
		[]string{"tagdump", "--config", cfgPath, "--format", "text", "get", "-t", "string", path, "Name"})
	require.NoError(t, err)
	require.Equal(t, "Hello\n", out.String())
}
