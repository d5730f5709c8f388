package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type entryRow struct {
	Key    string `json:"key" yaml:"key"`
	Hash   string `json:"hash" yaml:"hash"`
	Offset int64  `json:"offset" yaml:"offset"`
	Size   int64  `json:"size" yaml:"size"`
}

type inspectResult struct {
	Path      string        `json:"path" yaml:"path"`
	Kind      string        `json:"kind" yaml:"kind"`
	Size      int64         `json:"size" yaml:"size"`
	Digest    digest.Digest `json:"digest" yaml:"digest"`
	Flags     string        `json:"flags" yaml:"flags"`
	KeyFormat string        `json:"key_format" yaml:"key_format"`
	Offset64  bool          `json:"offset64" yaml:"offset64"`
	End       int64         `json:"end" yaml:"end"`
	Entries   []entryRow    `json:"entries" yaml:"entries"`
}

type inspectResults []inspectResult

func (rs inspectResults) renderText(w io.Writer) error {
	for i, r := range rs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "File:       %s (%s, %d bytes)\n", r.Path, r.Kind, r.Size)
		fmt.Fprintf(w, "Digest:     %s\n", r.Digest)
		fmt.Fprintf(w, "Flags:      %s\n", r.Flags)
		fmt.Fprintf(w, "Key format: %s\n", r.KeyFormat)
		fmt.Fprintf(w, "Offsets:    %s\n", offsetWidth(r.Offset64))
		fmt.Fprintf(w, "Entries:    %d\n", len(r.Entries))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  KEY\tHASH\tOFFSET\tSIZE")
		for _, e := range r.Entries {
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\n", e.Key, e.Hash, e.Offset, e.Size)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func offsetWidth(wide bool) string {
	if wide {
		return "64-bit"
	}

	return "32-bit"
}

func (a *app) inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header and key table of one or more files",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: at least one file is required", 1)
			}

			results, err := a.inspectAll(ctx, paths)
			if err != nil {
				return err
			}

			return render(a.out, a.format, results)
		},
	}
}

// inspectAll inspects paths concurrently and returns results in argument order.
func (a *app) inspectAll(ctx context.Context, paths []string) (inspectResults, error) {
	results := make(inspectResults, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(a.concurrency, 1))

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := a.inspect(path)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			results[i] = res

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (a *app) inspect(path string) (inspectResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return inspectResult{}, err
	}
	dgst, err := digest.Canonical.FromReader(f)
	_ = f.Close()
	if err != nil {
		return inspectResult{}, err
	}

	r, kind, err := a.openSource(path)
	if err != nil {
		return inspectResult{}, err
	}
	defer r.Close(false) //nolint:errcheck

	st, err := os.Stat(path)
	if err != nil {
		return inspectResult{}, err
	}

	res := inspectResult{
		Path:      path,
		Kind:      kind,
		Size:      st.Size(),
		Digest:    dgst,
		Flags:     r.Flags().String(),
		KeyFormat: r.Flags().KeyFormat().String(),
		Offset64:  r.Flags().Has64BitOffsets(),
		End:       r.End(),
		Entries:   make([]entryRow, 0, r.Len()),
	}
	for k, info := range r.All() {
		res.Entries = append(res.Entries, entryRow{
			Key:    k.Name(),
			Hash:   fmt.Sprintf("%08x", k.Hash()),
			Offset: info.Offset,
			Size:   info.Size,
		})
	}

	a.log.Debug("inspected", "path", path, "entries", len(res.Entries))

	return res, nil
}

