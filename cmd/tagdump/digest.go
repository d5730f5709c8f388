package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/tagdata/container"
)

type digestResult struct {
	container.Digest `yaml:",inline"`
	Children []digestResult `json:"children,omitempty" yaml:"children,omitempty"`
}

func (d digestResult) renderText(w io.Writer) error {
	if _, err := io.WriteString(w, d.String()); err != nil {
		return err
	}
	for _, child := range d.Children {
		if err := child.renderText(w); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) digestCmd() *cli.Command {
	var (
		keyPath   string
		recursive bool
	)

	return &cli.Command{
		Name:      "digest",
		Usage:     "Print a per-entry summary of a container",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "sub-container key path such as Meta/Bones", Destination: &keyPath},
			&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "descend into entries that hold sub-containers", Destination: &recursive},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return cli.Exit("error: exactly one file is required", 1)
			}
			path := c.Args().First()

			r, _, err := a.openSource(path)
			if err != nil {
				return err
			}
			defer r.Close(false) //nolint:errcheck

			var result digestResult
			err = walk(r, splitKeyPath(keyPath), func(inner *container.Reader) error {
				name := filepath.Base(path)
				if keyPath != "" {
					name = keyPath
				}
				result, err = a.digest(name, inner, recursive)

				return err
			})
			if err != nil {
				return err
			}

			return render(a.out, a.format, result)
		},
	}
}

func (a *app) digest(name string, r *container.Reader, recursive bool) (digestResult, error) {
	d, err := r.MakeDigest(name)
	if err != nil {
		return digestResult{}, err
	}
	result := digestResult{Digest: d}

	if !recursive {
		return result, nil
	}

	for k := range r.All() {
		var child digestResult
		err := r.ProcessSubContainer(k, func(sub *container.Reader) error {
			var err error
			child, err = a.digest(name+"/"+k.Name(), sub, true)

			return err
		})
		if err != nil {
			// not every entry holds a nested container
			a.log.Debug("entry is not a sub-container", "key", k.Name(), "error", err)
			continue
		}
		result.Children = append(result.Children, child)
	}

	return result, nil
}

