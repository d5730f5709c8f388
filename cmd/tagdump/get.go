package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/tagdata/container"
)

type getResult struct {
	Key   string `json:"key" yaml:"key"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

func (a *app) getCmd() *cli.Command {
	var typeName string

	return &cli.Command{
		Name:      "get",
		Usage:     "Decode one entry by key path",
		ArgsUsage: "FILE KEY[/KEY...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "value type such as uint32, string, vector3 or float32[]", Value: "bytes", Destination: &typeName},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 2 {
				return cli.Exit("error: FILE and KEY are required", 1)
			}

			vt, err := lookupType(typeName)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}

			keys := splitKeyPath(c.Args().Get(1))
			if len(keys) == 0 {
				return cli.Exit("error: empty key path", 1)
			}

			r, _, err := a.openSource(c.Args().First())
			if err != nil {
				return err
			}
			defer r.Close(false) //nolint:errcheck

			var value any
			err = walk(r, keys[:len(keys)-1], func(inner *container.Reader) error {
				value, err = vt.get(inner, keys[len(keys)-1])
				return err
			})
			if err != nil {
				return err
			}

			res := getResult{Key: c.Args().Get(1), Type: typeName, Value: value}
			if a.format == formatText || a.format == "" {
				_, err := fmt.Fprintln(a.out, value)
				return err
			}

			return render(a.out, a.format, res)
		},
	}
}
