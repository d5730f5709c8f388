// Command tagdump inspects and builds tagged data containers.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/tagdata/internal/logger"
)

const defaultConcurrency = 4

// app holds the settings resolved from flags and the config file.
type app struct {
	out         io.Writer
	log         logger.Logger
	format      string
	compression string
	concurrency int
	verify      bool
}

func newApp(out, errOut io.Writer) *cli.Command {
	a := &app{out: out, log: logger.Discard()}

	var (
		cfgPath   string
		logLevel  string
		logFormat string
	)

	return &cli.Command{
		Name:      "tagdump",
		Usage:     "Inspect and build tagged data containers",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file", Value: configPath(), Destination: &cfgPath},
			&cli.StringFlag{Name: "format", Aliases: []string{"o"}, Usage: "output format: text, json or yaml", Value: formatText, Destination: &a.format},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "warn", Destination: &logLevel},
			&cli.StringFlag{Name: "log-format", Usage: "text or json", Value: "text", Destination: &logFormat},
			&cli.IntFlag{Name: "concurrency", Usage: "files processed in parallel", Value: defaultConcurrency, Destination: &a.concurrency},
			&cli.BoolFlag{Name: "verify", Usage: "verify tag file checksums", Value: true, Destination: &a.verify},
			&cli.StringFlag{Name: "compression", Usage: "body compression for pack: none, zstd, s2 or lz4", Value: "none", Destination: &a.compression},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(cfgPath)
			if err != nil {
				return ctx, err
			}
			a.applyConfig(c, cfg, &logLevel, &logFormat)

			level := logger.ParseLevel(logLevel)
			if logFormat == "json" {
				a.log = logger.JSON(errOut, level)
			} else {
				a.log = logger.Text(errOut, level)
			}

			return logger.WithContext(ctx, a.log), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			a.inspectCmd(),
			a.digestCmd(),
			a.getCmd(),
			a.packCmd(),
		},
	}
}

// applyConfig applies config file defaults for flags that were not set explicitly.
func (a *app) applyConfig(c *cli.Command, cfg Config, logLevel, logFormat *string) {
	if cfg.Format != "" && !c.IsSet("format") {
		a.format = cfg.Format
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		*logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		*logFormat = cfg.LogFormat
	}
	if cfg.Compression != "" && !c.IsSet("compression") {
		a.compression = cfg.Compression
	}
	if cfg.Concurrency != nil && !c.IsSet("concurrency") {
		a.concurrency = *cfg.Concurrency
	}
	if cfg.Verify != nil && !c.IsSet("verify") {
		a.verify = *cfg.Verify
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
