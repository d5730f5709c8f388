package tagfile

import (
	"log/slog"

	"github.com/arloliu/tagdata/compress"
	"github.com/arloliu/tagdata/container"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/internal/options"
)

// Config holds tag file settings.
type Config struct {
	compression   format.CompressionType
	skipChecksum  bool
	containerOpts []container.Option
	logger        *slog.Logger
}

// Option configures Write, Read, Create and Open.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		compression: format.CompressionNone,
		logger:      slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression compresses the container body when writing.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithoutChecksum skips body checksum verification when reading.
func WithoutChecksum() Option {
	return options.NoError(func(c *Config) {
		c.skipChecksum = true
	})
}

// WithContainerOptions passes options through to the container reader.
func WithContainerOptions(opts ...container.Option) Option {
	return options.NoError(func(c *Config) {
		c.containerOpts = append(c.containerOpts, opts...)
	})
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.logger = l
		}
	})
}
