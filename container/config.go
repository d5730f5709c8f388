package container

import (
	"log/slog"
	"math"

	"github.com/arloliu/tagdata/endian"
	"github.com/arloliu/tagdata/format"
	"github.com/arloliu/tagdata/internal/options"
	"github.com/arloliu/tagdata/section"
	"github.com/arloliu/tagdata/stream"
)

// Config holds the settings shared by Reader and Writer.
// Settings that only apply to one side are ignored by the other.
type Config struct {
	endianIndependent *bool
	keyFormat         format.KeyFormat
	force64BitOffsets bool
	offset64Threshold uint64
	ownsStream        bool
	logger            *slog.Logger
}

// Option configures a Reader or Writer.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		keyFormat:         format.KeyFormatHashed,
		offset64Threshold: math.MaxUint32,
		logger:            slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// child returns the configuration for a nested container: same byte order
// and key format, never owning the stream.
func (c *Config) child(endianIndependent bool) *Config {
	cp := *c
	cp.endianIndependent = &endianIndependent
	cp.ownsStream = false

	return &cp
}

func (c *Config) setEndianIndependent(v bool) {
	c.endianIndependent = &v
}

func (c *Config) setKeyFormat(kf format.KeyFormat) error {
	_, err := section.FlagForKeyFormat(kf)
	if err != nil {
		return err
	}
	c.keyFormat = kf

	return nil
}

func (c *Config) setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.logger = l
}

// writerEngine returns the byte order for writers: little-endian unless the
// medium was declared host-local.
func (c *Config) writerEngine() (endian.EndianEngine, bool) {
	independent := c.endianIndependent == nil || *c.endianIndependent
	return endian.ForMedium(independent), independent
}

// readerEngine returns the byte order for a source stream.
func (c *Config) readerEngine(src any) (endian.EndianEngine, bool) {
	independent := stream.IsEndianIndependent(src)
	if c.endianIndependent != nil {
		independent = *c.endianIndependent
	}

	return endian.ForMedium(independent), independent
}

// WithEndianIndependent declares whether the medium needs a host-independent
// byte order. Writers default to true. Readers default to the declaration of
// their source stream.
func WithEndianIndependent(v bool) Option {
	return options.NoError(func(c *Config) {
		c.setEndianIndependent(v)
	})
}

// WithKeyFormat selects the key table form written by a Writer.
// The default is format.KeyFormatHashed; legacy output is not supported.
func WithKeyFormat(kf format.KeyFormat) Option {
	return options.New(func(c *Config) error {
		return c.setKeyFormat(kf)
	})
}

// With64BitOffsets makes a Writer emit 64-bit offset pairs even when 32 bits would do.
func With64BitOffsets() Option {
	return options.NoError(func(c *Config) {
		c.force64BitOffsets = true
	})
}

// WithOwnedStream makes a Reader close its source stream on Close when the
// stream implements io.Closer.
func WithOwnedStream() Option {
	return options.NoError(func(c *Config) {
		c.ownsStream = true
	})
}

// WithLogger sets the logger used for diagnostics. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.setLogger(l)
	})
}
