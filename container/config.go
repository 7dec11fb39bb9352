package container

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/alx/endian"
	"github.com/arloliu/alx/internal/options"
)

const (
	// DefaultBossPrefix marks DAT files whose identity is offset by BossIdentityOffset.
	DefaultBossPrefix = "ebinit"
	// BossIdentityOffset is added to the file number of boss DAT files.
	BossIdentityOffset = 128
	// DefaultInternalExt is the segment name extension stored inside containers.
	DefaultInternalExt = ".bin"
	// DefaultExternalExt is the segment name extension exposed to callers.
	DefaultExternalExt = ".enp"
	// DefaultMaxSegments is the largest segment count the int16 header field can hold.
	DefaultMaxSegments = math.MaxInt16
)

// Config holds the settings shared by the parser and the builder.
type Config struct {
	logger      *slog.Logger
	engine      endian.EndianEngine
	bossPrefix  string
	internalExt string
	externalExt string
	maxSegments int
}

// Option configures a Parser or a Bake call.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:      slog.New(slog.DiscardHandler),
		engine:      endian.GetBigEndianEngine(),
		bossPrefix:  DefaultBossPrefix,
		internalExt: DefaultInternalExt,
		externalExt: DefaultExternalExt,
		maxSegments: DefaultMaxSegments,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger that receives skipped-record and summary events.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithBossPrefix sets the DAT file name prefix that denotes a boss record.
func WithBossPrefix(prefix string) Option {
	return options.New(func(c *Config) error {
		if prefix == "" {
			return fmt.Errorf("boss prefix must not be empty")
		}
		c.bossPrefix = prefix

		return nil
	})
}

// WithSegmentExtensions sets the internal and external segment name extensions.
func WithSegmentExtensions(internal, external string) Option {
	return options.New(func(c *Config) error {
		if internal == "" || external == "" {
			return fmt.Errorf("segment extensions must not be empty")
		}
		c.internalExt = internal
		c.externalExt = external

		return nil
	})
}

// WithMaxSegments limits how many segments Bake accepts.
func WithMaxSegments(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 || n > DefaultMaxSegments {
			return fmt.Errorf("max segments must be in [1, %d], got %d", DefaultMaxSegments, n)
		}
		c.maxSegments = n

		return nil
	})
}
