// Package config loads the settings of an alx run from a YAML file.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default:
//
//	sources:
//	  root: ./disc
//	snapshot:
//	  compression: lz4
//	log:
//	  level: debug
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/arloliu/alx/container"
	"github.com/arloliu/alx/format"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a load, rebake or snapshot run.
type Config struct {
	// Sources selects the files read from the disc image.
	Sources SourcesConfig `yaml:"sources"`

	// Segments configures multi-segment container naming and limits.
	Segments SegmentsConfig `yaml:"segments"`

	// Snapshot configures catalog snapshots.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Log configures the logger.
	Log LogConfig `yaml:"log"`
}

// SourcesConfig selects the record files of a disc image.
type SourcesConfig struct {
	// Root is the directory of the extracted disc image.
	Root string `yaml:"root"`

	// EVPPattern is the name substring of event containers.
	// Default: epevent.evp
	EVPPattern string `yaml:"evp_pattern"`

	// ENPPattern is the name substring of field containers.
	// Default: _ep.enp
	ENPPattern string `yaml:"enp_pattern"`

	// DATPatterns are the name substrings of single-record files.
	// Only names ending in .dat are read.
	// Default: [ecinit, ebinit]
	DATPatterns []string `yaml:"dat_patterns"`

	// BossPrefix marks DAT files whose identity is offset by 128.
	// Default: ebinit
	BossPrefix string `yaml:"boss_prefix"`
}

// SegmentsConfig configures multi-segment containers.
type SegmentsConfig struct {
	// InternalExt is the segment name extension stored inside containers.
	// Default: .bin
	InternalExt string `yaml:"internal_ext"`

	// ExternalExt is the segment name extension shown to callers.
	// Default: .enp
	ExternalExt string `yaml:"external_ext"`

	// MaxSegments limits how many segments a rebake may write.
	// Default: 32767
	MaxSegments int `yaml:"max_segments"`
}

// SnapshotConfig configures catalog snapshots.
type SnapshotConfig struct {
	// Path is the snapshot file name inside the output store.
	// Default: catalog.alxs
	Path string `yaml:"path"`

	// Compression is one of none, zstd, s2 or lz4.
	// Default: zstd
	Compression string `yaml:"compression"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`

	// Format is text or json.
	// Default: text
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{
			Root:        ".",
			EVPPattern:  "epevent.evp",
			ENPPattern:  "_ep.enp",
			DATPatterns: []string{"ecinit", "ebinit"},
			BossPrefix:  container.DefaultBossPrefix,
		},
		Segments: SegmentsConfig{
			InternalExt: container.DefaultInternalExt,
			ExternalExt: container.DefaultExternalExt,
			MaxSegments: container.DefaultMaxSegments,
		},
		Snapshot: SnapshotConfig{
			Path:        "catalog.alxs",
			Compression: "zstd",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Sources.Root == "" {
		errs = append(errs, errors.New("sources.root must not be empty"))
	}
	if c.Sources.ENPPattern == "" {
		errs = append(errs, errors.New("sources.enp_pattern must not be empty"))
	}
	if c.Sources.BossPrefix == "" {
		errs = append(errs, errors.New("sources.boss_prefix must not be empty"))
	}
	if c.Segments.InternalExt == "" || c.Segments.ExternalExt == "" {
		errs = append(errs, errors.New("segments extensions must not be empty"))
	}
	if c.Segments.MaxSegments <= 0 || c.Segments.MaxSegments > container.DefaultMaxSegments {
		errs = append(errs, fmt.Errorf("segments.max_segments must be in [1, %d], got %d",
			container.DefaultMaxSegments, c.Segments.MaxSegments))
	}
	if ct, ok := format.ParseCompressionType(c.Snapshot.Compression); !ok || ct == format.CompressionAKLZ {
		errs = append(errs, fmt.Errorf("snapshot.compression %q is not one of none, zstd, s2, lz4", c.Snapshot.Compression))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SnapshotCompression returns the configured snapshot codec.
func (c *Config) SnapshotCompression() format.CompressionType {
	ct, ok := format.ParseCompressionType(c.Snapshot.Compression)
	if !ok {
		return format.CompressionZstd
	}

	return ct
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}

	return level, nil
}

// ContainerOptions returns the container options matching the configuration.
func (c *Config) ContainerOptions() []container.Option {
	return []container.Option{
		container.WithBossPrefix(c.Sources.BossPrefix),
		container.WithSegmentExtensions(c.Segments.InternalExt, c.Segments.ExternalExt),
		container.WithMaxSegments(c.Segments.MaxSegments),
	}
}
