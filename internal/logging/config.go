// Package logging configures the process-wide slog logger: level,
// text or JSON format, and a stderr, rotating-file, or discard sink.
package logging

import (
	"fmt"
	"strings"
)

// Sink selects where log output goes.
type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config describes the logger. Pointer fields distinguish "unset"
// from an explicit zero so configs can be merged over defaults.
type Config struct {
	Level      *string `yaml:"level,omitempty"`
	Format     *string `yaml:"format,omitempty"`
	Sink       *string `yaml:"sink,omitempty"`
	File       *string `yaml:"file,omitempty"`
	AddSource  *bool   `yaml:"add_source,omitempty"`
	MaxSizeMB  *int    `yaml:"max_size_mb,omitempty"`
	MaxBackups *int    `yaml:"max_backups,omitempty"`
	MaxAgeDays *int    `yaml:"max_age_days,omitempty"`
	Compress   *bool   `yaml:"compress,omitempty"`
}

// Normalize validates enum fields and lowercases them in place.
func (c Config) Normalize() (Config, error) {
	if c.Sink != nil {
		sink := Sink(strings.ToLower(strings.TrimSpace(*c.Sink)))
		switch sink {
		case SinkStderr, SinkFile, SinkNone:
			s := string(sink)
			c.Sink = &s
		default:
			return c, fmt.Errorf("logging: unknown sink %q", *c.Sink)
		}
	}
	if c.Format != nil {
		format := Format(strings.ToLower(strings.TrimSpace(*c.Format)))
		switch format {
		case FormatText, FormatJSON:
			f := string(format)
			c.Format = &f
		default:
			return c, fmt.Errorf("logging: unknown format %q", *c.Format)
		}
	}
	return c, nil
}

// Merge overlays set fields of override onto base.
func Merge(base, override Config) Config {
	out := base
	if override.Level != nil {
		out.Level = override.Level
	}
	if override.Format != nil {
		out.Format = override.Format
	}
	if override.Sink != nil {
		out.Sink = override.Sink
	}
	if override.File != nil {
		out.File = override.File
	}
	if override.AddSource != nil {
		out.AddSource = override.AddSource
	}
	if override.MaxSizeMB != nil {
		out.MaxSizeMB = override.MaxSizeMB
	}
	if override.MaxBackups != nil {
		out.MaxBackups = override.MaxBackups
	}
	if override.MaxAgeDays != nil {
		out.MaxAgeDays = override.MaxAgeDays
	}
	if override.Compress != nil {
		out.Compress = override.Compress
	}
	return out
}
