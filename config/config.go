package config

import (
	"fmt"
	"strings"

	"github.com/SavinRazvan/hydra-logger/core"
)

// DestinationType identifies the kind of sink a destination writes to.
type DestinationType string

const (
	// Console writes to a shared output stream (stdout by default).
	Console DestinationType = "console"
	// File writes to a size-rotated log file.
	File DestinationType = "file"
)

// Format identifies the wire encoding applied to each record.
type Format string

const (
	FormatText   Format = "plain-text"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSyslog Format = "syslog"
	FormatGELF   Format = "gelf"
)

// ParseFormat converts a format name to a Format. "text" and "plain"
// are accepted as aliases for "plain-text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain-text", "plain_text", "text", "plain", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "syslog":
		return FormatSyslog, nil
	case "gelf":
		return FormatGELF, nil
	default:
		return FormatText, fmt.Errorf("invalid log format: %q", s)
	}
}

// ColorMode controls ANSI coloring on console destinations.
type ColorMode string

const (
	// ColorNever disables coloring unconditionally.
	ColorNever ColorMode = "never"
	// ColorAuto enables coloring only when the stream is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways enables coloring unconditionally.
	ColorAlways ColorMode = "always"
)

// Destination describes one sink of a layer: its type, its optional
// level override, its encoding, and the sink-specific knobs.
type Destination struct {
	Type        DestinationType `yaml:"type"`
	Path        string          `yaml:"path"`
	Level       string          `yaml:"level"`
	Format      Format          `yaml:"format"`
	MaxSize     string          `yaml:"max_size"`
	BackupCount int             `yaml:"backup_count"`
	ColorMode   ColorMode       `yaml:"color_mode"`

	// filled in by Validate
	level    core.Level
	hasLevel bool
	maxBytes int64
}

// Threshold returns the destination's own level override. The second
// return is false when the destination inherits from its layer.
// Valid only after Validate has run.
func (d Destination) Threshold() (core.Level, bool) {
	return d.level, d.hasLevel
}

// SizeLimit returns the rotation threshold in bytes for file
// destinations. Valid only after Validate has run.
func (d Destination) SizeLimit() int64 {
	return d.maxBytes
}

// Layer is a named logical logging channel with an ordered list of
// destinations.
type Layer struct {
	Level        string        `yaml:"level"`
	Destinations []Destination `yaml:"destinations"`

	// filled in by Validate
	level    core.Level
	hasLevel bool
}

// Threshold returns the layer's level. The second return is false when
// the layer inherits the config default. Valid only after Validate.
func (l Layer) Threshold() (core.Level, bool) {
	return l.level, l.hasLevel
}

// Config is the validated root configuration: a map of layer name to
// layer plus the process-wide default level. It is built once at
// startup and treated as immutable afterwards.
type Config struct {
	DefaultLevel string           `yaml:"default_level"`
	Layers       map[string]Layer `yaml:"layers"`

	defaultLevel core.Level
	validated    bool
}

// DefaultLayerName is the layer that unknown layer names alias to when
// it is configured.
const DefaultLayerName = "DEFAULT"

// defaultMaxSize caps file growth when max_size is omitted. There is
// no backup_count default: 0 keeps no backups and truncates on
// rotation.
const defaultMaxSize = "5MB"

// DefaultThreshold returns the parsed process-wide default level.
// Valid only after Validate has run.
func (c *Config) DefaultThreshold() core.Level {
	return c.defaultLevel
}

// EffectiveLevel resolves the filtering threshold for a destination
// using three-tier inheritance: destination level if set, else layer
// level, else the config default.
func (c *Config) EffectiveLevel(l Layer, d Destination) core.Level {
	if lvl, ok := d.Threshold(); ok {
		return lvl
	}
	if lvl, ok := l.Threshold(); ok {
		return lvl
	}
	return c.defaultLevel
}

// Validated reports whether Validate has completed successfully.
func (c *Config) Validated() bool {
	return c.validated
}

// applyDefaults fills unset fields before validation.
func (c *Config) applyDefaults() {
	if c.DefaultLevel == "" {
		c.DefaultLevel = core.InfoLevel.String()
	}
	for name, layer := range c.Layers {
		for i := range layer.Destinations {
			d := &layer.Destinations[i]
			if d.Format == "" {
				d.Format = FormatText
			}
			if d.Type == File && d.MaxSize == "" {
				d.MaxSize = defaultMaxSize
			}
			if d.Type == Console && d.ColorMode == "" {
				d.ColorMode = ColorAuto
			}
		}
		c.Layers[name] = layer
	}
}

// Validate applies defaults, then checks every layer and destination.
// It is the single construction-fatal gate: invalid levels, formats,
// destination types, color modes, missing file paths, malformed sizes
// and negative backup counts are all reported here and never surface
// during logging calls. On success the parsed forms (levels, byte
// sizes) are cached for the router and handler factory.
func (c *Config) Validate() error {
	c.applyDefaults()

	var errs []string

	lvl, err := core.ParseLevel(c.DefaultLevel)
	if err != nil {
		errs = append(errs, fmt.Sprintf("default_level: %v", err))
	}
	c.defaultLevel = lvl

	for name, layer := range c.Layers {
		if layer.Level != "" {
			lvl, err := core.ParseLevel(layer.Level)
			if err != nil {
				errs = append(errs, fmt.Sprintf("layer %q: %v", name, err))
			}
			layer.level = lvl
			layer.hasLevel = true
		}

		for i := range layer.Destinations {
			d := &layer.Destinations[i]
			prefix := fmt.Sprintf("layer %q: destination %d", name, i)

			switch d.Type {
			case Console:
				switch d.ColorMode {
				case ColorNever, ColorAuto, ColorAlways:
				default:
					errs = append(errs, fmt.Sprintf("%s: invalid color_mode: %q", prefix, d.ColorMode))
				}
			case File:
				if strings.TrimSpace(d.Path) == "" {
					errs = append(errs, fmt.Sprintf("%s: file destination requires a non-empty path", prefix))
				}
				if d.BackupCount < 0 {
					errs = append(errs, fmt.Sprintf("%s: backup_count cannot be negative", prefix))
				}
				n, err := ParseSize(d.MaxSize)
				if err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
				}
				d.maxBytes = n
			default:
				errs = append(errs, fmt.Sprintf("%s: invalid destination type: %q", prefix, d.Type))
			}

			normalized, err := ParseFormat(string(d.Format))
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			}
			d.Format = normalized

			if d.Level != "" {
				lvl, err := core.ParseLevel(d.Level)
				if err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
				}
				d.level = lvl
				d.hasLevel = true
			}
		}

		c.Layers[name] = layer
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	c.validated = true
	return nil
}
