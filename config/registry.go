package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Builder produces a fresh Config. Registered builders are invoked on
// every Build call so callers never share mutable state.
type Builder func() *Config

// Registry holds named configuration templates. A handful of built-in
// templates cover the common cases; applications register their own
// for reusable setups.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry preloaded with the built-in
// templates: "default", "development", "production" and "minimal".
func NewRegistry() *Registry {
	r := &Registry{builders: map[string]Builder{}}
	r.builders["default"] = defaultTemplate
	r.builders["development"] = developmentTemplate
	r.builders["production"] = productionTemplate
	r.builders["minimal"] = minimalTemplate
	return r
}

// Register adds a named template. Registering over an existing name is
// an error so built-ins cannot be shadowed by accident.
func (r *Registry) Register(name string, b Builder) error {
	if name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if b == nil {
		return fmt.Errorf("template %q: builder cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("template %q is already registered", name)
	}
	r.builders[name] = b
	return nil
}

// Build constructs and validates the named template.
func (r *Registry) Build(name string) (*Config, error) {
	r.mu.RLock()
	b, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown config template: %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}

	cfg := b()
	if cfg == nil {
		return nil, fmt.Errorf("template %q returned nil", name)
	}
	if cfg.Layers == nil {
		cfg.Layers = map[string]Layer{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	return cfg, nil
}

// Names returns the registered template names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultTemplate() *Config {
	return &Config{
		DefaultLevel: "INFO",
		Layers: map[string]Layer{
			DefaultLayerName: {
				Destinations: []Destination{
					{Type: Console, Format: FormatText},
				},
			},
		},
	}
}

func developmentTemplate() *Config {
	return &Config{
		DefaultLevel: "DEBUG",
		Layers: map[string]Layer{
			DefaultLayerName: {
				Destinations: []Destination{
					{Type: Console, Format: FormatText, ColorMode: ColorAlways},
					{Type: File, Path: "logs/debug.log", Format: FormatText},
				},
			},
		},
	}
}

func productionTemplate() *Config {
	return &Config{
		DefaultLevel: "INFO",
		Layers: map[string]Layer{
			DefaultLayerName: {
				Destinations: []Destination{
					{Type: Console, Level: "WARNING", Format: FormatText, ColorMode: ColorNever},
					{Type: File, Path: "logs/app.log", Format: FormatJSON, MaxSize: "10MB", BackupCount: 5},
				},
			},
		},
	}
}

func minimalTemplate() *Config {
	return &Config{
		DefaultLevel: "WARNING",
		Layers: map[string]Layer{
			DefaultLayerName: {
				Destinations: []Destination{
					{Type: Console, Format: FormatText, ColorMode: ColorNever},
				},
			},
		},
	}
}
