package config

import "fmt"

// FromMap builds a Config from a plain nested map, the shape produced
// by decoding YAML or JSON into interface{} values or by assembling
// configuration in code. The result is validated before it is
// returned. Unknown keys are ignored.
func FromMap(m map[string]interface{}) (*Config, error) {
	cfg := &Config{Layers: map[string]Layer{}}

	if v, ok := m["default_level"]; ok {
		s, err := asString(v, "default_level")
		if err != nil {
			return nil, err
		}
		cfg.DefaultLevel = s
	}

	if v, ok := m["layers"]; ok {
		layers, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("configuration errors: layers must be a map, got %T", v)
		}
		for name, raw := range layers {
			layer, err := layerFromMap(name, raw)
			if err != nil {
				return nil, err
			}
			cfg.Layers[name] = layer
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func layerFromMap(name string, raw interface{}) (Layer, error) {
	var layer Layer

	m, ok := raw.(map[string]interface{})
	if !ok {
		return layer, fmt.Errorf("configuration errors: layer %q must be a map, got %T", name, raw)
	}

	if v, ok := m["level"]; ok {
		s, err := asString(v, fmt.Sprintf("layer %q: level", name))
		if err != nil {
			return layer, err
		}
		layer.Level = s
	}

	if v, ok := m["destinations"]; ok {
		list, ok := v.([]interface{})
		if !ok {
			return layer, fmt.Errorf("configuration errors: layer %q: destinations must be a list, got %T", name, v)
		}
		for i, item := range list {
			d, err := destinationFromMap(name, i, item)
			if err != nil {
				return layer, err
			}
			layer.Destinations = append(layer.Destinations, d)
		}
	}

	return layer, nil
}

func destinationFromMap(layer string, index int, raw interface{}) (Destination, error) {
	var d Destination
	prefix := fmt.Sprintf("layer %q: destination %d", layer, index)

	m, ok := raw.(map[string]interface{})
	if !ok {
		return d, fmt.Errorf("configuration errors: %s must be a map, got %T", prefix, raw)
	}

	for key, v := range m {
		switch key {
		case "type":
			s, err := asString(v, prefix+": type")
			if err != nil {
				return d, err
			}
			d.Type = DestinationType(s)
		case "path":
			s, err := asString(v, prefix+": path")
			if err != nil {
				return d, err
			}
			d.Path = s
		case "level":
			s, err := asString(v, prefix+": level")
			if err != nil {
				return d, err
			}
			d.Level = s
		case "format":
			s, err := asString(v, prefix+": format")
			if err != nil {
				return d, err
			}
			d.Format = Format(s)
		case "max_size":
			switch n := v.(type) {
			case string:
				d.MaxSize = n
			case int:
				d.MaxSize = fmt.Sprintf("%d", n)
			case int64:
				d.MaxSize = fmt.Sprintf("%d", n)
			case float64:
				d.MaxSize = fmt.Sprintf("%d", int64(n))
			default:
				return d, fmt.Errorf("configuration errors: %s: max_size must be a string or number, got %T", prefix, v)
			}
		case "backup_count":
			n, err := asInt(v, prefix+": backup_count")
			if err != nil {
				return d, err
			}
			d.BackupCount = n
		case "color_mode":
			s, err := asString(v, prefix+": color_mode")
			if err != nil {
				return d, err
			}
			d.ColorMode = ColorMode(s)
		}
	}

	return d, nil
}

func asString(v interface{}, field string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("configuration errors: %s must be a string, got %T", field, v)
	}
	return s, nil
}

func asInt(v interface{}, field string) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("configuration errors: %s must be an integer, got %T", field, v)
	}
}
