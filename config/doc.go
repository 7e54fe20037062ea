// Package config defines the logging configuration model: named
// layers, their ordered destinations, and the three-tier level
// inheritance (destination, then layer, then process default).
//
// Configuration is validated eagerly. Validate is the only place a
// bad setup turns into an error; once a Config has passed it, the
// engines built from it never fail a logging call over configuration.
// Configs are immutable after validation, so reconfiguration means
// building a new engine.
//
// Configs come from three sources: Load reads a YAML file, FromMap
// converts a plain nested map, and Registry builds named templates
// such as "development" or "production".
package config
