// Package config provides configuration types and loading for the visualizer.
// Configuration is read from a YAML file, layered over defaults, and
// validated once command-line and environment overrides are applied.
package config
