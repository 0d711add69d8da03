// Package config handles configuration management for bulkmv.
// It supports loading configuration from multiple sources including
// the embedded defaults, a TOML or YAML user file, BULKMV_ environment
// variables, and command-line flags.
package config
