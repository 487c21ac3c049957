// Package config handles configuration management for redist.
// It layers embedded TOML defaults, an optional config file (TOML or YAML),
// REDIST_* environment variables and explicit overrides, in that order.
package config
