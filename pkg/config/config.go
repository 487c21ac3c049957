package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/redist/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. REDIST_REGISTRY_KEY.
	EnvPrefix = "REDIST_"
	// EnvConfigFile points at a config file to use instead of the XDG one.
	EnvConfigFile = "REDIST_CONFIG"
	// FileName is the config file looked up in the XDG config directory.
	FileName = "redist.toml"
)

// Config is the effective redist configuration
type Config struct {
	Registry RegistryConfig `koanf:"registry" toml:"registry"`
	Logging  LoggingConfig  `koanf:"logging" toml:"logging"`
}

// RegistryConfig selects the store used by registries built from config
type RegistryConfig struct {
	Key    string `koanf:"key" toml:"key"`
	Global bool   `koanf:"global" toml:"global"`
}

// LoggingConfig controls logger setup
type LoggingConfig struct {
	Verbosity int  `koanf:"verbosity" toml:"verbosity"`
	File      bool `koanf:"file" toml:"file"`
}

// Load builds the configuration from, in increasing priority: embedded
// defaults, the config file, REDIST_* env vars, and overrides (flat
// "section.key" map, usually from CLI flags).
//
// path may be empty, in which case $REDIST_CONFIG or the XDG config file is
// used when present. An explicit path that does not exist is an error.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	configPath, explicit := resolvePath(path)
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), parserFor(configPath)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
					WithDetail("path", configPath)
			}
		} else if explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", configPath).
				WithDetail("path", configPath)
		}
	}

	// 3. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must be >= 0, got %d", c.Logging.Verbosity)
	}
	return nil
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() ([]byte, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}

// parserFor picks the YAML parser for .yaml/.yml files and TOML otherwise
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// resolvePath returns the file to read and whether the caller asked for it
// explicitly.
func resolvePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if fromEnv := os.Getenv(EnvConfigFile); fromEnv != "" {
		return fromEnv, true
	}
	return filepath.Join(xdg.ConfigHome, "redist", FileName), false
}
