package registry

import "github.com/arthur-debert/redist/pkg/config"

// FromConfig builds a registry from the [registry] section of cfg. Explicit
// opts are applied after the configured key and scope.
func FromConfig(cfg *config.Config, opts ...Option) *Registry {
	if cfg == nil {
		return New(opts...)
	}

	scope := Local
	if cfg.Registry.Global {
		scope = Global
	}

	base := []Option{WithKey(cfg.Registry.Key), WithScope(scope)}
	return New(append(base, opts...)...)
}
