package config

import (
	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// Validate checks the manifest structure. Every target must be a valid
// compile request.
func Validate(cfg *Config) error {
	if cfg.Version != DefaultVersion {
		return errors.ConfigurationError("unsupported configuration version").
			WithContext("version", cfg.Version).
			Build()
	}
	if len(cfg.Targets) == 0 {
		return errors.ConfigurationError("configuration has no targets").Build()
	}
	for i, t := range cfg.Targets {
		if _, err := compiler.ParseRequest(map[string]any(t)); err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return ce.WithContext("target", i)
			}
			return err
		}
	}
	return nil
}
