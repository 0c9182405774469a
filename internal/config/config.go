// Package config loads the rollerblade project manifest.
//
// A manifest lists compile targets plus a few project-wide settings:
//
//	version: "1"
//	output_dir: dist
//	emit_metadata: true
//	metrics_textfile: /var/lib/node_exporter/rollerblade.prom
//	logging:
//	  level: info
//	  format: text
//	targets:
//	  - input: src/app.ts
//	    tsconfig: tsconfig.json
//	  - input: styles/site.scss
//	    output: css/
//	  - input: docs/index.md
//	    template: layouts/page.mustache
//	    data:
//	      site: ${SITE_NAME}
//
// Environment variables from .env and .env.local next to the manifest are
// loaded first, then ${VAR} references in the manifest are expanded.
//
// Manifests ending in .hcl are read as HCL instead, with target blocks and
// the environment available as the env object (see ParseHCL).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// DefaultFileName is the manifest looked up when no path is given.
const DefaultFileName = "rollerblade.yaml"

// Config is the decoded project manifest.
type Config struct {
	Version         string        `yaml:"version,omitempty"`
	OutputDir       string        `yaml:"output_dir,omitempty"`
	EmitMetadata    *bool         `yaml:"emit_metadata,omitempty"`
	MetricsTextfile string        `yaml:"metrics_textfile,omitempty"`
	Logging         LoggingConfig `yaml:"logging"`
	Targets         []Target      `yaml:"targets"`

	// BaseDir is the manifest's directory; relative target paths resolve
	// against it.
	BaseDir string `yaml:"-"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Target is one raw compile request as written in the manifest. It is an
// alias so yaml.v3 decodes nested mappings as plain map[string]any.
type Target = map[string]any

// Load reads, expands and validates the manifest at path.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)
	loadEnvFiles(dir)

	// #nosec G304 -- the manifest path is chosen by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigurationError("configuration file not found").WithPath(path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration file").
			WithPath(path).
			Fatal().
			Build()
	}

	var cfg *Config
	if IsHCL(path) {
		cfg, err = ParseHCL(data, path)
	} else {
		cfg, err = Parse([]byte(os.ExpandEnv(string(data))))
	}
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	cfg.BaseDir = dir
	return cfg, nil
}

// IsHCL reports whether path names an HCL manifest.
func IsHCL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".hcl")
}

// Parse decodes an already expanded manifest, applies defaults and
// validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").Fatal().Build()
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
