package config

// DefaultVersion is the manifest format version assumed when omitted.
const DefaultVersion = "1"

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.EmitMetadata == nil {
		emit := true
		cfg.EmitMetadata = &emit
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}
