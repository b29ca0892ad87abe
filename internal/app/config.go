package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // hcl manifest describing the generation run

	// Skip forces the pipeline off for this build, regardless of the
	// manifest.
	Skip bool

	// CompilerPath pins the compiler binary; wins over both PROTOC_PATH
	// and the manifest.
	CompilerPath string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
