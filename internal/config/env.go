package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

// Env holds the process-environment overrides recognized by the
// generation step. Both are optional; absence is never an error at this
// layer.
type Env struct {
	// CompilerPath is an absolute path to the schema compiler binary. It
	// overrides PATH discovery and the manifest's compiler_path.
	CompilerPath string `env:"PROTOC_PATH"`

	// Skip forces the pipeline off regardless of the manifest, letting a
	// build run against pre-generated, checked-in bindings.
	Skip bool `env:"PROTOGEN_SKIP"`
}

// LoadEnv parses the overrides from the process environment.
func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return e, nil
}
