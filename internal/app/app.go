package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/protogen/internal/config"
	"github.com/vk/protogen/internal/ctxlog"
	"github.com/vk/protogen/internal/protoc"
)

// generator is the capability App needs from the compiler layer. It is
// satisfied by *protoc.Generator and by fakes in tests.
type generator interface {
	Generate(ctx context.Context, inv protoc.Invocation, pol protoc.Policy) error
}

// App encapsulates the generation step's dependencies, configuration, and
// lifecycle. Each build invocation constructs its own App; nothing is
// shared across runs.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	manifest  *config.Manifest
	env       config.Env
	generator generator
}

// NewApp is the constructor for the generation step. It loads the
// manifest and environment overrides eagerly; a failure there is a fatal
// startup error and panics, to be recovered at the entrypoint.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, generators ...generator) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifest, err := loader.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		// A failure to load the manifest is a fatal startup error.
		panic(fmt.Errorf("failed to load manifest: %w", err))
	}
	logger.Debug("Manifest loaded and translated into unified model.")

	envOverrides, err := config.LoadEnv()
	if err != nil {
		panic(err)
	}
	logger.Debug("Environment overrides resolved.", "compiler_override", envOverrides.CompilerPath != "", "skip", envOverrides.Skip)

	gen := generator(protoc.New())
	if len(generators) > 0 {
		gen = generators[0]
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		manifest:  manifest,
		env:       envOverrides,
		generator: gen,
	}
}

// Manifest returns the loaded manifest. This is primarily for testing.
func (a *App) Manifest() *config.Manifest {
	return a.manifest
}
