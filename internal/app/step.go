package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/protogen/internal/ctxlog"
	"github.com/vk/protogen/internal/fsutil"
	"github.com/vk/protogen/internal/gomod"
	"github.com/vk/protogen/internal/protoc"
)

// Step is the planned outcome of activation gating: either a skip with a
// human-readable reason, or a fully-populated compiler invocation. The
// decision is made once per build; there is no runtime transition.
type Step struct {
	Run        bool
	Reason     string
	Invocation protoc.Invocation
	Policy     protoc.Policy
}

// PlanStep evaluates the activation gate and, when generation is on,
// assembles the invocation from the manifest plus overrides. When the
// gate is off the compiler layer is never touched and the output
// directory is left exactly as it was.
func (a *App) PlanStep(ctx context.Context) (Step, error) {
	logger := ctxlog.FromContext(ctx)

	switch {
	case a.config.Skip:
		return Step{Reason: "skip flag set"}, nil
	case a.env.Skip:
		return Step{Reason: "PROTOGEN_SKIP set in environment"}, nil
	case !a.manifest.Enabled:
		return Step{Reason: "manifest disables generation"}, nil
	}

	inputs := append([]string{}, a.manifest.Inputs...)
	if len(inputs) == 0 {
		discovered, err := fsutil.FindSchemaFiles(a.manifest.IncludeDir)
		if err != nil {
			return Step{}, fmt.Errorf("schema discovery failed in %s: %w", a.manifest.IncludeDir, err)
		}
		if len(discovered) == 0 {
			return Step{}, fmt.Errorf("no schema files found under %s", a.manifest.IncludeDir)
		}
		logger.Debug("Schema inputs discovered.", "count", len(discovered))
		inputs = discovered
	}

	plugins, err := a.planPlugins()
	if err != nil {
		return Step{}, err
	}

	step := Step{
		Run: true,
		Invocation: protoc.Invocation{
			IncludeDir:        a.manifest.IncludeDir,
			Inputs:            inputs,
			OutputDir:         a.manifest.OutputDir,
			CompilerPath:      a.compilerOverride(),
			Plugins:           plugins,
			EmitDescriptorSet: a.manifest.EmitDescriptorSet,
		},
		Policy: protoc.Policy{
			LiteRuntime:     a.manifest.Policy.LiteRuntime,
			ZeroCopyBuffers: a.manifest.Policy.ZeroCopyBuffers,
		},
	}
	logger.Debug("Generation step planned.", "inputs", len(step.Invocation.Inputs), "plugins", len(step.Invocation.Plugins))
	return step, nil
}

// compilerOverride resolves override precedence: CLI flag, then the
// PROTOC_PATH environment variable, then the manifest. Empty means "let
// PATH discovery decide".
func (a *App) compilerOverride() string {
	if a.config.CompilerPath != "" {
		return a.config.CompilerPath
	}
	if a.env.CompilerPath != "" {
		return a.env.CompilerPath
	}
	return a.manifest.CompilerPath
}

// planPlugins maps manifest plugin blocks onto compiler plugin arguments,
// resolving the module path for plugins that asked for module-relative
// output layout.
func (a *App) planPlugins() ([]protoc.Plugin, error) {
	plugins := make([]protoc.Plugin, 0, len(a.manifest.Plugins))
	for _, plugin := range a.manifest.Plugins {
		options := append([]string{}, plugin.Options...)
		if plugin.UseModulePath {
			goMod := filepath.Join(filepath.Dir(a.config.ManifestPath), "go.mod")
			modulePath, err := gomod.ModulePath(goMod)
			if err != nil {
				return nil, fmt.Errorf("plugin %s requested module-relative output: %w", plugin.Name, err)
			}
			options = append(options, "module="+modulePath)
		}
		plugins = append(plugins, protoc.Plugin{Name: plugin.Name, Options: options})
	}
	return plugins, nil
}
