package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/protogen/internal/config"
	"github.com/vk/protogen/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a manifest file.
type fileRoot struct {
	Codegen *codegenBlock `hcl:"codegen,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// codegenBlock mirrors the `codegen` block of the manifest.
type codegenBlock struct {
	Enabled           *bool    `hcl:"enabled,optional"`
	IncludeDir        string   `hcl:"include_dir"`
	OutputDir         string   `hcl:"output_dir"`
	CompilerPath      string   `hcl:"compiler_path,optional"`
	Inputs            []string `hcl:"inputs,optional"`
	EmitDescriptorSet bool     `hcl:"emit_descriptor_set,optional"`

	Policy  *policyBlock   `hcl:"policy,block"`
	Plugins []*pluginBlock `hcl:"plugin,block"`
}

// policyBlock mirrors the `policy` block.
type policyBlock struct {
	LiteRuntime     bool `hcl:"lite_runtime,optional"`
	ZeroCopyBuffers bool `hcl:"zero_copy_buffers,optional"`
}

// pluginBlock mirrors a `plugin "<name>"` block.
type pluginBlock struct {
	Name          string   `hcl:"name,label"`
	Options       []string `hcl:"options,optional"`
	UseModulePath bool     `hcl:"use_module_path,optional"`
}

// Load reads the manifest at path, evaluates it against the process
// environment, and translates it into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}
	if root.Codegen == nil {
		return nil, fmt.Errorf("manifest %s has no codegen block", path)
	}

	manifest := l.translate(root.Codegen)
	logger.Debug("Manifest loaded.",
		"enabled", manifest.Enabled,
		"include_dir", manifest.IncludeDir,
		"output_dir", manifest.OutputDir,
		"inputs", len(manifest.Inputs),
		"plugins", len(manifest.Plugins),
	)
	return manifest, nil
}

// translate maps the decoded HCL blocks onto the config model, applying
// defaults for everything the manifest left out.
func (l *Loader) translate(block *codegenBlock) *config.Manifest {
	manifest := &config.Manifest{
		Enabled:           true,
		IncludeDir:        block.IncludeDir,
		OutputDir:         block.OutputDir,
		CompilerPath:      block.CompilerPath,
		Inputs:            block.Inputs,
		EmitDescriptorSet: block.EmitDescriptorSet,
	}
	if block.Enabled != nil {
		manifest.Enabled = *block.Enabled
	}
	if block.Policy != nil {
		manifest.Policy = config.Policy{
			LiteRuntime:     block.Policy.LiteRuntime,
			ZeroCopyBuffers: block.Policy.ZeroCopyBuffers,
		}
	}
	for _, plugin := range block.Plugins {
		manifest.Plugins = append(manifest.Plugins, config.Plugin{
			Name:          plugin.Name,
			Options:       append([]string{}, plugin.Options...),
			UseModulePath: plugin.UseModulePath,
		})
	}
	if len(manifest.Plugins) == 0 {
		// A manifest without plugin blocks drives the standard Go
		// generator with source-relative layout.
		manifest.Plugins = []config.Plugin{{Name: "go", Options: []string{"paths=source_relative"}}}
	}
	return manifest
}

// evalContext exposes the process environment to manifest expressions as
// the `env` object, e.g. `output_dir = env.PROTOGEN_OUT`.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
