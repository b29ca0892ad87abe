package protoc

import (
	"fmt"
	"os"
	"path/filepath"
)

// DescriptorSetName is the file the compiler is asked to write its
// serialized FileDescriptorSet into when descriptor emission is on. It
// lives alongside the generated bindings in the output directory.
const DescriptorSetName = "descriptor_set.bin"

// Plugin names one generator plugin the compiler drives, plus its option
// strings. The compiler finds the plugin binary as protoc-gen-<name> on
// PATH, per the standard plugin contract.
type Plugin struct {
	Name    string
	Options []string
}

// Invocation describes one generation run. Instances are built fresh per
// run and never shared.
type Invocation struct {
	// IncludeDir is the import-resolution root for the schema files.
	IncludeDir string

	// Inputs are schema file paths relative to IncludeDir, in compilation
	// order. Must be non-empty.
	Inputs []string

	// OutputDir receives the generated bindings. Its previous contents are
	// replaced wholesale on every successful run.
	OutputDir string

	// CompilerPath, when set, bypasses PATH discovery of the compiler.
	CompilerPath string

	// Plugins are the generators to run. At least one is required.
	Plugins []Plugin

	// EmitDescriptorSet additionally writes a serialized descriptor set
	// next to the bindings for post-generation reporting.
	EmitDescriptorSet bool
}

// Validate checks the structural preconditions of the invocation: a
// non-empty input set, at least one plugin, and every input resolvable
// under the include directory. Schema syntax is the compiler's job, not
// ours.
func (inv *Invocation) Validate() error {
	if len(inv.Inputs) == 0 {
		return fmt.Errorf("invocation has no schema inputs")
	}
	if len(inv.Plugins) == 0 {
		return fmt.Errorf("invocation has no generator plugins")
	}
	if inv.OutputDir == "" {
		return fmt.Errorf("invocation has no output directory")
	}
	if info, err := os.Stat(inv.IncludeDir); err != nil {
		return fmt.Errorf("include directory %s: %w", inv.IncludeDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("include directory %s is not a directory", inv.IncludeDir)
	}
	for _, input := range inv.Inputs {
		if filepath.IsAbs(input) {
			return fmt.Errorf("schema input %s must be relative to the include directory", input)
		}
		if _, err := os.Stat(filepath.Join(inv.IncludeDir, input)); err != nil {
			return fmt.Errorf("schema input %s: %w", input, err)
		}
	}
	return nil
}

// Args assembles the compiler command line for this invocation, emitting
// into stagingDir rather than OutputDir; the caller swaps the staging
// directory in after the compiler succeeds. Argument order is fixed so
// that identical configuration always produces an identical command line.
func (inv *Invocation) Args(stagingDir string, pol Policy) []string {
	args := []string{"-I", inv.IncludeDir}
	for _, plugin := range inv.Plugins {
		args = append(args, fmt.Sprintf("--%s_out=%s", plugin.Name, stagingDir))
		opts := append(append([]string{}, plugin.Options...), pol.PluginOptions(plugin.Name)...)
		for _, opt := range opts {
			args = append(args, fmt.Sprintf("--%s_opt=%s", plugin.Name, opt))
		}
	}
	if inv.EmitDescriptorSet {
		args = append(args,
			"--descriptor_set_out="+filepath.Join(stagingDir, DescriptorSetName),
			"--include_imports",
		)
	}
	return append(args, inv.Inputs...)
}
