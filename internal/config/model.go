package config

// Manifest is the unified, format-agnostic representation of one
// generation run's configuration.
type Manifest struct {
	// Enabled gates the whole pipeline. When false the build proceeds
	// with whichever bindings already exist on disk.
	Enabled bool

	// IncludeDir is the directory holding the schema files; it doubles as
	// the import-resolution root for cross-schema imports.
	IncludeDir string

	// OutputDir is where generated bindings land, replaced wholesale on
	// every run.
	OutputDir string

	// Inputs are schema files relative to IncludeDir, in compilation
	// order. Empty means "discover every schema under IncludeDir".
	Inputs []string

	// CompilerPath optionally pins the compiler binary. Environment and
	// CLI overrides take precedence over this value.
	CompilerPath string

	// EmitDescriptorSet asks the compiler for a serialized descriptor set
	// next to the bindings, enabling the post-generation report.
	EmitDescriptorSet bool

	// Policy is the fixed code-generation customization.
	Policy Policy

	// Plugins are the generator plugins to drive, in order.
	Plugins []Plugin
}

// Policy mirrors the generation policy knobs as they appear in the
// manifest.
type Policy struct {
	LiteRuntime     bool
	ZeroCopyBuffers bool
}

// Plugin is the format-agnostic representation of a `plugin` block.
type Plugin struct {
	Name    string
	Options []string

	// UseModulePath derives the Go module path from go.mod and passes it
	// to this plugin as a `module=` option, so generated files are laid
	// out relative to the module root.
	UseModulePath bool
}
