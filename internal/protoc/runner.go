package protoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/vk/protogen/internal/ctxlog"
)

// Generator runs the schema compiler. The zero value is not usable; build
// instances with New.
type Generator struct {
	lookPath LookPathFunc
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLookPath replaces the PATH search used for compiler resolution.
func WithLookPath(fn LookPathFunc) Option {
	return func(g *Generator) {
		g.lookPath = fn
	}
}

// New creates a Generator with the standard toolchain lookup.
func New(opts ...Option) *Generator {
	g := &Generator{lookPath: exec.LookPath}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate performs one full, synchronous compilation. The compiler writes
// into a throwaway staging directory; only when it exits cleanly is the
// output directory replaced with the staging contents. Failure of any
// input therefore leaves no partial output behind, and re-running with
// unchanged inputs yields byte-identical results.
func (g *Generator) Generate(ctx context.Context, inv Invocation, pol Policy) error {
	logger := ctxlog.FromContext(ctx)

	bin, err := ResolveCompiler(inv.CompilerPath, g.lookPath)
	if err != nil {
		return err
	}
	if err := inv.Validate(); err != nil {
		return fmt.Errorf("invalid invocation: %w", err)
	}
	logger.Debug("Compiler resolved.", "binary", bin, "inputs", len(inv.Inputs))

	parent := filepath.Dir(filepath.Clean(inv.OutputDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return &OutputError{Op: "prepare", Path: parent, Err: err}
	}
	staging, err := os.MkdirTemp(parent, ".protogen-staging-")
	if err != nil {
		return &OutputError{Op: "stage", Path: parent, Err: err}
	}
	defer os.RemoveAll(staging)

	args := inv.Args(staging, pol)
	logger.Debug("Running schema compiler.", "binary", bin, "args", args)

	cmd := exec.CommandContext(ctx, bin, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			// The compiler ran and rejected the schemas. Its diagnostics
			// carry file/line/column detail and are passed through as-is.
			return &SchemaError{Diagnostics: combined.String(), Err: err}
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			// An override pointed at a binary that does not exist.
			return fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
		default:
			return fmt.Errorf("schema compiler did not run: %w", err)
		}
	}

	if err := g.swap(staging, inv.OutputDir); err != nil {
		return err
	}
	logger.Info("Schema bindings generated.", "output_dir", inv.OutputDir, "inputs", len(inv.Inputs))
	return nil
}

// swap atomically-ish replaces outputDir with the staging directory. The
// old tree is removed first so stale artifacts from earlier runs with a
// different configuration cannot survive.
func (g *Generator) swap(staging, outputDir string) error {
	if err := os.Chmod(staging, 0o755); err != nil {
		return &OutputError{Op: "stage", Path: staging, Err: err}
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return &OutputError{Op: "clear", Path: outputDir, Err: err}
	}
	if err := os.Rename(staging, outputDir); err != nil {
		return &OutputError{Op: "publish", Path: outputDir, Err: err}
	}
	return nil
}
