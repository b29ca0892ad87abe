package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/protogen/internal/ctxlog"
	"github.com/vk/protogen/internal/protoc"
	"github.com/vk/protogen/internal/report"
)

// Run executes the generation step. It blocks until generation completes
// or fails; every error is fatal to the enclosing build, since bindings
// are a hard prerequisite for compiling the client library.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	step, err := a.PlanStep(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan generation step: %w", err)
	}

	if !step.Run {
		a.logger.Info("Schema generation is off; keeping existing bindings.", "reason", step.Reason)
		return nil
	}

	a.logger.Info("Compiling schemas.",
		"include_dir", step.Invocation.IncludeDir,
		"output_dir", step.Invocation.OutputDir,
		"inputs", step.Invocation.Inputs,
	)
	if err := a.generator.Generate(ctx, step.Invocation, step.Policy); err != nil {
		return fmt.Errorf("schema generation failed: %w", err)
	}

	if step.Invocation.EmitDescriptorSet {
		if err := a.reportUnits(step.Invocation); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// reportUnits reads back the emitted descriptor set, logs what was
// compiled, and enforces the output contract of one unit per input.
func (a *App) reportUnits(inv protoc.Invocation) error {
	units, err := report.FromFile(filepath.Join(inv.OutputDir, protoc.DescriptorSetName))
	if err != nil {
		return fmt.Errorf("generation report failed: %w", err)
	}
	if err := report.Verify(units, inv.Inputs); err != nil {
		return fmt.Errorf("generated output is incomplete: %w", err)
	}
	for _, unit := range units {
		a.logger.Debug("Compiled unit.",
			"schema", unit.SourceFile,
			"package", unit.Package,
			"messages", len(unit.Messages),
			"enums", len(unit.Enums),
		)
	}
	a.logger.Info("Generation report verified.", "units", len(units), "inputs", len(inv.Inputs))
	return nil
}
