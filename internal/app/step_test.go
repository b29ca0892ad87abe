package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vk/protogen/internal/config"
	"github.com/vk/protogen/internal/protoc"
)

// staticLoader hands back a pre-built manifest, bypassing any on-disk
// format.
type staticLoader struct {
	manifest *config.Manifest
}

func (l *staticLoader) Load(_ context.Context, _ string) (*config.Manifest, error) {
	return l.manifest, nil
}

// unsetenv clears a variable while keeping t.Setenv's cleanup behavior.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func cleanEnv(t *testing.T) {
	t.Helper()
	unsetenv(t, "PROTOC_PATH")
	unsetenv(t, "PROTOGEN_SKIP")
}

func enabledManifest() *config.Manifest {
	return &config.Manifest{
		Enabled:    true,
		IncludeDir: "proto",
		OutputDir:  "generated/protobuf",
		Inputs:     []string{"command_request.proto", "response.proto", "connection_request.proto"},
		Policy:     config.Policy{ZeroCopyBuffers: true},
		Plugins:    []config.Plugin{{Name: "go", Options: []string{"paths=source_relative"}}},
	}
}

func newTestApp(t *testing.T, manifest *config.Manifest, appConfig Config) *App {
	t.Helper()
	if appConfig.ManifestPath == "" {
		appConfig.ManifestPath = filepath.Join(t.TempDir(), "protogen.hcl")
	}
	if appConfig.LogFormat == "" {
		appConfig.LogFormat = "text"
	}
	if appConfig.LogLevel == "" {
		appConfig.LogLevel = "error"
	}
	cfg, err := NewConfig(appConfig)
	if err != nil {
		t.Fatalf("NewConfig() failed: %v", err)
	}
	return NewApp(&bytes.Buffer{}, cfg, &staticLoader{manifest: manifest})
}

func TestPlanStep_SkipFlagWins(t *testing.T) {
	cleanEnv(t)

	app := newTestApp(t, enabledManifest(), Config{Skip: true})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if step.Run {
		t.Fatal("skip flag must disable generation")
	}
	if step.Reason != "skip flag set" {
		t.Errorf("unexpected reason %q", step.Reason)
	}
}

func TestPlanStep_EnvSkip(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PROTOGEN_SKIP", "true")

	app := newTestApp(t, enabledManifest(), Config{})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if step.Run {
		t.Fatal("PROTOGEN_SKIP must disable generation")
	}
}

func TestPlanStep_ManifestDisabled(t *testing.T) {
	cleanEnv(t)

	manifest := enabledManifest()
	manifest.Enabled = false

	app := newTestApp(t, manifest, Config{})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if step.Run {
		t.Fatal("a disabled manifest must disable generation")
	}
}

func TestPlanStep_BuildsInvocation(t *testing.T) {
	cleanEnv(t)

	app := newTestApp(t, enabledManifest(), Config{})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if !step.Run {
		t.Fatal("expected a run step")
	}

	wantInv := protoc.Invocation{
		IncludeDir: "proto",
		Inputs:     []string{"command_request.proto", "response.proto", "connection_request.proto"},
		OutputDir:  "generated/protobuf",
		Plugins:    []protoc.Plugin{{Name: "go", Options: []string{"paths=source_relative"}}},
	}
	if diff := cmp.Diff(wantInv, step.Invocation); diff != "" {
		t.Errorf("invocation mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(protoc.Policy{ZeroCopyBuffers: true}, step.Policy); diff != "" {
		t.Errorf("policy mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanStep_CompilerOverridePrecedence(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PROTOC_PATH", "/from/env/protoc")

	manifest := enabledManifest()
	manifest.CompilerPath = "/from/manifest/protoc"

	// Environment beats the manifest...
	app := newTestApp(t, manifest, Config{})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if step.Invocation.CompilerPath != "/from/env/protoc" {
		t.Errorf("env override lost: %q", step.Invocation.CompilerPath)
	}

	// ...and the CLI flag beats the environment.
	app = newTestApp(t, manifest, Config{CompilerPath: "/from/flag/protoc"})
	step, err = app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if step.Invocation.CompilerPath != "/from/flag/protoc" {
		t.Errorf("flag override lost: %q", step.Invocation.CompilerPath)
	}
}

func TestPlanStep_DiscoversInputsWhenUnset(t *testing.T) {
	cleanEnv(t)

	include := t.TempDir()
	for _, name := range []string{"b.proto", "a.proto"} {
		if err := os.WriteFile(filepath.Join(include, name), []byte("syntax = \"proto3\";\n"), 0o600); err != nil {
			t.Fatalf("failed to write schema: %v", err)
		}
	}

	manifest := enabledManifest()
	manifest.IncludeDir = include
	manifest.Inputs = nil

	app := newTestApp(t, manifest, Config{})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a.proto", "b.proto"}, step.Invocation.Inputs); diff != "" {
		t.Errorf("discovered inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanStep_NoSchemasAnywhere(t *testing.T) {
	cleanEnv(t)

	manifest := enabledManifest()
	manifest.IncludeDir = t.TempDir()
	manifest.Inputs = nil

	app := newTestApp(t, manifest, Config{})
	if _, err := app.PlanStep(context.Background()); err == nil {
		t.Fatal("expected an error when no schemas can be found")
	}
}

func TestPlanStep_ModulePathOption(t *testing.T) {
	cleanEnv(t)

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "protogen.hcl")
	goMod := filepath.Join(dir, "go.mod")
	if err := os.WriteFile(goMod, []byte("module example.com/client\n\ngo 1.24.5\n"), 0o600); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	manifest := enabledManifest()
	manifest.Plugins = []config.Plugin{{Name: "go", UseModulePath: true}}

	app := newTestApp(t, manifest, Config{ManifestPath: manifestPath})
	step, err := app.PlanStep(context.Background())
	if err != nil {
		t.Fatalf("PlanStep() failed: %v", err)
	}

	want := []protoc.Plugin{{Name: "go", Options: []string{"module=example.com/client"}}}
	if diff := cmp.Diff(want, step.Invocation.Plugins); diff != "" {
		t.Errorf("plugin mismatch (-want +got):\n%s", diff)
	}
}
