package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse_DefaultManifestPath(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}
	appConfig, shouldExit, err := Parse([]string{}, outW)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if shouldExit {
		t.Fatal("a plain run must not exit early")
	}
	if appConfig.ManifestPath != "protogen.hcl" {
		t.Errorf("expected the default manifest path, got %q", appConfig.ManifestPath)
	}
}

func TestParse_PositionalManifestPath(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}
	appConfig, _, err := Parse([]string{"build/protogen.hcl"}, outW)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if appConfig.ManifestPath != "build/protogen.hcl" {
		t.Errorf("positional manifest path lost: %q", appConfig.ManifestPath)
	}
}

func TestParse_ShorthandFlag(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}
	appConfig, _, err := Parse([]string{"-m", "alt.hcl"}, outW)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if appConfig.ManifestPath != "alt.hcl" {
		t.Errorf("shorthand manifest flag lost: %q", appConfig.ManifestPath)
	}
}

func TestParse_SkipAndCompilerFlags(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}
	appConfig, _, err := Parse([]string{"-skip", "-protoc", "/opt/protoc"}, outW)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if !appConfig.Skip {
		t.Error("the -skip flag was not honored")
	}
	if appConfig.CompilerPath != "/opt/protoc" {
		t.Errorf("the -protoc flag was not honored: %q", appConfig.CompilerPath)
	}
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}
	_, _, err := Parse([]string{"-log-level", "chatty"}, outW)
	exitErr, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("expected an ExitError, got %v", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("expected exit code 2, got %d", exitErr.Code)
	}
	if !strings.Contains(exitErr.Message, "invalid log-level") {
		t.Errorf("unexpected message %q", exitErr.Message)
	}
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	outW := &bytes.Buffer{}
	appConfig, shouldExit, err := Parse([]string{"-h"}, outW)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if !shouldExit {
		t.Fatal("help must request a clean exit")
	}
	if appConfig != nil {
		t.Error("no config should be returned alongside help")
	}
	if !strings.Contains(outW.String(), "Usage:") {
		t.Errorf("help text missing, got:\n%s", outW.String())
	}
}
