package protoc

import (
	"fmt"
	"os/exec"
)

// compilerName is the binary searched for when no override is configured.
const compilerName = "protoc"

// LookPathFunc is the capability used to search the toolchain PATH for the
// compiler. It matches the signature of exec.LookPath and exists so that
// resolution is unit-testable without a real binary on PATH.
type LookPathFunc func(file string) (string, error)

// ResolveCompiler returns the compiler binary to invoke. An explicit
// override is returned verbatim, without an existence check: a bogus
// override surfaces as a start-up failure of the compiler process itself,
// which keeps resolution free of filesystem races. With no override the
// standard PATH search decides.
func ResolveCompiler(override string, lookPath LookPathFunc) (string, error) {
	if override != "" {
		return override, nil
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(compilerName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
	}
	return path, nil
}
