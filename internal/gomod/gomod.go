// Package gomod reads module metadata from go.mod so generator plugins
// can lay generated files out relative to the module root.
package gomod

import (
	"fmt"
	"os"

	"golang.org/x/mod/modfile"
)

// ModulePath parses the go.mod at the given path and returns the declared
// module path.
func ModulePath(goModPath string) (string, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", goModPath, err)
	}
	f, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", goModPath, err)
	}
	if f.Module == nil || f.Module.Mod.Path == "" {
		return "", fmt.Errorf("%s declares no module path", goModPath)
	}
	return f.Module.Mod.Path, nil
}
