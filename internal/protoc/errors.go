package protoc

import (
	"errors"
	"fmt"
)

// ErrCompilerNotFound indicates that neither the configured override nor a
// PATH search produced a usable compiler binary.
var ErrCompilerNotFound = errors.New("schema compiler not found: install protoc or set PROTOC_PATH")

// SchemaError is returned when the compiler itself rejects the input
// schemas. Diagnostics holds the compiler's combined output verbatim so
// that file/line/column information reaches the user unmodified.
type SchemaError struct {
	Diagnostics string
	Err         error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema compilation failed: %v\n%s", e.Err, e.Diagnostics)
}

// Unwrap exposes the underlying process error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// OutputError is returned when generated files cannot be staged or moved
// into the output directory.
type OutputError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("output %s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying filesystem error.
func (e *OutputError) Unwrap() error {
	return e.Err
}
