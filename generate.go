//go:build generate
// +build generate

// Package main is the central entry point for code generation in this
// repository. Running `go generate -tags generate ./...` recompiles the
// protocol schemas under proto/ into Go bindings under generated/, as
// described by protogen.hcl. Builds that ship with pre-generated,
// checked-in bindings simply skip this step (see the -skip flag and the
// PROTOGEN_SKIP environment variable).
package main

// Regenerate protocol bindings from the schema manifest.
//go:generate go run ./cmd/protogen -manifest protogen.hcl
