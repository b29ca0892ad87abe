// Package protoc invokes the protocol schema compiler. It resolves the
// compiler binary (honoring an explicit override), translates a generation
// policy into plugin options, and runs one synchronous compilation of a
// fixed set of schema files into a staging directory that is swapped into
// the output directory only on full success.
package protoc
