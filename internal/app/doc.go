// Package app wires the generation step together: it loads the manifest,
// applies environment and CLI overrides, plans the step (skip or run),
// and drives the schema compiler synchronously. The host build blocks on
// Run until generation finishes or fails.
package app
