// Package hcl implements the config.Loader interface for HCL manifests.
// The manifest's expressions are evaluated against the process
// environment, exposed as the `env` object, so paths and switches can be
// parameterized by the surrounding build orchestration.
package hcl
