// Package config defines the format-agnostic configuration model for the
// generation step, along with the Loader interface for reading it and the
// process-environment overrides that apply on top of it.
//
// The config.Manifest is the single source of truth for the app package's
// step planning. Concrete loaders, such as for HCL, live in separate
// packages.
package config
