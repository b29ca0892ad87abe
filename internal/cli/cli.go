package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/protogen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("protogen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
protogen - compiles protocol schema files into Go bindings before the main build.

Usage:
  protogen [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to the generation manifest (.hcl). Defaults to 'protogen.hcl'.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the generation manifest.")
	mFlag := flagSet.String("m", "", "Path to the generation manifest (shorthand).")
	skipFlag := flagSet.Bool("skip", false, "Skip generation for this build and keep existing bindings.")
	protocFlag := flagSet.String("protoc", "", "Path to the schema compiler binary; overrides PROTOC_PATH and the manifest.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *manifestFlag != "" {
		path = *manifestFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		path = "protogen.hcl"
	}
	slog.Debug("Manifest path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Skip:         *skipFlag,
		CompilerPath: *protocFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
