package commands

import (
	"io"
	"log/slog"

	"github.com/condatools/buildmatrix/internal/config"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// current is populated by the root command before a subcommand runs.
var current *CommandContext

// SetContext stores the resolved configuration and logger for subcommands.
func SetContext(cfg *config.Config, logger *slog.Logger) {
	current = &CommandContext{Cfg: cfg, Logger: logger}
}

// Context returns the configuration and logger for the running command,
// falling back to defaults when the root command has not run (tests).
func Context() *CommandContext {
	if current != nil {
		return current
	}
	return &CommandContext{
		Cfg: &config.Config{
			RecipesDir:        config.DefaultRecipesDir,
			Interpreter:       config.DefaultInterpreter,
			Numerics:          config.DefaultNumerics,
			MaxNMajorVersions: config.DefaultMaxNMajorVersions,
			MaxNMinorVersions: config.DefaultMaxNMinorVersions,
			Output:            config.DefaultOutput,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
