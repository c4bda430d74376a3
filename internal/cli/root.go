// Package cli provides the command-line interface for buildmatrix.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/condatools/buildmatrix/internal/cli/commands"
	"github.com/condatools/buildmatrix/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "buildmatrix",
		Short: "buildmatrix - Build matrix computation for conda-style recipes",
		Long: `buildmatrix computes the set of build variants ("cases") a package must be
compiled against, given its recipe requirements and a channel snapshot of
available dependency builds.

Interpreter and ABI-sensitive numerics dependencies are paired consistently
rather than expanded as a free cartesian product, and the resulting matrix
can be filtered by extra conditions and reduced to the newest major/minor
versions per dependency.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}

			commands.SetContext(cfg, logger)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./buildmatrix.yaml)")
	rootCmd.PersistentFlags().String("recipes-dir", "", "Directory containing recipes")
	rootCmd.PersistentFlags().Int("max-recipe-depth", 0, "Maximum recipe discovery depth (0 = unlimited)")
	rootCmd.PersistentFlags().String("repodata", "", "Path to the channel snapshot (repodata.json)")
	rootCmd.PersistentFlags().String("interpreter", "", "Interpreter dependency name (default: python)")
	rootCmd.PersistentFlags().String("numerics", "", "ABI-sensitive numerics dependency name (default: numpy)")
	rootCmd.PersistentFlags().StringSlice("conditions", nil, "Extra matrix conditions (e.g. 'python 2.7*')")
	rootCmd.PersistentFlags().Int("max-n-major-versions", config.DefaultMaxNMajorVersions,
		"Keep only the newest N major versions per dependency (0 = unlimited)")
	rootCmd.PersistentFlags().Int("max-n-minor-versions", config.DefaultMaxNMinorVersions,
		"Keep only the newest N minor versions per major version (0 = unlimited)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewMatrixCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
