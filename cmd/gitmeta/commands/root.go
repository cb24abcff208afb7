// Package commands implements the CLI commands for gitmeta.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/gitmeta/internal/logger"
	"github.com/marmos91/gitmeta/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
	verbose bool

	// cfg is the effective configuration, loaded before any command runs.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gitmeta",
	Short: "gitmeta - preserve file metadata across git checkouts",
	Long: `gitmeta preserves filesystem metadata (mode, mtime, atime) for files
tracked by git, which discards it on checkout. It runs as pre-commit and
post-checkout hook code and keeps the metadata in a SQLite file (.gmeta)
committed alongside the files it describes.

Use "gitmeta [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		if verbose {
			cfg.Logging.Level = "DEBUG"
		}

		return logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .gitmeta.yaml or $XDG_CONFIG_HOME/gitmeta/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(preCommitCmd)
	rootCmd.AddCommand(postCheckoutCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
	os.Exit(1)
}
