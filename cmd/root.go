package cmd

import (
	"codexmgr/internal/logging"

	"github.com/spf13/cobra"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var (
	verbose  bool
	noBackup bool
)

var rootCmd = &cobra.Command{
	Use:   "codexmgr",
	Short: "Codex CLI profile manager",
	Long: `A command line tool for managing named Codex CLI configuration profiles.

Each profile bundles one or more model providers with a default provider,
model, reasoning effort and API key. Switching to a profile rewrites the
provider-related parts of ~/.codex/config.toml and ~/.codex/auth.json and
leaves everything else in those files alone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noBackup, "no-backup", false, "Do not back up the live Codex files before rewriting them")
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`codexmgr {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	return rootCmd.Execute()
}
