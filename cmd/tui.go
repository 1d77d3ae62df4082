package cmd

import (
	"codexmgr/internal/tui"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and switch profiles interactively",
	Long:  "Open a terminal UI listing all profiles. Select one to switch Codex to it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configManager, err := newManager()
		if err != nil {
			return err
		}
		return tui.Run(configManager)
	},
}
