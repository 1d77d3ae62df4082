package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Undo the last switch",
	Long: `Restore config.toml and auth.json from the backups taken by the last switch.

The active profile marker is not changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		restored, err := configManager.RestoreLive()
		if err != nil {
			return err
		}
		for _, path := range restored {
			fmt.Fprintln(out, successStyle.Render("✓ Restored "+path))
		}
		return nil
	},
}
