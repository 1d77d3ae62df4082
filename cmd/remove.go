package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <profile>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile",
	Long:    "Remove a profile by id or name. Removing the active profile clears the active marker; the live Codex files are left as they are.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}
		if err := configManager.Delete(profile.ID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile removed: %s (%s)\n", profile.Name, profile.ID)
		return nil
	},
}
