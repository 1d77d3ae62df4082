package cmd

import (
	"errors"
	"fmt"

	"codexmgr/internal/errs"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(activeCmd)
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Print the active profile",
	Long:  "Print the id and name of the profile last switched to.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		activeID, err := configManager.GetActiveID()
		if err != nil {
			return err
		}
		if activeID == "" {
			fmt.Fprintln(out, "No active profile")
			return nil
		}

		profile, err := configManager.Get(activeID)
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrInvalidArgument) {
			fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("Active profile %q no longer exists", activeID)))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", profile.Name, profile.ID)
		return nil
	},
}
