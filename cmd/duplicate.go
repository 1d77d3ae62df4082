package cmd

import (
	"fmt"

	"codexmgr/config/validation"
	"codexmgr/internal/errs"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(duplicateCmd)
}

var duplicateCmd = &cobra.Command{
	Use:     "duplicate <profile> <new-name>",
	Aliases: []string{"cp"},
	Short:   "Copy a profile under a new name",
	Long:    "Copy a profile, including its providers and keys, under a new id and name.",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.NewInputValidator().ValidateName(args[1]); err != nil {
			return errs.InvalidArgument("%v", err)
		}

		configManager, err := newManager()
		if err != nil {
			return err
		}
		source, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}
		profile, err := configManager.Duplicate(source.ID, args[1])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Copied %s to %s (%s)", source.Name, profile.Name, profile.ID)))
		return nil
	},
}
