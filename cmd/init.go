package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Create the default profile even when profiles already exist")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter profile",
	Long: `Create a profile named "Default" with a single custom provider.

Fill in its base URL and API key with 'codexmgr provider set', then switch to it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		existing, err := configManager.List()
		if err != nil {
			return err
		}
		if len(existing) > 0 && !initForce {
			fmt.Fprintf(out, "%d profile(s) already exist; use --force to create another default profile\n", len(existing))
			return nil
		}

		profile, err := configManager.CreateDefault()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Created profile: %s (%s)", profile.Name, profile.ID)))
		fmt.Fprintf(out, "Next: codexmgr provider set %s %s --base-url <url> --api-key <key>\n", profile.ID, profile.ModelProvider)
		return nil
	},
}
