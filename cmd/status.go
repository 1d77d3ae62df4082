package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where codexmgr and Codex keep their files",
	Long:  "Show the profile store, the live Codex files and whether they exist, and the active profile.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		p := configManager.Paths()
		status := configManager.Status()

		exists := func(ok bool) string {
			if ok {
				return successStyle.Render("present")
			}
			return warnStyle.Render("missing")
		}

		fmt.Fprintf(out, "Profile store: %s\n", p.Root)
		fmt.Fprintf(out, "Codex home:    %s\n", p.CodexHome)
		fmt.Fprintf(out, "config.toml:   %s (%s)\n", status.ConfigPath, exists(status.ConfigExists))
		fmt.Fprintf(out, "auth.json:     %s (%s)\n", status.AuthPath, exists(status.AuthExists))

		activeID, err := configManager.GetActiveID()
		if err != nil {
			return err
		}
		if activeID == "" {
			fmt.Fprintln(out, "Active:        (none)")
			return nil
		}
		if profile, err := configManager.Get(activeID); err == nil {
			fmt.Fprintf(out, "Active:        %s (%s)\n", profile.Name, profile.ID)
		} else {
			fmt.Fprintf(out, "Active:        %s %s\n", activeID, warnStyle.Render("(missing)"))
		}
		return nil
	},
}
