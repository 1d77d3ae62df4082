package cmd

import (
	"fmt"

	syncpkg "codexmgr/config/sync"
	"codexmgr/internal/utils"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all profiles",
	Long:    "List all saved profiles sorted by name. The active profile is marked with *.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		profiles, err := configManager.List()
		if err != nil {
			return err
		}

		if len(profiles) == 0 {
			fmt.Fprintln(out, "No profiles available. Run 'codexmgr init' or 'codexmgr add' to create one.")
			return nil
		}

		activeID, _ := configManager.GetActiveID()

		fmt.Fprintln(out, "Available profiles:")
		activeFound := false
		for i := range profiles {
			p := &profiles[i]
			r := syncpkg.Resolve(p)

			activeMarker := " "
			if p.ID == activeID {
				activeMarker = "*"
				activeFound = true
			}

			fmt.Fprintf(out, "%s %s %s (provider: %s, model: %s, key: %s)\n",
				activeMarker, headingStyle.Render(p.Name), dimStyle.Render("["+p.ID+"]"),
				orDash(r.ProviderID), orDash(r.Model), utils.MaskOptional(r.APIKey))
		}

		if activeFound {
			fmt.Fprintf(out, "\n* indicates the active profile\n")
		} else if activeID != "" {
			fmt.Fprintf(out, "\n%s\n", warnStyle.Render(fmt.Sprintf("Active profile %q no longer exists", activeID)))
		}
		return nil
	},
}
