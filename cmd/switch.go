package cmd

import (
	"fmt"

	syncpkg "codexmgr/config/sync"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(switchCmd)
}

var switchCmd = &cobra.Command{
	Use:     "switch <profile>",
	Aliases: []string{"use", "apply"},
	Short:   "Switch Codex to a profile",
	Long: `Apply a profile to the live Codex configuration and mark it active.

Only model_provider, model, model_reasoning_effort and [model_providers] in
config.toml and OPENAI_API_KEY in auth.json are rewritten. Both files are
backed up first unless --no-backup is given; 'codexmgr restore' undoes the
last switch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}
		if err := configManager.Apply(profile.ID); err != nil {
			return err
		}

		r := syncpkg.Resolve(profile)
		fmt.Fprintln(out, successStyle.Render("✓ Switched to "+profile.Name))
		fmt.Fprintf(out, "  Provider: %s\n", orDash(r.ProviderID))
		fmt.Fprintf(out, "  Model:    %s\n", orDash(r.Model))
		if r.Provider == nil {
			fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("Provider %s is not defined in this profile; Codex must know it already", orDash(r.ProviderID))))
		}
		if r.APIKey == nil || *r.APIKey == "" {
			fmt.Fprintln(out, warnStyle.Render("No API key set; OPENAI_API_KEY was removed from auth.json"))
		}
		return nil
	},
}
