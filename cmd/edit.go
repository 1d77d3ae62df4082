package cmd

import (
	"fmt"
	"strings"

	"codexmgr/config/validation"
	"codexmgr/internal/errs"

	"github.com/spf13/cobra"
)

var (
	editName          string
	editDescription   string
	editModel         string
	editEffort        string
	editAPIKey        string
	editModelProvider string
)

var editFlagNames = []string{"name", "description", "model", "effort", "api-key", "default-provider"}

func init() {
	rootCmd.AddCommand(editCmd)
	flags := editCmd.Flags()
	flags.StringVarP(&editName, "name", "n", "", "Rename the profile")
	flags.StringVarP(&editDescription, "description", "d", "", "Profile description")
	flags.StringVarP(&editModel, "model", "m", "", "Fallback model when the provider sets none")
	flags.StringVarP(&editEffort, "effort", "e", "", "Fallback reasoning effort (empty clears)")
	flags.StringVarP(&editAPIKey, "api-key", "k", "", "Fallback API key (empty clears)")
	flags.StringVar(&editModelProvider, "default-provider", "", "Provider id to apply as")
}

var editCmd = &cobra.Command{
	Use:   "edit <profile>",
	Short: "Edit profile-level settings",
	Long: `Change a profile's name, description, default provider or its fallback
model, effort and API key. Provider entries are edited with 'codexmgr provider set'.

If the profile is active the live Codex files are updated as well.

Examples:
  codexmgr edit work --name "Work (EU)"
  codexmgr edit work --default-provider azure --effort high`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		flags := cmd.Flags()
		changed := false
		for _, name := range editFlagNames {
			changed = changed || flags.Changed(name)
		}
		if !changed {
			return errs.InvalidArgument("nothing to change, pass at least one of --%s", strings.Join(editFlagNames, ", --"))
		}

		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}

		iv := validation.NewInputValidator()
		if flags.Changed("name") {
			if err := iv.ValidateName(editName); err != nil {
				return errs.InvalidArgument("--name: %v", err)
			}
			profile.Name = editName
		}
		if flags.Changed("description") {
			profile.Description = editDescription
		}
		if flags.Changed("model") {
			profile.Model = editModel
		}
		if flags.Changed("effort") {
			if err := iv.ValidateEffort(editEffort); err != nil {
				return errs.InvalidArgument("--effort: %v", err)
			}
			profile.ModelReasoningEffort = optional(editEffort)
		}
		if flags.Changed("api-key") {
			profile.APIKey = optional(editAPIKey)
		}
		if flags.Changed("default-provider") {
			if _, ok := profile.Providers[editModelProvider]; !ok {
				return errs.NotFound("provider %s in profile %s", editModelProvider, profile.Name)
			}
			profile.ModelProvider = editModelProvider
		}

		if err := configManager.Save(profile); err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Updated profile: %s (%s)", profile.Name, profile.ID)))

		activeID, err := configManager.GetActiveID()
		if err != nil || activeID != profile.ID {
			return nil
		}
		if err := configManager.Apply(profile.ID); err != nil {
			return fmt.Errorf("profile saved but the live files were not updated: %w", err)
		}
		fmt.Fprintln(out, dimStyle.Render("Live Codex configuration updated"))
		return nil
	},
}
