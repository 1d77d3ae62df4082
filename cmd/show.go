package cmd

import (
	"fmt"

	"codexmgr/config/models"
	syncpkg "codexmgr/config/sync"
	"codexmgr/internal/utils"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Show a profile",
	Long:  "Show a profile and its providers. The profile may be given by id or name. API keys are masked.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}
		p, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}

		defaultProvider := p.ModelProvider
		if _, ok := p.Providers[p.ModelProvider]; !ok {
			defaultProvider += " " + warnStyle.Render("(not configured)")
		}
		r := syncpkg.Resolve(p)

		fmt.Fprintf(out, "%s\n", headingStyle.Render(p.Name))
		fmt.Fprintf(out, "  ID:               %s\n", p.ID)
		if p.Description != "" {
			fmt.Fprintf(out, "  Description:      %s\n", p.Description)
		}
		fmt.Fprintf(out, "  Created:          %s\n", orDash(p.CreatedAt))
		fmt.Fprintf(out, "  Updated:          %s\n", orDash(p.UpdatedAt))
		fmt.Fprintf(out, "  Default provider: %s\n", orDash(defaultProvider))
		fmt.Fprintf(out, "  Model:            %s\n", orDash(p.Model))
		fmt.Fprintf(out, "  Reasoning effort: %s\n", orDash(models.Deref(p.ModelReasoningEffort)))
		fmt.Fprintf(out, "  API key:          %s\n", utils.MaskOptional(p.APIKey))
		fmt.Fprintf(out, "  Applies as:       %s / %s\n", orDash(r.ProviderID), orDash(r.Model))
		fmt.Fprintln(out, "Providers:")
		printProviders(out, p.Providers, p.ModelProvider)
		return nil
	},
}
