package cmd

import (
	"fmt"

	syncpkg "codexmgr/config/sync"
	"codexmgr/config/validation"
	"codexmgr/internal/errs"

	"github.com/spf13/cobra"
)

var (
	providerSetFlags   providerFlags
	providerSetDefault bool
)

func init() {
	rootCmd.AddCommand(providerCmd)
	providerCmd.AddCommand(providerSetCmd)
	providerCmd.AddCommand(providerRemoveCmd)

	providerSetFlags.register(providerSetCmd)
	providerSetCmd.Flags().BoolVar(&providerSetDefault, "default", false, "Make this the profile's default provider")
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage the providers of a profile",
	Long:  "Add, update or remove the model providers stored in a profile.",
}

var providerSetCmd = &cobra.Command{
	Use:   "set <profile> <provider-id>",
	Short: "Add or update a provider",
	Long: `Add a provider to a profile, or update the fields of an existing one.

A new provider starts from --preset, from the preset with the same id, or
from the custom template. Only the flags given are changed.

  codexmgr provider set work openrouter --api-key sk-or-xxx --default
  codexmgr provider set work proxy --base-url https://proxy.internal/v1 --header X-Team=core`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		providerID := args[1]

		if err := validation.NewInputValidator().ValidateProviderID(providerID); err != nil {
			return errs.InvalidArgument("%v", err)
		}

		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}

		provider, exists := profile.Providers[providerID]
		if !exists {
			if provider, err = providerSetFlags.template(providerID); err != nil {
				return err
			}
		}
		if err := providerSetFlags.apply(cmd, &provider); err != nil {
			return err
		}
		profile.Providers[providerID] = provider

		if providerSetDefault || profile.ModelProvider == "" {
			profile.ModelProvider = providerID
		}
		if err := configManager.Save(profile); err != nil {
			return err
		}

		verb := "Updated"
		if !exists {
			verb = "Added"
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %s provider %s in %s", verb, providerID, profile.Name)))
		return nil
	},
}

var providerRemoveCmd = &cobra.Command{
	Use:   "remove <profile> <provider-id>",
	Short: "Remove a provider",
	Long: `Remove a provider from a profile.

Removing the default provider leaves the default pointing at a provider that
no longer exists; switching then falls back to the provider with the
smallest id.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		providerID := args[1]

		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}
		if _, ok := profile.Providers[providerID]; !ok {
			return errs.NotFound("provider %q in profile %q", providerID, profile.Name)
		}

		delete(profile.Providers, providerID)
		if err := configManager.Save(profile); err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Removed provider %s from %s", providerID, profile.Name)))

		if profile.ModelProvider == providerID {
			fallback := syncpkg.Resolve(profile).ProviderID
			msg := fmt.Sprintf("Default provider %s is no longer configured", providerID)
			if fallback != providerID {
				msg += fmt.Sprintf("; switching will use %s", fallback)
			}
			fmt.Fprintln(out, warnStyle.Render(msg))
		}
		return nil
	},
}
