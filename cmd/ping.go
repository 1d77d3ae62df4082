package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"codexmgr/config/models"
	syncpkg "codexmgr/config/sync"
	"codexmgr/internal/errs"
	"codexmgr/internal/probe"
	"codexmgr/internal/utils"

	"github.com/spf13/cobra"
)

var (
	pingTimeout time.Duration
	pingJSON    bool
)

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().DurationVarP(&pingTimeout, "timeout", "t", 10*time.Second, "Request timeout")
	pingCmd.Flags().BoolVar(&pingJSON, "json", false, "Print the result as JSON")
}

var pingCmd = &cobra.Command{
	Use:   "ping <profile> [provider-id]",
	Short: "Check that a provider endpoint answers",
	Long: `List the models of a provider endpoint with the credentials the profile would
give Codex. Without a provider id the provider the profile applies as is used.

The key is taken from the provider, then the profile, then the environment
variable named by the provider's env_key.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}

		providerID, provider, apiKey, model, err := pingTarget(profile, args[1:])
		if err != nil {
			return err
		}

		result, err := probe.New(pingTimeout).Run(cmd.Context(), provider, apiKey, model)
		if err != nil {
			return errs.InvalidArgument("provider %s: %v", providerID, err)
		}

		out := cmd.OutOrStdout()
		if pingJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			fmt.Fprintf(out, "Provider: %s (%s)\n", providerID, orDash(utils.ExtractHost(result.URL)))
			fmt.Fprintf(out, "URL:      %s\n", result.URL)
			if result.StatusCode != 0 {
				fmt.Fprintf(out, "Status:   %d (%s)\n", result.StatusCode, result.Duration.Round(time.Millisecond))
			}
			if result.Success() {
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %s %d model(s) listed", result.Message, len(result.Models))))
				if model != "" && !result.ModelListed {
					fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("Model %s is not in the endpoint's model list", model)))
				}
			} else {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("✗ %s (%s)", result.Message, result.Category)))
			}
		}

		if !result.Success() {
			return fmt.Errorf("ping failed: %s", result.Category)
		}
		return nil
	},
}

// pingTarget picks the provider, key and model to probe
func pingTarget(profile *models.Profile, args []string) (string, models.ProviderConfig, string, string, error) {
	resolution := syncpkg.Resolve(profile)
	if len(args) == 0 {
		if resolution.Provider == nil {
			return "", models.ProviderConfig{}, "", "", errs.InvalidArgument("profile %s has no providers to ping", profile.Name)
		}
		return resolution.ProviderID, *resolution.Provider, pingKey(*resolution.Provider, resolution.APIKey), resolution.Model, nil
	}

	providerID := args[0]
	provider, ok := profile.Providers[providerID]
	if !ok {
		ids := make([]string, 0, len(profile.Providers))
		for id := range profile.Providers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return "", models.ProviderConfig{}, "", "", errs.NotFound("provider %s in profile %s (have %v)", providerID, profile.Name, ids)
	}
	key := provider.APIKey
	if key == nil {
		key = profile.APIKey
	}
	model := profile.Model
	if provider.Model != nil && *provider.Model != "" {
		model = *provider.Model
	}
	return providerID, provider, pingKey(provider, key), model, nil
}

func pingKey(provider models.ProviderConfig, key *string) string {
	if k := models.Deref(key); k != "" {
		return k
	}
	if provider.EnvKey != "" {
		return os.Getenv(provider.EnvKey)
	}
	return ""
}
