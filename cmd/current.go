package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codexmgr/config/models"
	"codexmgr/internal/utils"

	"github.com/spf13/cobra"
)

var (
	currentWatch bool
	currentJSON  bool
)

func init() {
	rootCmd.AddCommand(currentCmd)
	currentCmd.Flags().BoolVarP(&currentWatch, "watch", "w", false, "Keep running and print the configuration whenever it changes")
	currentCmd.Flags().BoolVar(&currentJSON, "json", false, "Print as JSON (API keys are masked)")
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the live Codex configuration",
	Long:  "Read config.toml and auth.json from the Codex home and show them in profile form.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		configManager, err := newManager()
		if err != nil {
			return err
		}

		if !currentWatch {
			current, err := configManager.ReadCurrent()
			if err != nil {
				return err
			}
			return printCurrent(out, current)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return configManager.WatchLive(ctx, func(current models.CurrentConfig, err error) {
			if err != nil {
				fmt.Fprintln(out, warnStyle.Render("Error: "+err.Error()))
				return
			}
			if err := printCurrent(out, current); err != nil {
				fmt.Fprintln(out, warnStyle.Render("Error: "+err.Error()))
			}
			if !currentJSON {
				fmt.Fprintln(out, dimStyle.Render("-- watching for changes, Ctrl+C to stop --"))
			}
		})
	},
}

func printCurrent(w io.Writer, current models.CurrentConfig) error {
	masked := maskCurrent(current)
	if currentJSON {
		data, err := json.MarshalIndent(masked, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "Provider:         %s\n", orDash(current.ModelProvider))
	fmt.Fprintf(w, "Model:            %s\n", orDash(current.Model))
	fmt.Fprintf(w, "Reasoning effort: %s\n", orDash(models.Deref(current.ModelReasoningEffort)))
	fmt.Fprintf(w, "API key:          %s\n", utils.MaskOptional(current.APIKey))
	fmt.Fprintln(w, "Providers:")
	printProviders(w, current.Providers, current.ModelProvider)
	return nil
}

// maskCurrent returns a copy of current with every API key masked
func maskCurrent(current models.CurrentConfig) models.CurrentConfig {
	mask := func(key *string) *string {
		if key == nil {
			return nil
		}
		return models.StringPtr(utils.MaskOptional(key))
	}
	masked := current
	masked.APIKey = mask(current.APIKey)
	masked.Providers = make(map[string]models.ProviderConfig, len(current.Providers))
	for id, p := range current.Providers {
		p.APIKey = mask(p.APIKey)
		masked.Providers[id] = p
	}
	return masked
}
