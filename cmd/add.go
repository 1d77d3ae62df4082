package cmd

import (
	"fmt"

	"codexmgr/config/models"
	"codexmgr/config/validation"
	"codexmgr/internal/errs"
	"codexmgr/internal/providers"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	addProvider    providerFlags
	addProviderID  string
	addDescription string
	addActivate    bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	addProvider.register(addCmd)
	addCmd.Flags().StringVar(&addProviderID, "provider-id", "", "Provider id used as the model_providers key (defaults to the preset id)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Profile description")
	addCmd.Flags().BoolVar(&addActivate, "activate", false, "Switch to the new profile after creating it")
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new profile",
	Long: `Add a new profile with a single provider.

Usage 1: interactive form (recommended)
  codexmgr add

Usage 2: command line flags
  codexmgr add work --preset openrouter --model openai/gpt-5 --api-key sk-xxx
  codexmgr add local --preset ollama --model gpt-oss:20b --activate`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		iv := validation.NewInputValidator()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			if !isTerminal() {
				return errs.InvalidArgument("interactive input is not available, use: codexmgr add <name> [flags]")
			}
			if err := runAddForm(cmd, &name); err != nil {
				return err
			}
		}
		if err := iv.ValidateName(name); err != nil {
			return errs.InvalidArgument("%v", err)
		}

		providerID := addProviderID
		if providerID == "" {
			providerID = addProvider.preset
		}
		if providerID == "" {
			providerID = providers.Custom
		}
		if err := iv.ValidateProviderID(providerID); err != nil {
			return errs.InvalidArgument("%v", err)
		}

		provider, err := addProvider.template(providerID)
		if err != nil {
			return err
		}
		if err := addProvider.apply(cmd, &provider); err != nil {
			return err
		}

		profile := &models.Profile{
			Name:          name,
			Description:   addDescription,
			Providers:     map[string]models.ProviderConfig{providerID: provider},
			ModelProvider: providerID,
			Model:         models.Deref(provider.Model),
		}

		configManager, err := newManager()
		if err != nil {
			return err
		}
		if err := configManager.Save(profile); err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Added profile: %s (%s)", profile.Name, profile.ID)))

		if addActivate {
			if err := configManager.Apply(profile.ID); err != nil {
				return err
			}
			fmt.Fprintln(out, successStyle.Render("✓ Switched to "+profile.Name))
		}
		return nil
	},
}

// runAddForm collects the profile name and provider settings interactively.
// Collected values are written back through the command flags so they are
// applied like flag input.
func runAddForm(cmd *cobra.Command, name *string) error {
	iv := validation.NewInputValidator()

	presetID := addProvider.preset
	if presetID == "" {
		presetID = providers.Custom
	}
	var presetOptions []huh.Option[string]
	for _, id := range providers.List() {
		preset, err := providers.Get(id)
		if err != nil {
			continue
		}
		presetOptions = append(presetOptions, huh.NewOption(preset.DisplayName(), id))
	}

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Profile name").
			Value(name).
			Validate(iv.ValidateName),
		huh.NewSelect[string]().
			Title("Provider").
			Options(presetOptions...).
			Value(&presetID),
	)).Run()
	if err != nil {
		return err
	}

	preset, err := providers.Get(presetID)
	if err != nil {
		return err
	}
	baseURL := preset.DefaultBaseURL()
	model := preset.DefaultModel()
	effort := ""
	apiKey := ""

	effortOptions := []huh.Option[string]{huh.NewOption("(Codex default)", "")}
	for _, e := range validation.ReasoningEfforts {
		effortOptions = append(effortOptions, huh.NewOption(e, e))
	}

	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Base URL").
			Value(&baseURL).
			Validate(iv.ValidateURL),
		huh.NewInput().
			Title("Model").
			Value(&model),
		huh.NewSelect[string]().
			Title("Reasoning effort").
			Options(effortOptions...).
			Value(&effort),
		huh.NewInput().
			Title("API key").
			EchoMode(huh.EchoModePassword).
			Value(&apiKey),
	)).Run()
	if err != nil {
		return err
	}

	values := map[string]string{
		"preset":   presetID,
		"base-url": baseURL,
		"model":    model,
		"effort":   effort,
		"api-key":  apiKey,
	}
	for flag, value := range values {
		if err := cmd.Flags().Set(flag, value); err != nil {
			return err
		}
	}
	return nil
}
