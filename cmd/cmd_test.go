package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codexmgr/config"
	"codexmgr/config/codec"
	"codexmgr/config/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store string
	codex string
}

// setupEnv points codexmgr and Codex at fresh temp directories
func setupEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{store: filepath.Join(dir, "store"), codex: filepath.Join(dir, "codex")}
	t.Setenv("CODEXMGR_HOME", env.store)
	t.Setenv("CODEX_HOME", env.codex)
	return env
}

func (e testEnv) manager(t *testing.T) *config.Manager {
	t.Helper()
	m, err := config.NewConfigManager()
	require.NoError(t, err)
	return m
}

func (e testEnv) saveProfile(t *testing.T, p *models.Profile) *models.Profile {
	t.Helper()
	require.NoError(t, e.manager(t).Save(p))
	return p
}

func (e testEnv) liveConfig(t *testing.T) codec.Document {
	t.Helper()
	doc, err := codec.ReadDocument(filepath.Join(e.codex, "config.toml"))
	require.NoError(t, err)
	return doc
}

func (e testEnv) liveAuth(t *testing.T) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.codex, "auth.json"))
	require.NoError(t, err)
	var auth map[string]any
	require.NoError(t, json.Unmarshal(data, &auth))
	return auth
}

// execute runs the root command with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func workProfile() *models.Profile {
	return &models.Profile{
		Name: "Work",
		Providers: map[string]models.ProviderConfig{
			"p1": {
				Name:    "P1",
				BaseURL: "https://p1.example/v1",
				WireAPI: "responses",
				Model:   models.StringPtr("m-1"),
				APIKey:  models.StringPtr("sk-work-secret"),
			},
		},
		ModelProvider: "p1",
	}
}
