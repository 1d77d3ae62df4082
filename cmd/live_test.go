package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codexmgr/config/models"
	"codexmgr/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCodexFiles(t *testing.T, env testEnv, config, auth string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(env.codex, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.codex, "config.toml"), []byte(config), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(env.codex, "auth.json"), []byte(auth), 0600))
}

func TestSwitch(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())
	writeCodexFiles(t, env, "approval_policy = \"on-request\"\n", `{"tokens":{"refresh":"r"}}`)

	out, err := execute(t, "switch", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Switched to Work")
	assert.Contains(t, out, "Provider: p1")
	assert.Contains(t, out, "Model:    m-1")

	doc := env.liveConfig(t)
	assert.Equal(t, "on-request", doc["approval_policy"])
	assert.Equal(t, "p1", doc["model_provider"])
	assert.Equal(t, "m-1", doc["model"])

	auth := env.liveAuth(t)
	assert.Equal(t, "sk-work-secret", auth["OPENAI_API_KEY"])
	assert.Equal(t, map[string]any{"refresh": "r"}, auth["tokens"])

	activeID, err := env.manager(t).GetActiveID()
	require.NoError(t, err)
	assert.Equal(t, work.ID, activeID)
}

func TestSwitchWarnings(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, &models.Profile{Name: "Bare", ModelProvider: "openai", Model: "gpt-x"})

	out, err := execute(t, "switch", "Bare")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider openai is not defined in this profile")
	assert.Contains(t, out, "No API key set")
	assert.NotContains(t, env.liveConfig(t), "model_providers")
}

func TestSwitchMissingProfile(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "switch", "ghost")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSwitchMalformedConfig(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, workProfile())
	writeCodexFiles(t, env, "model = ", "{}")

	_, err := execute(t, "switch", "Work")
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestActive(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "active")
	require.NoError(t, err)
	assert.Contains(t, out, "No active profile")

	work := env.saveProfile(t, workProfile())
	_, err = execute(t, "switch", "Work")
	require.NoError(t, err)
	out, err = execute(t, "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Work ("+work.ID+")")

	require.NoError(t, env.manager(t).SetActiveID("ghost"))
	out, err = execute(t, "active")
	require.NoError(t, err)
	assert.Contains(t, out, `Active profile "ghost" no longer exists`)
}

func TestStatus(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile store: "+env.store)
	assert.Contains(t, out, "Codex home:    "+env.codex)
	assert.Contains(t, out, "(missing)")
	assert.Contains(t, out, "Active:        (none)")

	env.saveProfile(t, workProfile())
	_, err = execute(t, "switch", "Work")
	require.NoError(t, err)

	out, err = execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(env.codex, "config.toml")+" (present)")
	assert.Contains(t, out, filepath.Join(env.codex, "auth.json")+" (present)")
	assert.Contains(t, out, "Active:        Work")
}

func TestCurrent(t *testing.T) {
	env := setupEnv(t)
	writeCodexFiles(t, env, `
model_provider = "p1"
model = "m-1"

[model_providers.p1]
name = "P1"
base_url = "https://p1.example/v1"
`, `{"OPENAI_API_KEY":"sk-live-secret"}`)

	out, err := execute(t, "current")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider:         p1")
	assert.Contains(t, out, "Model:            m-1")
	assert.Contains(t, out, "API key:          sk-l****cret")
	assert.NotContains(t, out, "sk-live-secret")

	out, err = execute(t, "current", "--json")
	require.NoError(t, err)
	var current models.CurrentConfig
	require.NoError(t, json.Unmarshal([]byte(out), &current))
	assert.Equal(t, "p1", current.ModelProvider)
	assert.Equal(t, models.StringPtr("sk-l****cret"), current.APIKey)
	assert.Equal(t, models.StringPtr("sk-l****cret"), current.Providers["p1"].APIKey)
}

func TestRestore(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, workProfile())

	_, err := execute(t, "restore")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	writeCodexFiles(t, env, "model = \"mine\"\n", `{"OPENAI_API_KEY":"sk-mine"}`)
	_, err = execute(t, "switch", "Work")
	require.NoError(t, err)
	assert.Equal(t, "m-1", env.liveConfig(t)["model"])

	out, err := execute(t, "restore")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Restored")
	assert.Equal(t, "mine", env.liveConfig(t)["model"])
	assert.Equal(t, "sk-mine", env.liveAuth(t)["OPENAI_API_KEY"])
}

func TestNoBackupFlag(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, workProfile())
	writeCodexFiles(t, env, "model = \"mine\"\n", "{}")

	_, err := execute(t, "--no-backup", "switch", "Work")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(env.store, "backups"))
	assert.True(t, os.IsNotExist(err))
}
