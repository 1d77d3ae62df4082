package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"codexmgr/config/models"
	"codexmgr/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmpty(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles available")
}

func TestListMarksActive(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())
	other := workProfile()
	other.Name = "Other"
	env.saveProfile(t, other)
	require.NoError(t, env.manager(t).SetActiveID(work.ID))

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* Work ["+work.ID+"] (provider: p1, model: m-1, key: sk-w****cret)")
	assert.Contains(t, out, "  Other ["+other.ID+"]")
	assert.Contains(t, out, "* indicates the active profile")
	assert.NotContains(t, out, "sk-work-secret")
}

func TestListDanglingActive(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, workProfile())
	require.NoError(t, env.manager(t).SetActiveID("ghost"))

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, `Active profile "ghost" no longer exists`)
}

func TestShow(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())

	out, err := execute(t, "show", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "ID:               "+work.ID)
	assert.Contains(t, out, "Applies as:       p1 / m-1")
	assert.Contains(t, out, "p1 [default]")
	assert.Contains(t, out, "Base URL:         https://p1.example/v1")
	assert.NotContains(t, out, "sk-work-secret")

	// Lookup by id works too
	_, err = execute(t, "show", work.ID)
	require.NoError(t, err)

	_, err = execute(t, "show", "nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestShowAmbiguousName(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, workProfile())
	env.saveProfile(t, workProfile())

	_, err := execute(t, "show", "Work")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestAddWithFlags(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "add", "Router", "--preset", "openrouter", "--api-key", "sk-or-1", "--effort", "high",
		"--header", "HTTP-Referer=https://example.com", "--description", "via openrouter")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Added profile: Router")

	profiles, err := env.manager(t).List()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "via openrouter", p.Description)
	assert.Equal(t, "openrouter", p.ModelProvider)
	assert.Equal(t, "openai/gpt-5", p.Model)

	provider := p.Providers["openrouter"]
	assert.Equal(t, "https://openrouter.ai/api/v1", provider.BaseURL)
	assert.Equal(t, "chat", provider.WireAPI)
	assert.Equal(t, models.StringPtr("sk-or-1"), provider.APIKey)
	assert.Equal(t, models.StringPtr("high"), provider.ModelReasoningEffort)
	assert.Equal(t, map[string]string{"HTTP-Referer": "https://example.com"}, provider.HTTPHeaders)
}

func TestAddDefaultsToCustomProvider(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "add", "Plain", "--base-url", "https://proxy.example/v1", "--provider-id", "proxy")
	require.NoError(t, err)

	profiles, err := env.manager(t).List()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "proxy", profiles[0].ModelProvider)
	assert.Equal(t, "Custom Provider", profiles[0].Providers["proxy"].Name)
	assert.Equal(t, "https://proxy.example/v1", profiles[0].Providers["proxy"].BaseURL)
}

func TestAddActivate(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "add", "Local", "--preset", "ollama", "--activate")
	require.NoError(t, err)

	doc := env.liveConfig(t)
	assert.Equal(t, "ollama", doc["model_provider"])
	assert.Equal(t, "gpt-oss:20b", doc["model"])
}

func TestAddRejectsBadInput(t *testing.T) {
	setupEnv(t)

	tests := [][]string{
		{"add", "x", "--preset", "nope"},
		{"add", "x", "--base-url", "ftp://host"},
		{"add", "x", "--effort", "extreme"},
		{"add", "x", "--wire-api", "grpc"},
		{"add", "x", "--provider-id", "a.b"},
		{"add", "x", "--header", "novalue"},
		{"add", " "},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, "args %v", args)
	}
}

func TestProviderSetAndRemove(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())

	out, err := execute(t, "provider", "set", "Work", "openai", "--api-key", "sk-oa", "--default")
	require.NoError(t, err)
	assert.Contains(t, out, "Added provider openai in Work")

	p, err := env.manager(t).Get(work.ID)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.ModelProvider)
	assert.Equal(t, "https://api.openai.com/v1", p.Providers["openai"].BaseURL)
	assert.Equal(t, models.StringPtr("sk-oa"), p.Providers["openai"].APIKey)

	out, err = execute(t, "provider", "set", "Work", "p1", "--model", "m-2", "--query", "api-version=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated provider p1 in Work")

	p, err = env.manager(t).Get(work.ID)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.ModelProvider)
	assert.Equal(t, models.StringPtr("m-2"), p.Providers["p1"].Model)
	assert.Equal(t, map[string]string{"api-version": "1"}, p.Providers["p1"].QueryParams)
	assert.Equal(t, "https://p1.example/v1", p.Providers["p1"].BaseURL)

	out, err = execute(t, "provider", "remove", "Work", "openai")
	require.NoError(t, err)
	assert.Contains(t, out, "Default provider openai is no longer configured; switching will use p1")

	_, err = execute(t, "provider", "remove", "Work", "openai")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRemove(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())
	require.NoError(t, env.manager(t).SetActiveID(work.ID))

	out, err := execute(t, "remove", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile removed: Work")

	activeID, err := env.manager(t).GetActiveID()
	require.NoError(t, err)
	assert.Empty(t, activeID)

	_, err = execute(t, "remove", "Work")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDuplicate(t *testing.T) {
	env := setupEnv(t)
	env.saveProfile(t, workProfile())

	out, err := execute(t, "duplicate", "Work", "Work 2")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied Work to Work 2")

	profiles, err := env.manager(t).List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, profiles[0].Providers, profiles[1].Providers)
	assert.NotEqual(t, profiles[0].ID, profiles[1].ID)
}

func TestInit(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created profile: Default")

	out, err = execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exist")

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)

	profiles, err := env.manager(t).List()
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestExportImport(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())

	out, err := execute(t, "export", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "sk-work-secret")
	assert.Contains(t, out, "modelProvider: p1")

	redacted, err := execute(t, "export", "Work", "--redact")
	require.NoError(t, err)
	assert.NotContains(t, redacted, "sk-work-secret")

	file := filepath.Join(t.TempDir(), "work.yaml")
	_, err = execute(t, "export", "Work", "-o", file)
	require.NoError(t, err)
	_, err = os.Stat(file)
	require.NoError(t, err)

	out, err = execute(t, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported profile: Work")

	profiles, err := env.manager(t).List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.NotEqual(t, profiles[0].ID, profiles[1].ID)

	// --keep-id replaces the original record
	_, err = executeWithInput(t, redacted, "import", "-", "--keep-id")
	require.NoError(t, err)
	p, err := env.manager(t).Get(work.ID)
	require.NoError(t, err)
	assert.Nil(t, p.Providers["p1"].APIKey)
	assert.Equal(t, work.CreatedAt, p.CreatedAt)

	_, err = executeWithInput(t, "not: [yaml", "import", "-")
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestEdit(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())

	out, err := execute(t, "edit", "Work", "--name", "Work EU", "--effort", "high", "-d", "eu tenant")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated profile: Work EU")
	assert.NotContains(t, out, "Live Codex configuration updated")

	got, err := env.manager(t).Get(work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work EU", got.Name)
	assert.Equal(t, "eu tenant", got.Description)
	assert.Equal(t, "high", models.Deref(got.ModelReasoningEffort))

	_, err = execute(t, "edit", work.ID, "--effort", "")
	require.NoError(t, err)
	got, err = env.manager(t).Get(work.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ModelReasoningEffort)
}

func TestEditActiveReapplies(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())
	_, err := execute(t, "switch", work.ID)
	require.NoError(t, err)

	out, err := execute(t, "edit", work.ID, "--effort", "low")
	require.NoError(t, err)
	assert.Contains(t, out, "Live Codex configuration updated")
	assert.Equal(t, "low", env.liveConfig(t)["model_reasoning_effort"])
}

func TestEditRejectsBadInput(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())

	_, err := execute(t, "edit", work.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = execute(t, "edit", work.ID, "--effort", "extreme")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = execute(t, "edit", work.ID, "--default-provider", "nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestEditWithoutFlagsAfterEarlierEdits(t *testing.T) {
	env := setupEnv(t)
	work := env.saveProfile(t, workProfile())

	for _, args := range [][]string{
		{"edit", work.ID, "--name", "Renamed"},
		{"edit", work.ID, "--description", "d", "--model", "m-2", "--api-key", "sk-2"},
		{"edit", work.ID, "--effort", "low", "--default-provider", "p1"},
	} {
		_, err := execute(t, args...)
		require.NoError(t, err, "args %v", args)
	}

	_, err := execute(t, "edit", work.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = execute(t, "edit", work.ID, "-v")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	got, err := env.manager(t).Get(work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "m-2", got.Model)
}
