package sync

import (
	"testing"

	"codexmgr/config/codec"
	"codexmgr/config/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCurrentDefaults(t *testing.T) {
	current, err := ReadCurrent(codec.Document{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModelProvider, current.ModelProvider)
	assert.Empty(t, current.Model)
	assert.Empty(t, current.Providers)
	assert.Nil(t, current.ModelReasoningEffort)
	assert.Nil(t, current.APIKey)
}

func TestReadCurrentBackfillsActiveProvider(t *testing.T) {
	doc, err := codec.DecodeDocument([]byte(`
model_provider = "p1"
model = "m-1"
model_reasoning_effort = "high"

[model_providers.p1]
name = "One"
base_url = "https://one.example.com/v1"

[model_providers.p2]
name = "Two"
`))
	require.NoError(t, err)

	current, err := ReadCurrent(doc, []byte(`{"OPENAI_API_KEY":"sk-x"}`))
	require.NoError(t, err)

	assert.Equal(t, "p1", current.ModelProvider)
	assert.Equal(t, "m-1", current.Model)
	assert.Equal(t, models.StringPtr("high"), current.ModelReasoningEffort)
	assert.Equal(t, models.StringPtr("sk-x"), current.APIKey)

	p1 := current.Providers["p1"]
	assert.Equal(t, "One", p1.Name)
	assert.Equal(t, models.StringPtr("m-1"), p1.Model)
	assert.Equal(t, models.StringPtr("high"), p1.ModelReasoningEffort)
	assert.Equal(t, models.StringPtr("sk-x"), p1.APIKey)

	p2 := current.Providers["p2"]
	assert.Nil(t, p2.Model)
	assert.Nil(t, p2.APIKey)
}

func TestApplyThenReadRoundTrip(t *testing.T) {
	profile := &models.Profile{
		Providers: map[string]models.ProviderConfig{
			"p1": {
				Name:               "One",
				BaseURL:            "https://one.example.com/v1",
				WireAPI:            "responses",
				RequiresOpenAIAuth: models.BoolPtr(true),
				EnvKey:             "ONE_KEY",
				EnvKeyInstructions: "ask admin",
				HTTPHeaders:        map[string]string{"X-A": "1"},
				QueryParams:        map[string]string{"v": "2"},
				Model:              models.StringPtr("m-1"),
				APIKey:             models.StringPtr("sk-1"),
			},
			"p2": {Name: "Two", WireAPI: "chat"},
		},
		ModelProvider: "p1",
	}
	r := Resolve(profile)
	data, err := codec.EncodeDocument(MergeConfig(codec.Document{}, profile, r))
	require.NoError(t, err)
	auth, err := UpdateAuth(nil, r.APIKey)
	require.NoError(t, err)

	doc, err := codec.DecodeDocument(data)
	require.NoError(t, err)
	current, err := ReadCurrent(doc, auth)
	require.NoError(t, err)

	require.Len(t, current.Providers, 2)
	for id, want := range profile.Providers {
		got := current.Providers[id]
		assert.Equal(t, codec.ProviderToTable(want), codec.ProviderToTable(got), "provider %s", id)
	}
	assert.Equal(t, models.StringPtr("m-1"), current.Providers["p1"].Model)
	assert.Equal(t, models.StringPtr("sk-1"), current.Providers["p1"].APIKey)
}
