package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codexmgr/config/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsURL(t *testing.T) {
	u, err := ModelsURL(models.ProviderConfig{BaseURL: "https://api.example.com/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/models", u)

	u, err = ModelsURL(models.ProviderConfig{
		BaseURL:     "https://x.openai.azure.com/openai",
		QueryParams: map[string]string{"api-version": "2025-04-01-preview"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x.openai.azure.com/openai/models?api-version=2025-04-01-preview", u)

	_, err = ModelsURL(models.ProviderConfig{})
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   string
	}{
		{200, `{"data":[{"id":"m"}]}`, CategoryOK},
		{200, `{"object":"list"}`, CategoryBadResponse},
		{200, `<html>`, CategoryBadResponse},
		{401, ``, CategoryAuthFailure},
		{403, ``, CategoryAuthFailure},
		{404, ``, CategoryEndpointNotFound},
		{429, ``, CategoryRateLimit},
		{502, ``, CategoryServerError},
		{418, ``, CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.status, []byte(tt.body)), "status %d body %q", tt.status, tt.body)
	}
	assert.Equal(t, UserMessage(CategoryUnknown), UserMessage("nonsense"))
}

func TestRun(t *testing.T) {
	var gotAuth, gotHeader, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotHeader = r.Header.Get("X-Org")
		gotQuery = r.URL.Query().Get("v")
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"m-1"},{"id":"m-2"}]}`))
	}))
	defer server.Close()

	provider := models.ProviderConfig{
		BaseURL:     server.URL + "/v1",
		HTTPHeaders: map[string]string{"X-Org": "acme"},
		QueryParams: map[string]string{"v": "2"},
	}
	result, err := New(5*time.Second).Run(context.Background(), provider, "sk-x", "m-2")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, []string{"m-1", "m-2"}, result.Models)
	assert.True(t, result.ModelListed)
	assert.Equal(t, "Bearer sk-x", gotAuth)
	assert.Equal(t, "acme", gotHeader)
	assert.Equal(t, "2", gotQuery)

	result, err = New(5*time.Second).Run(context.Background(), models.ProviderConfig{BaseURL: server.URL + "/wrong"}, "", "m-1")
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, CategoryEndpointNotFound, result.Category)
	assert.Empty(t, gotAuth)
}

func TestRunNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	result, err := New(time.Second).Run(context.Background(), models.ProviderConfig{BaseURL: url}, "k", "")
	require.NoError(t, err)
	assert.Equal(t, CategoryNetworkError, result.Category)
	assert.NotEmpty(t, result.Message)
}
