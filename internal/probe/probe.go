// Package probe checks that a provider endpoint answers with the
// credentials a profile would give Codex.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codexmgr/config/models"

	"github.com/tidwall/gjson"
)

// Error categories reported by Run
const (
	CategoryOK               = "ok"
	CategoryAuthFailure      = "authentication_failure"
	CategoryEndpointNotFound = "endpoint_not_found"
	CategoryRateLimit        = "rate_limit"
	CategoryServerError      = "server_error"
	CategoryNetworkError     = "network_error"
	CategoryBadResponse      = "unexpected_response"
	CategoryUnknown          = "unknown_error"
)

var userMessages = map[string]string{
	CategoryOK:               "Endpoint reachable.",
	CategoryAuthFailure:      "Authentication failed. Check the API key.",
	CategoryEndpointNotFound: "Endpoint not found. Check the base URL.",
	CategoryRateLimit:        "Rate limit exceeded. Try again later.",
	CategoryServerError:      "Server error. Try again later.",
	CategoryNetworkError:     "Unable to connect to the endpoint.",
	CategoryBadResponse:      "The endpoint did not return a model list.",
	CategoryUnknown:          "Unexpected response from the endpoint.",
}

// Result is the outcome of one probe
type Result struct {
	URL         string        `json:"url"`
	StatusCode  int           `json:"statusCode,omitempty"`
	Duration    time.Duration `json:"duration"`
	Category    string        `json:"category"`
	Message     string        `json:"message"`
	Models      []string      `json:"models,omitempty"`
	ModelListed bool          `json:"modelListed"`
}

// Success reports whether the endpoint answered with a model list
func (r *Result) Success() bool {
	return r.Category == CategoryOK
}

// Prober sends probe requests
type Prober struct {
	client *http.Client
}

// Option configures a Prober
type Option func(*Prober)

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) { p.client = client }
}

// New creates a Prober with the given request timeout
func New(timeout time.Duration, opts ...Option) *Prober {
	p := &Prober{client: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ModelsURL builds <base_url>/models with the provider's query parameters
func ModelsURL(provider models.ProviderConfig) (string, error) {
	if provider.BaseURL == "" {
		return "", fmt.Errorf("provider has no base URL")
	}
	u, err := url.Parse(strings.TrimRight(provider.BaseURL, "/") + "/models")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if len(provider.QueryParams) > 0 {
		q := u.Query()
		for k, v := range provider.QueryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Run lists the provider's models with apiKey as bearer token. model, when
// set, is looked up in the returned list. Transport failures are reported
// in the Result, not as an error.
func (p *Prober) Run(ctx context.Context, provider models.ProviderConfig, apiKey, model string) (*Result, error) {
	target, err := ModelsURL(provider)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for k, v := range provider.HTTPHeaders {
		req.Header.Set(k, v)
	}

	result := &Result{URL: target}
	start := time.Now()
	resp, err := p.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Category = CategoryNetworkError
		result.Message = err.Error()
		return result, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		result.Category = CategoryNetworkError
		result.Message = err.Error()
		return result, nil
	}
	result.StatusCode = resp.StatusCode
	result.Category = Categorize(resp.StatusCode, body)

	if result.Category == CategoryOK {
		for _, id := range gjson.GetBytes(body, "data.#.id").Array() {
			result.Models = append(result.Models, id.String())
		}
		for _, id := range result.Models {
			if id == model {
				result.ModelListed = true
			}
		}
	}
	result.Message = UserMessage(result.Category)
	return result, nil
}

// Categorize maps an HTTP status and body to an error category
func Categorize(statusCode int, body []byte) string {
	switch {
	case statusCode == http.StatusOK:
		if !gjson.ValidBytes(body) || !gjson.GetBytes(body, "data").IsArray() {
			return CategoryBadResponse
		}
		return CategoryOK
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return CategoryAuthFailure
	case statusCode == http.StatusNotFound:
		return CategoryEndpointNotFound
	case statusCode == http.StatusTooManyRequests:
		return CategoryRateLimit
	case statusCode >= http.StatusInternalServerError:
		return CategoryServerError
	default:
		return CategoryUnknown
	}
}

// UserMessage returns the user-facing message for a category
func UserMessage(category string) string {
	if msg, ok := userMessages[category]; ok {
		return msg
	}
	return userMessages[CategoryUnknown]
}
