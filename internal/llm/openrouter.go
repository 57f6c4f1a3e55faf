package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterReferer        = "https://github.com/abhisek/wordquiz"
	openRouterTitle          = "wordquiz"
)

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter. Requests
// carry the app attribution headers OpenRouter uses for its rankings.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}
	// OpenRouter model IDs are vendor/model and are used as given.
	return &OpenRouterProvider{OpenAIProvider: newOpenAIProvider(oc, cfg.Model)}, nil
}

type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(r)
}
