package agent

import (
	"context"
	"fmt"
	"strings"
)

// Known OpenAI-compatible API endpoints
var knownEndpoints = map[string]string{
	"groq":       "https://api.groq.com/openai/v1/chat/completions",
	"mistral":    "https://api.mistral.ai/v1/chat/completions",
	"together":   "https://api.together.xyz/v1/chat/completions",
	"openrouter": "https://openrouter.ai/api/v1/chat/completions",
	"deepseek":   "https://api.deepseek.com/v1/chat/completions",
}

// GenericClient is an OpenAI-compatible client that works with many providers
type GenericClient struct {
	APIKey   string
	Model    string
	Endpoint string
	Provider string
}

// NewGenericClient creates a client for any OpenAI-compatible API
func NewGenericClient(provider, model, apiKey, endpoint string) *GenericClient {
	ep := endpoint
	if ep == "" {
		if known, ok := knownEndpoints[strings.ToLower(provider)]; ok {
			ep = known
		} else {
			ep = fmt.Sprintf("https://api.%s.com/v1/chat/completions", strings.ToLower(provider))
		}
	}

	return &GenericClient{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: ep,
		Provider: provider,
	}
}

func (g *GenericClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":    g.Model,
		"messages": userMessage(prompt),
	}

	var headers map[string]string
	if g.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + g.APIKey}
	}

	var result chatCompletion
	if err := postJSON(ctx, g.Provider, g.Endpoint, headers, payload, &result); err != nil {
		return "", err
	}
	return result.text(g.Provider)
}
