package agent

import (
	"context"
	"strings"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultOllamaEndpoint = "http://localhost:11434"

// NewLLMClient picks a client for provider. An empty endpoint means the
// provider's public API.
func NewLLMClient(provider string, model string, apiKey string, endpoint string) LLMClient {
	if model == "" {
		model = DefaultModel(provider)
	}

	switch strings.ToLower(provider) {
	case "anthropic", "claude":
		return &ClaudeClient{
			APIKey:   apiKey,
			Model:    model,
			Endpoint: endpoint,
		}
	case "openai":
		return &OpenAIClient{
			APIKey:   apiKey,
			Model:    model,
			Endpoint: endpoint,
		}
	case "gemini", "google", "":
		return &GeminiClient{
			APIKey:   apiKey,
			Model:    model,
			Endpoint: endpoint,
		}
	case "ollama":
		ep := endpoint
		if ep == "" {
			ep = defaultOllamaEndpoint
		}
		return &OllamaClient{
			Endpoint: ep,
			Model:    model,
		}
	default:
		// Use generic OpenAI-compatible client for any other provider
		// This auto-handles: groq, mistral, together, perplexity, openrouter, etc.
		if apiKey != "" || endpoint != "" {
			return NewGenericClient(provider, model, apiKey, endpoint)
		}
		// Fallback to Ollama if no API key
		return &OllamaClient{
			Endpoint: defaultOllamaEndpoint,
			Model:    model,
		}
	}
}

// DefaultModel is the model used when none is configured.
func DefaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case "anthropic", "claude":
		return "claude-3-5-sonnet-latest"
	case "openai":
		return "gpt-4o-mini"
	case "ollama":
		return "llama3.1"
	case "gemini", "google", "":
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

// APIKeyEnv names the environment variable holding the provider's key.
func APIKeyEnv(provider string) string {
	switch p := strings.ToLower(provider); p {
	case "gemini", "google", "":
		return "GEMINI_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	case "ollama":
		return ""
	default:
		return strings.ToUpper(p) + "_API_KEY"
	}
}
