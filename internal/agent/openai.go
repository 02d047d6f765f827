package agent

import (
	"context"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

type OpenAIClient struct {
	APIKey   string
	Model    string
	Endpoint string
}

func (o *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	url := o.Endpoint
	if url == "" {
		url = openAIEndpoint
	}

	payload := map[string]interface{}{
		"model":    o.Model,
		"messages": userMessage(prompt),
	}

	var result chatCompletion
	headers := map[string]string{"Authorization": "Bearer " + o.APIKey}
	if err := postJSON(ctx, "openai", url, headers, payload, &result); err != nil {
		return "", err
	}
	return result.text("openai")
}
