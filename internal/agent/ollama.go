package agent

import (
	"context"
	"strings"
)

type OllamaClient struct {
	Endpoint string
	Model    string
}

func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":  o.Model,
		"prompt": prompt,
		"stream": false,
	}

	var result struct {
		Response string `json:"response"`
	}
	url := strings.TrimRight(o.Endpoint, "/") + "/api/generate"
	if err := postJSON(ctx, "ollama", url, nil, payload, &result); err != nil {
		return "", err
	}

	return result.Response, nil
}
