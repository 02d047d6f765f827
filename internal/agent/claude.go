package agent

import (
	"context"
	"fmt"
)

const claudeEndpoint = "https://api.anthropic.com/v1/messages"

type ClaudeClient struct {
	APIKey   string
	Model    string
	Endpoint string
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	url := c.Endpoint
	if url == "" {
		url = claudeEndpoint
	}

	payload := map[string]interface{}{
		"model":      c.Model,
		"max_tokens": 4096,
		"messages":   userMessage(prompt),
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	headers := map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": "2023-06-01",
	}
	if err := postJSON(ctx, "anthropic", url, headers, payload, &result); err != nil {
		return "", err
	}

	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no response from anthropic")
}
