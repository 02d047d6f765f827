package agent

import (
	"context"
	"fmt"
	"strings"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

type GeminiClient struct {
	APIKey   string
	Model    string
	Endpoint string
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	base := g.Endpoint
	if base == "" {
		base = geminiEndpoint
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(base, "/"), g.Model)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	headers := map[string]string{"x-goog-api-key": g.APIKey}
	if err := postJSON(ctx, "gemini", url, headers, payload, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
