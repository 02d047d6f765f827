package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// APIError is a non-200 reply from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.QuotaExceeded() {
		return fmt.Sprintf("QUOTA_EXCEEDED[%s]: rate limit reached", e.Provider)
	}
	if e.StatusCode == http.StatusUnauthorized || strings.Contains(e.Body, "invalid_api_key") {
		return fmt.Sprintf("%s: invalid API key", e.Provider)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Body)
}

// QuotaExceeded reports a rate limit or exhausted quota.
func (e *APIError) QuotaExceeded() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		strings.Contains(e.Body, "rate_limit") ||
		strings.Contains(e.Body, "RESOURCE_EXHAUSTED")
}

// Temporary reports whether repeating the request may succeed.
func (e *APIError) Temporary() bool {
	return e.QuotaExceeded() || e.StatusCode >= 500
}

// retryable is false for cancellations and for client errors other than
// rate limits.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

// postJSON sends payload to url and decodes a 200 reply into out.
func postJSON(ctx context.Context, provider, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to encode request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s connection error: %w", provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", provider, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Provider: provider, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: failed to parse response: %w", provider, err)
	}
	return nil
}

// chatCompletion is the reply shape shared by OpenAI-compatible APIs.
type chatCompletion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *chatCompletion) text(provider string) (string, error) {
	if c.Error.Message != "" {
		return "", fmt.Errorf("%s error: %s", provider, c.Error.Message)
	}
	if len(c.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", provider)
	}
	return c.Choices[0].Message.Content, nil
}

func userMessage(prompt string) []map[string]string {
	return []map[string]string{
		{"role": "user", "content": prompt},
	}
}
