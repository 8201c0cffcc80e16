package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	requestTimeout = 120 * time.Second
)

// apiClient is the HTTP plumbing shared by the chat and assistant providers.
// The bearer token is attached by an oauth2 transport.
type apiClient struct {
	baseURL string
	http    *http.Client
	headers map[string]string
}

func newAPIClient(apiKey, baseURL string, headers map[string]string) *apiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base := &http.Client{Timeout: requestTimeout}
	client := base
	if apiKey != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: apiKey,
			TokenType:   "Bearer",
		}))
		client.Timeout = requestTimeout
	}

	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		headers: headers,
	}
}

type apiError struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// do sends body (if any) as JSON and decodes a 2xx response into out.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != nil {
			return fmt.Errorf("openai api error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("openai api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
