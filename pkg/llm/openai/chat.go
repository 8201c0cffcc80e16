package openai

import (
	"context"
	"fmt"
	"net/http"

	"workflow-hub-be/pkg/llm"
)

// ChatProvider talks to any OpenAI compatible /chat/completions endpoint.
type ChatProvider struct {
	client *apiClient
	model  string
}

var _ llm.LLMProvider = &ChatProvider{}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewChatProvider(apiKey, baseURL, model string) *ChatProvider {
	return &ChatProvider{
		client: newAPIClient(apiKey, baseURL, nil),
		model:  model,
	}
}

func (p *ChatProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: 0.7}, options...)

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    history,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	var chatResp chatResponse
	if err := p.client.do(ctx, http.MethodPost, "/chat/completions", reqBody, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from openai api")
	}

	return chatResp.Choices[0].Message.Content, nil
}
