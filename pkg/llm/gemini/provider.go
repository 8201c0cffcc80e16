package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"workflow-hub-be/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the turn "model" where the rest of the world says "assistant".
const roleModel = "model"

type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, baseURL, model string) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: 0.7}, options...)

	system, turns := llm.SplitSystem(history)

	payload := generateRequest{
		Contents: make([]content, 0, len(turns)),
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if system != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	for _, m := range turns {
		role := llm.RoleUser
		if m.Role == llm.RoleAssistant {
			role = roleModel
		}
		payload.Contents = append(payload.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, opts.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	var geminiResponse generateResponse
	decodeErr := json.Unmarshal(resBody, &geminiResponse)

	if res.StatusCode != http.StatusOK {
		if decodeErr == nil && geminiResponse.Error != nil {
			return "", fmt.Errorf("gemini api error (status %d): %s", res.StatusCode, geminiResponse.Error.Message)
		}
		return "", fmt.Errorf("gemini api error (status %d): %s", res.StatusCode, string(resBody))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", decodeErr)
	}

	if geminiResponse.PromptFeedback != nil && geminiResponse.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked the prompt: %s", geminiResponse.PromptFeedback.BlockReason)
	}
	if len(geminiResponse.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range geminiResponse.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
