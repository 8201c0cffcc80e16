package openai

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"workflow-hub-be/pkg/llm"
)

const (
	DefaultAssistantName = "Workflow Guide"
	DefaultPollInterval  = time.Second
)

// AssistantRecord is the persisted identity of the remote assistant.
type AssistantRecord struct {
	AssistantID  string
	Name         string
	Instructions string
}

// AssistantStore persists the assistant id so every instance reuses one assistant.
type AssistantStore interface {
	// LoadAssistant returns nil, nil when none has been saved.
	LoadAssistant(ctx context.Context) (*AssistantRecord, error)
	SaveAssistant(ctx context.Context, rec AssistantRecord) error
}

// AssistantProvider runs each conversation on the Assistants v2 API: the
// history becomes a fresh remote thread, a run is started and polled until it
// reaches a terminal state, and the newest assistant message is returned.
type AssistantProvider struct {
	client       *apiClient
	model        string
	instructions string
	store        AssistantStore
	PollInterval time.Duration

	mu          sync.Mutex
	assistantID string
}

var _ llm.LLMProvider = &AssistantProvider{}

func NewAssistantProvider(apiKey, baseURL, model, instructions string, store AssistantStore) *AssistantProvider {
	return &AssistantProvider{
		client:       newAPIClient(apiKey, baseURL, map[string]string{"OpenAI-Beta": "assistants=v2"}),
		model:        model,
		instructions: instructions,
		store:        store,
		PollInterval: DefaultPollInterval,
	}
}

type assistantObject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

type threadMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type threadObject struct {
	ID string `json:"id"`
}

type runObject struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageList struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

// AssistantID returns the cached assistant id, creating the assistant on first use.
func (p *AssistantProvider) AssistantID(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.assistantID != "" {
		return p.assistantID, nil
	}

	if p.store != nil {
		rec, err := p.store.LoadAssistant(ctx)
		if err != nil {
			return "", fmt.Errorf("error fetching assistant config: %w", err)
		}
		if rec != nil && rec.AssistantID != "" {
			p.assistantID = rec.AssistantID
			return p.assistantID, nil
		}
	}

	var created assistantObject
	err := p.client.do(ctx, http.MethodPost, "/assistants", map[string]any{
		"name":         DefaultAssistantName,
		"instructions": p.instructions,
		"model":        p.model,
	}, &created)
	if err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}

	if p.store != nil {
		err := p.store.SaveAssistant(ctx, AssistantRecord{
			AssistantID:  created.ID,
			Name:         DefaultAssistantName,
			Instructions: p.instructions,
		})
		if err != nil {
			return "", fmt.Errorf("error saving assistant config: %w", err)
		}
	}

	p.assistantID = created.ID
	return p.assistantID, nil
}

func (p *AssistantProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{}, options...)

	assistantID, err := p.AssistantID(ctx)
	if err != nil {
		return "", err
	}

	system, turns := llm.SplitSystem(history)
	if len(turns) == 0 {
		return "", fmt.Errorf("assistant chat needs at least one user message")
	}

	messages := make([]threadMessage, len(turns))
	for i, m := range turns {
		messages[i] = threadMessage{Role: m.Role, Content: m.Content}
	}

	var thread threadObject
	if err := p.client.do(ctx, http.MethodPost, "/threads", map[string]any{"messages": messages}, &thread); err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	runReq := map[string]any{"assistant_id": assistantID}
	if system != "" {
		runReq["additional_instructions"] = system
	}
	if opts.Model != "" {
		runReq["model"] = opts.Model
	}
	if opts.Temperature > 0 {
		runReq["temperature"] = opts.Temperature
	}

	var run runObject
	if err := p.client.do(ctx, http.MethodPost, "/threads/"+thread.ID+"/runs", runReq, &run); err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	run, err = p.waitForRun(ctx, thread.ID, run)
	if err != nil {
		return "", err
	}

	switch run.Status {
	case "completed":
	case "failed":
		msg := "Unknown error"
		if run.LastError != nil && run.LastError.Message != "" {
			msg = run.LastError.Message
		}
		return "", fmt.Errorf("assistant run failed: %s", msg)
	default:
		return "", fmt.Errorf("assistant run ended with status %q", run.Status)
	}

	var list messageList
	if err := p.client.do(ctx, http.MethodGet, "/threads/"+thread.ID+"/messages?order=desc&limit=1", nil, &list); err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	if len(list.Data) == 0 || len(list.Data[0].Content) == 0 {
		return "", fmt.Errorf("assistant returned no message")
	}

	return list.Data[0].Content[0].Text.Value, nil
}

func (p *AssistantProvider) waitForRun(ctx context.Context, threadID string, run runObject) (runObject, error) {
	ticker := time.NewTicker(p.PollInterval)
	defer ticker.Stop()

	for run.Status == "queued" || run.Status == "in_progress" || run.Status == "cancelling" {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}

		if err := p.client.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+run.ID, nil, &run); err != nil {
			return run, fmt.Errorf("retrieve run: %w", err)
		}
	}
	return run, nil
}
