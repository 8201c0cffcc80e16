package factory

import (
	"fmt"

	"workflow-hub-be/pkg/llm"
	"workflow-hub-be/pkg/llm/gemini"
	"workflow-hub-be/pkg/llm/ollama"
	"workflow-hub-be/pkg/llm/openai"
)

const (
	ProviderOpenAI          = "openai"
	ProviderOpenAIAssistant = "openai-assistant"
	ProviderGemini          = "gemini"
	ProviderOllama          = "ollama"
)

type Config struct {
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	Instructions string                // assistant instructions, openai-assistant only
	Assistants   openai.AssistantStore // openai-assistant only
}

// Factory builds the configured completion provider, plus per-request
// variants for visitors who bring their own API key.
type Factory struct {
	cfg         Config
	defaultProv llm.LLMProvider
}

func New(cfg Config) (*Factory, error) {
	f := &Factory{cfg: cfg}
	prov, err := f.build(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	f.defaultProv = prov
	return f, nil
}

func (f *Factory) Default() llm.LLMProvider {
	return f.defaultProv
}

// WithAPIKey returns a provider of the configured family authenticated with
// apiKey. Assistant runs fall back to chat completions because the stored
// assistant belongs to the server's account.
func (f *Factory) WithAPIKey(apiKey string) llm.LLMProvider {
	if apiKey == "" {
		return f.defaultProv
	}
	if f.cfg.Provider == ProviderOpenAIAssistant {
		return openai.NewChatProvider(apiKey, f.cfg.BaseURL, f.cfg.Model)
	}
	prov, err := f.build(apiKey)
	if err != nil {
		return f.defaultProv
	}
	return prov
}

// Label identifies the backend in persisted chat turns, e.g. "gemini:gemini-1.5-flash".
func (f *Factory) Label() string {
	return fmt.Sprintf("%s:%s", f.cfg.Provider, f.cfg.Model)
}

func (f *Factory) build(apiKey string) (llm.LLMProvider, error) {
	switch f.cfg.Provider {
	case ProviderOpenAI:
		return openai.NewChatProvider(apiKey, f.cfg.BaseURL, f.cfg.Model), nil
	case ProviderOpenAIAssistant:
		return openai.NewAssistantProvider(apiKey, f.cfg.BaseURL, f.cfg.Model, f.cfg.Instructions, f.cfg.Assistants), nil
	case ProviderGemini:
		return gemini.NewGeminiProvider(apiKey, f.cfg.BaseURL, f.cfg.Model), nil
	case ProviderOllama:
		baseURL := f.cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, f.cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", f.cfg.Provider)
	}
}
