package llm

import (
	"context"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions folds opts over defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider is the single seam between the chat flow and a completion
// backend: turns in, text out.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

// Generate sends a single user prompt through p.
func Generate(ctx context.Context, p LLMProvider, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}

// SplitSystem separates system messages (joined by blank lines) from the conversation.
func SplitSystem(history []Message) (string, []Message) {
	var system string
	turns := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}
